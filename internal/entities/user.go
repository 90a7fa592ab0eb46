package entities

// User is a registered account. The ID is assigned once at signup and never
// changes; users are never deleted.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
