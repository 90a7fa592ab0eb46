package entities

type ExtractType string

const (
	ExtractTypeQuote   ExtractType = "quote"
	ExtractTypeSummary ExtractType = "summary"
	ExtractTypeNote    ExtractType = "note"
	ExtractTypeChapter ExtractType = "chapter"
)

// TextExtract is a fragment of a book's text kept alongside the record.
// Extracts live only inside a Book and are replaced as a whole list on every
// edit; insertion order is preserved.
type TextExtract struct {
	Page      int         `json:"page,omitempty"`
	Paragraph int         `json:"paragraph,omitempty"`
	Type      ExtractType `json:"type"`
	Text      string      `json:"text"`
}

// Book is a catalog record owned by exactly one user. Cover holds an opaque
// data-URL string produced out-of-band from an image file.
type Book struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	Title        string        `json:"title"`
	Author       string        `json:"author"`
	ISBN         string        `json:"isbn"`
	Genre        string        `json:"genre,omitempty"`
	Year         int           `json:"year,omitempty"`
	Description  string        `json:"description,omitempty"`
	Cover        string        `json:"cover,omitempty"`
	TextExtracts []TextExtract `json:"textExtracts,omitempty"`
}
