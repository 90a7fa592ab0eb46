package catalog

import (
	"strings"

	"github.com/mkhart/bookshelf/internal/entities"
)

// Search filters the user's books by case-insensitive substring match. An
// empty or whitespace-only query returns the full list.
func (s *Service) Search(userID, query string) ([]entities.Book, error) {
	books, err := s.List(userID)
	if err != nil {
		return nil, err
	}
	return Filter(books, query), nil
}

// Filter returns the books matching the query, in their input order. A book
// matches when the trimmed, lowercased query is a substring of its title,
// author, isbn, genre, or description, or of any of its extracts' text.
// No ranking, no tokenization.
func Filter(books []entities.Book, query string) []entities.Book {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return books
	}

	var matched []entities.Book
	for _, b := range books {
		if bookMatches(b, term) {
			matched = append(matched, b)
		}
	}
	return matched
}

func bookMatches(b entities.Book, term string) bool {
	fields := []string{b.Title, b.Author, b.ISBN, b.Genre, b.Description}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	for _, e := range b.TextExtracts {
		if strings.Contains(strings.ToLower(e.Text), term) {
			return true
		}
	}
	return false
}
