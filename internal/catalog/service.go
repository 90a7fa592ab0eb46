// Package catalog manages the book collection. All users' books live in one
// persisted array partitioned by the owning user's id; every operation takes
// the acting user's id explicitly and never touches another user's
// partition.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkhart/bookshelf/internal/entities"
	"github.com/mkhart/bookshelf/internal/kv"
)

var (
	ErrDuplicateISBN = errors.New("a book with this ISBN already exists")
	ErrNotFound      = errors.New("book not found")
)

// Draft carries the fields of a book form submission. Year 0 means unset; an
// empty Cover on edit keeps the previous cover.
type Draft struct {
	Title       string
	Author      string
	ISBN        string
	Genre       string
	Year        int
	Description string
	Cover       string
	Extracts    []entities.TextExtract
}

// Service handles book storage for all users.
type Service struct {
	store kv.Store
}

// NewService creates a new catalog service on top of the given store.
func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

// List returns the books owned by the user in persisted storage order.
func (s *Service) List(userID string) ([]entities.Book, error) {
	all, err := s.loadBooks()
	if err != nil {
		return nil, err
	}

	var books []entities.Book
	for _, b := range all {
		if b.UserID == userID {
			books = append(books, b)
		}
	}
	return books, nil
}

// Upsert creates a book when editingID is empty and replaces the book at
// editingID otherwise. The ISBN must be unique among the user's other books;
// a book may keep its own ISBN on edit. On edit with no new cover the
// previous cover is carried forward — the cover arrives out-of-band and may
// simply not have been re-supplied this time.
func (s *Service) Upsert(userID string, draft Draft, editingID string) (*entities.Book, error) {
	books, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	for _, b := range books {
		if b.ISBN == draft.ISBN && b.ID != editingID {
			return nil, ErrDuplicateISBN
		}
	}

	book := entities.Book{
		UserID:       userID,
		Title:        draft.Title,
		Author:       draft.Author,
		ISBN:         draft.ISBN,
		Genre:        draft.Genre,
		Year:         draft.Year,
		Description:  draft.Description,
		Cover:        draft.Cover,
		TextExtracts: collectExtracts(draft.Extracts),
	}

	if editingID == "" {
		book.ID = newID()
		books = append(books, book)
	} else {
		index := -1
		for i, b := range books {
			if b.ID == editingID {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, ErrNotFound
		}
		book.ID = editingID
		if book.Cover == "" {
			book.Cover = books[index].Cover
		}
		books[index] = book
	}

	if err := s.saveBooks(userID, books); err != nil {
		return nil, err
	}
	return &book, nil
}

// Remove deletes the user's book with the given id.
func (s *Service) Remove(userID, bookID string) error {
	books, err := s.List(userID)
	if err != nil {
		return err
	}

	kept := books[:0]
	found := false
	for _, b := range books {
		if b.ID == bookID {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return ErrNotFound
	}

	return s.saveBooks(userID, kept)
}

// collectExtracts drops extracts with empty text, preserving order.
func collectExtracts(extracts []entities.TextExtract) []entities.TextExtract {
	var kept []entities.TextExtract
	for _, e := range extracts {
		if e.Text == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func (s *Service) loadBooks() ([]entities.Book, error) {
	raw, err := s.store.Get(entities.RecordKeyBooks)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var books []entities.Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("failed to decode book collection: %w", err)
	}
	return books, nil
}

// saveBooks rewrites the whole collection: every other user's books are kept
// untouched in their stored order, followed by the acting user's updated
// set. This whole-collection rewrite is what enforces per-user partitioning
// without per-user keys.
func (s *Service) saveBooks(userID string, books []entities.Book) error {
	all, err := s.loadBooks()
	if err != nil {
		return err
	}

	updated := make([]entities.Book, 0, len(all)+len(books))
	for _, b := range all {
		if b.UserID != userID {
			updated = append(updated, b)
		}
	}
	updated = append(updated, books...)

	raw, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode book collection: %w", err)
	}
	return s.store.Set(entities.RecordKeyBooks, raw)
}
