// Command generate_demo creates a demo library database with sample data
// from public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mkhart/bookshelf/internal/catalog"
	"github.com/mkhart/bookshelf/internal/config"
	"github.com/mkhart/bookshelf/internal/entities"
	"github.com/mkhart/bookshelf/internal/identity"
	"github.com/mkhart/bookshelf/internal/kv"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	store, err := kv.NewSQLite(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer store.Close()

	ids := identity.NewService(store, config.Auth{})
	user, err := ids.Register("Demo Reader", "demo@example.com", "reading", "reading")
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	books := catalog.NewService(store)
	for _, draft := range publicDomainBooks() {
		book, err := books.Upsert(user.ID, draft, "")
		if err != nil {
			log.Printf("Failed to save book %s: %v", draft.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (%d extracts)", book.Title, book.Author, len(book.TextExtracts))
	}

	log.Println("Demo database generated successfully!")
}

func publicDomainBooks() []catalog.Draft {
	return []catalog.Draft{
		// Marcus Aurelius - Meditations (Public Domain)
		{
			Title:       "Meditations",
			Author:      "Marcus Aurelius",
			ISBN:        "9780140449334",
			Genre:       "Philosophy",
			Year:        180,
			Description: "Personal writings of the Roman emperor on Stoic philosophy.",
			Extracts: []entities.TextExtract{
				{
					Type: entities.ExtractTypeQuote,
					Page: 12,
					Text: "You have power over your mind - not outside events. Realize this, and you will find strength.",
				},
				{
					Type: entities.ExtractTypeQuote,
					Page: 31,
					Text: "The happiness of your life depends upon the quality of your thoughts.",
				},
				{
					Type: entities.ExtractTypeNote,
					Text: "Waste no more time arguing about what a good man should be. Be one.",
				},
			},
		},
		// Jane Austen - Pride and Prejudice (Public Domain)
		{
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			ISBN:        "9780141439518",
			Genre:       "Fiction",
			Year:        1813,
			Description: "The courtship of Elizabeth Bennet and Mr. Darcy.",
			Extracts: []entities.TextExtract{
				{
					Type: entities.ExtractTypeQuote,
					Page: 1,
					Text: "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.",
				},
				{
					Type: entities.ExtractTypeChapter,
					Text: "Volume I opens at Longbourn with news of Netherfield being let at last.",
				},
			},
		},
		// Mary Shelley - Frankenstein (Public Domain)
		{
			Title:       "Frankenstein",
			Author:      "Mary Shelley",
			ISBN:        "9780486282114",
			Genre:       "Fiction",
			Year:        1818,
			Description: "A scientist's experiment creates a being he cannot control.",
			Extracts: []entities.TextExtract{
				{
					Type:      entities.ExtractTypeQuote,
					Page:      43,
					Paragraph: 2,
					Text:      "Beware; for I am fearless, and therefore powerful.",
				},
				{
					Type: entities.ExtractTypeSummary,
					Text: "Walton's letters frame Victor's account of the creature's making and flight.",
				},
			},
		},
	}
}
