package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhart/bookshelf/internal/entities"
)

func searchFixtures(t *testing.T) *Service {
	t.Helper()
	svc, _ := setupCatalog(t)

	drafts := []Draft{
		{
			Title:  "Famous Quotes",
			Author: "P. Smith",
			ISBN:   "111",
			Genre:  "Reference",
		},
		{
			Title:       "Dune",
			Author:      "Herbert",
			ISBN:        "222",
			Genre:       "Science Fiction",
			Description: "Desert planet epic.",
			Extracts: []entities.TextExtract{
				{Type: entities.ExtractTypeNote, Text: "A memorable quote about fear."},
			},
		},
		{
			Title:  "Gardening Basics",
			Author: "M. Green",
			ISBN:   "333",
			Extracts: []entities.TextExtract{
				{Type: entities.ExtractTypeSummary, Page: 9, Text: "Soil preparation in spring."},
			},
		},
	}
	for _, d := range drafts {
		_, err := svc.Upsert("u1", d, "")
		require.NoError(t, err)
	}
	return svc
}

func TestService_Search_EmptyQueryEqualsList(t *testing.T) {
	svc := searchFixtures(t)

	all, err := svc.List("u1")
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\t"} {
		got, err := svc.Search("u1", query)
		require.NoError(t, err)
		assert.Equal(t, all, got)
	}
}

func TestService_Search_CaseInsensitive(t *testing.T) {
	svc := searchFixtures(t)

	for _, query := range []string{"dune", "DUNE", "DuNe"} {
		books, err := svc.Search("u1", query)
		require.NoError(t, err)
		require.Len(t, books, 1, "query %q", query)
		assert.Equal(t, "Dune", books[0].Title)
	}
}

func TestService_Search_MatchesExtractTextAndTitle(t *testing.T) {
	svc := searchFixtures(t)

	// "QUOTE" matches the title of one book and an extract's text of
	// another; the type tag ("note") is not searched.
	books, err := svc.Search("u1", "QUOTE")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Famous Quotes", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)
}

func TestService_Search_TypeTagIsNotSearched(t *testing.T) {
	svc := searchFixtures(t)

	// Every fixture extract has a type tag, but none contains "summary"
	// as text; only fields and extract text are matched.
	books, err := svc.Search("u1", "summary")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestService_Search_ByField(t *testing.T) {
	svc := searchFixtures(t)

	tests := []struct {
		name      string
		query     string
		wantTitle string
	}{
		{"author", "herbert", "Dune"},
		{"isbn", "333", "Gardening Basics"},
		{"genre", "science fic", "Dune"},
		{"description", "desert planet", "Dune"},
		{"extract text", "soil prep", "Gardening Basics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := svc.Search("u1", tt.query)
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, tt.wantTitle, books[0].Title)
		})
	}
}

func TestService_Search_TrimsQuery(t *testing.T) {
	svc := searchFixtures(t)

	books, err := svc.Search("u1", "  dune  ")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestService_Search_NoMatches(t *testing.T) {
	svc := searchFixtures(t)

	books, err := svc.Search("u1", "zzzzzz")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestService_Search_ScopedToUser(t *testing.T) {
	svc := searchFixtures(t)

	_, err := svc.Upsert("u2", Draft{Title: "Dune", Author: "Herbert", ISBN: "999"}, "")
	require.NoError(t, err)

	books, err := svc.Search("u1", "dune")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "u1", books[0].UserID)
}

func TestFilter_StableOrder(t *testing.T) {
	books := []entities.Book{
		{ID: "1", Title: "B sandworm"},
		{ID: "2", Title: "A sandworm"},
		{ID: "3", Title: "unrelated"},
		{ID: "4", Title: "c sandworm"},
	}

	got := Filter(books, "sandworm")

	require.Len(t, got, 3)
	// Input order preserved, no re-sort
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "4", got[2].ID)
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	books := []entities.Book{{ID: "1"}, {ID: "2"}}

	assert.Equal(t, books, Filter(books, " "))
}
