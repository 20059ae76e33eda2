package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Blindworks/rhenanenmanager/apperr"
)

func intPtr(n int) *int { return &n }

func TestArticleCRUD(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewArticleService(conn, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ArticleRequest{
		Title:    "Stiftungsfest 1998",
		Category: "Veranstaltungen",
		Year:     intPtr(1998),
		Month:    intPtr(6),
	}, nil)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Stiftungsfest 1998", got.Title)

	updated, err := svc.Update(ctx, created.ID, ArticleRequest{
		Title: "Stiftungsfest 1998 (Nachlese)",
		Year:  intPtr(1998),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "Stiftungsfest 1998 (Nachlese)", updated.Title)
	require.Empty(t, updated.Category, "update replaces all fields")

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.True(t, apperr.IsNotFound(err))
	require.True(t, apperr.IsNotFound(svc.Delete(ctx, created.ID)))
}

func TestArticleValidation(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewArticleService(conn, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ArticleRequest{}, nil)
	require.True(t, apperr.IsValidation(err), "missing title: %v", err)

	_, err = svc.Create(ctx, ArticleRequest{Title: "x", Month: intPtr(13)}, nil)
	require.True(t, apperr.IsValidation(err), "month out of range: %v", err)

	_, err = svc.Update(ctx, 9999, ArticleRequest{Title: "x"}, nil)
	require.True(t, apperr.IsNotFound(err))
}

func TestArticleListPaginationAndOrder(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewArticleService(conn, zap.NewNop())
	ctx := context.Background()

	seed := []struct {
		title string
		year  int
		month int
	}{
		{"alt", 1990, 3},
		{"neuer", 2005, 1},
		{"neuestes", 2005, 11},
		{"mittel", 1999, 6},
	}
	for _, s := range seed {
		_, err := svc.Create(ctx, ArticleRequest{Title: s.title, Year: intPtr(s.year), Month: intPtr(s.month)}, nil)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListParams{Limit: 2, Page: 1})
	require.NoError(t, err)
	require.EqualValues(t, 4, page.Total)
	require.Equal(t, 2, page.Limit)
	require.Zero(t, page.Offset)
	require.Len(t, page.Items, 2)
	require.Equal(t, "neuestes", page.Items[0].Title, "year desc then month desc")
	require.Equal(t, "neuer", page.Items[1].Title)

	page2, err := svc.List(ctx, ListParams{Limit: 2, Page: 2})
	require.NoError(t, err)
	require.Equal(t, 2, page2.Offset)
	require.Equal(t, "mittel", page2.Items[0].Title)
}

func TestArticleSearchAndFacets(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewArticleService(conn, zap.NewNop())
	ctx := context.Background()

	mk := func(title, category, text string, year int) {
		t.Helper()
		_, err := svc.Create(ctx, ArticleRequest{Title: title, Category: category, Text: text, Year: intPtr(year)}, nil)
		require.NoError(t, err)
	}
	mk("Chronik des Hauses", "Geschichte", "Das Corpshaus wurde 1891 bezogen", 1991)
	mk("Sommerfest", "Veranstaltungen", "Bericht vom Sommerfest", 2010)
	mk("Haussanierung", "Geschichte", "Die Sanierung des Daches", 2010)

	byCategory, err := svc.List(ctx, ListParams{Category: "Geschichte"})
	require.NoError(t, err)
	require.EqualValues(t, 2, byCategory.Total)

	search, err := svc.List(ctx, ListParams{Query: "Corpshaus"})
	require.NoError(t, err)
	require.EqualValues(t, 1, search.Total)
	require.Equal(t, "Chronik des Hauses", search.Items[0].Title)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Geschichte", "Veranstaltungen"}, categories)

	years, err := svc.Years(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{2010, 1991}, years)

	byYear, err := svc.ByYear(ctx, 2010)
	require.NoError(t, err)
	require.Len(t, byYear, 2)
}
