package content

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipsLoad(t *testing.T) {
	tips := Tips()
	require.Len(t, tips, 10)
	for i, tip := range tips {
		assert.NotEmpty(t, tip.Title, "tip %d", i)
		assert.NotEmpty(t, tip.Content, "tip %d", i)
		assert.Contains(t, []Category{CategoryAcademic, CategoryCareer, CategoryMentalHealth}, tip.Category)
		assert.NotEmpty(t, tip.Tags)
	}
	assert.Equal(t, "1", tips[0].ID)
	assert.Equal(t, "Choosing Your Career Path: A Step-by-Step Guide", tips[1].Title)
}

func TestTipsReturnsCopy(t *testing.T) {
	a := Tips()
	a[0].Title = "changed"
	assert.NotEqual(t, "changed", Tips()[0].Title)
}

func TestFilterTips(t *testing.T) {
	ids := func(ts []Tip) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.ID
		}
		return out
	}

	tests := []struct {
		name     string
		category Category
		search   string
		want     []string
	}{
		{"all", CategoryAll, "", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{"empty category", "", "", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{"academic", CategoryAcademic, "", []string{"1", "4", "7", "10"}},
		{"career", CategoryCareer, "", []string{"2", "5", "8"}},
		{"mental health", CategoryMentalHealth, "", []string{"3", "6", "9"}},
		{"search title case insensitive", CategoryAll, "STRESS", []string{"3"}},
		{"search tag", CategoryAll, "networking", []string{"5"}},
		{"search content", CategoryAll, "eisenhower", []string{"7"}},
		{"search and category", CategoryAcademic, "time-management", []string{"1", "7"}},
		{"no match", CategoryCareer, "mindfulness", nil},
		{"unknown category", "sports", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTips(tt.category, tt.search)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRandomQuote(t *testing.T) {
	quotes := Quotes()
	require.Len(t, quotes, 10)

	r1 := rand.New(rand.NewPCG(1, 2))
	r2 := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		q := RandomQuote(r1)
		assert.Equal(t, q, RandomQuote(r2))
		assert.Contains(t, quotes, q)
	}
	assert.Contains(t, quotes, RandomQuote(nil))
}

func TestQuoteOfTheDay(t *testing.T) {
	morning := time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, QuoteOfTheDay(morning), QuoteOfTheDay(evening))

	seen := map[Quote]bool{}
	for d := range 10 {
		seen[QuoteOfTheDay(morning.AddDate(0, 0, d))] = true
	}
	assert.Len(t, seen, 10)

	assert.Contains(t, Quotes(), QuoteOfTheDay(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestQuoteString(t *testing.T) {
	q := Quote{Text: "Keep going.", Author: "Sam"}
	assert.Equal(t, `"Keep going." - Sam`, q.String())
}
