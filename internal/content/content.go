// Package content holds the study tips and motivational quotes shipped with
// the application.
package content

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Category groups tips by area.
type Category string

const (
	CategoryAll          Category = "all"
	CategoryAcademic     Category = "academic"
	CategoryCareer       Category = "career"
	CategoryMentalHealth Category = "mental-health"
)

// Categories lists the filter choices in display order.
var Categories = []Category{CategoryAll, CategoryAcademic, CategoryCareer, CategoryMentalHealth}

// Tip is one study or wellbeing tip.
type Tip struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Content  string   `yaml:"content" json:"content"`
	Category Category `yaml:"category" json:"category"`
	Tags     []string `yaml:"tags" json:"tags"`
}

// Quote is a motivational quote.
type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
}

func (q Quote) String() string {
	return fmt.Sprintf("%q - %s", q.Text, q.Author)
}

//go:embed tips.yaml
var tipsYAML []byte

//go:embed quotes.yaml
var quotesYAML []byte

var loadTips = sync.OnceValue(func() []Tip {
	var tips []Tip
	if err := yaml.Unmarshal(tipsYAML, &tips); err != nil {
		panic(fmt.Sprintf("embedded tips are invalid: %v", err))
	}
	return tips
})

var loadQuotes = sync.OnceValue(func() []Quote {
	var quotes []Quote
	if err := yaml.Unmarshal(quotesYAML, &quotes); err != nil {
		panic(fmt.Sprintf("embedded quotes are invalid: %v", err))
	}
	return quotes
})

// Tips returns all tips in catalog order.
func Tips() []Tip {
	return slices.Clone(loadTips())
}

// FilterTips returns the tips in category whose title, content or tags
// contain search, ignoring case. An empty category or CategoryAll matches
// every tip.
func FilterTips(category Category, search string) []Tip {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	var out []Tip
	for _, t := range loadTips() {
		if category != "" && category != CategoryAll && t.Category != category {
			continue
		}
		if needle != "" && !tipContains(fold, t, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func tipContains(fold cases.Caser, t Tip, needle string) bool {
	if strings.Contains(fold.String(t.Title), needle) || strings.Contains(fold.String(t.Content), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return false
}

// Quotes returns all quotes.
func Quotes() []Quote {
	return slices.Clone(loadQuotes())
}

// RandomQuote picks a quote using r, or the global source when r is nil.
func RandomQuote(r *rand.Rand) Quote {
	qs := loadQuotes()
	if r == nil {
		return qs[rand.IntN(len(qs))]
	}
	return qs[r.IntN(len(qs))]
}

// QuoteOfTheDay returns the same quote for every t on one calendar day.
func QuoteOfTheDay(t time.Time) Quote {
	qs := loadQuotes()
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	i := int(day % int64(len(qs)))
	if i < 0 {
		i += len(qs)
	}
	return qs[i]
}
