package recommend

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edupath/internal/quiz"
)

// Aggregate is a named group of subjects whose ratings are averaged.
type Aggregate struct {
	Name     string   `yaml:"name"`
	Subjects []string `yaml:"subjects"`
}

// Term is one input to a track's base score: either an aggregate or a
// single subject rating. Exactly one field is set.
type Term struct {
	Aggregate string `yaml:"aggregate,omitempty"`
	Subject   string `yaml:"subject,omitempty"`
}

func (t Term) String() string {
	if t.Aggregate != "" {
		return t.Aggregate
	}
	return t.Subject
}

// TrackRule describes how one track is scored. The base score is the mean
// of Terms; Category names the bonus accumulator added on top.
type TrackRule struct {
	Track    quiz.Track `yaml:"track"`
	Category string     `yaml:"category"`
	Terms    []Term     `yaml:"terms"`
}

// Bonus awards points to categories when Option is chosen for Question.
type Bonus struct {
	Question string             `yaml:"question"`
	Option   string             `yaml:"option"`
	Points   map[string]float64 `yaml:"points"`
}

// Config is the complete scoring table. Track order is significant: the
// earliest track wins ties.
type Config struct {
	CatalogVersion string      `yaml:"catalog_version"`
	RatingQuestion string      `yaml:"rating_question"`
	Aggregates     []Aggregate `yaml:"aggregates"`
	Tracks         []TrackRule `yaml:"tracks"`
	Bonuses        []Bonus     `yaml:"bonuses"`
}

// Track labels of the default table.
const (
	GeneralScience quiz.Track = "General Science"
	GeneralArts    quiz.Track = "General Arts"
	Business       quiz.Track = "Business"
	VisualArts     quiz.Track = "Visual Arts"
	Agriculture    quiz.Track = "Agriculture"
	HomeEconomics  quiz.Track = "Home Economics"
)

// DefaultConfig returns the scoring table for the built-in catalog.
func DefaultConfig() Config {
	return Config{
		CatalogVersion: "v1.0.0",
		RatingQuestion: "subject_ratings",
		Aggregates: []Aggregate{
			{Name: "science", Subjects: []string{"Core Mathematics", "Integrated Science", "Computing"}},
			{Name: "arts", Subjects: []string{"English Language", "French Language", "Ghanaian Language", "Social Studies", "Religious and Moral Education"}},
			{Name: "creative", Subjects: []string{"Creative Arts", "Creative Technology"}},
			{Name: "business", Subjects: []string{"Core Mathematics", "Social Studies", "English Language"}},
		},
		Tracks: []TrackRule{
			{Track: GeneralScience, Category: "science", Terms: []Term{{Aggregate: "science"}}},
			{Track: GeneralArts, Category: "arts", Terms: []Term{{Aggregate: "arts"}}},
			{Track: Business, Category: "business", Terms: []Term{{Aggregate: "business"}}},
			{Track: VisualArts, Category: "creative", Terms: []Term{{Aggregate: "creative"}}},
			{Track: Agriculture, Category: "agriculture", Terms: []Term{{Subject: "Integrated Science"}, {Aggregate: "science"}}},
			{Track: HomeEconomics, Category: "homeEconomics", Terms: []Term{{Subject: "Creative Arts"}, {Subject: "Social Studies"}}},
		},
		Bonuses: []Bonus{
			{Question: "career_interest", Option: "Healthcare & Medicine", Points: map[string]float64{"science": 3}},
			{Question: "career_interest", Option: "Engineering & Technology", Points: map[string]float64{"science": 3}},
			{Question: "career_interest", Option: "Business & Finance", Points: map[string]float64{"business": 3}},
			{Question: "career_interest", Option: "Arts & Humanities", Points: map[string]float64{"arts": 3}},
			{Question: "career_interest", Option: "Agriculture & Environment", Points: map[string]float64{"agriculture": 3}},
			{Question: "career_interest", Option: "Creative Industries", Points: map[string]float64{"creative": 3}},

			{Question: "learning_style", Option: "Hands-on activities", Points: map[string]float64{"agriculture": 1, "homeEconomics": 1}},
			{Question: "learning_style", Option: "Visual demonstrations", Points: map[string]float64{"creative": 1}},
			{Question: "learning_style", Option: "Problem-solving", Points: map[string]float64{"science": 1}},

			{Question: "future_goals", Option: "University education", Points: map[string]float64{"science": 1, "arts": 1}},
			{Question: "future_goals", Option: "Entrepreneurship", Points: map[string]float64{"business": 2}},
			{Question: "future_goals", Option: "Professional training", Points: map[string]float64{"homeEconomics": 1}},
		},
	}
}

// LoadConfig reads a scoring table from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read engine config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse engine config %s: %w", path, err)
	}
	return cfg, nil
}

// TrackLabels returns the track labels in declaration order.
func (c Config) TrackLabels() []quiz.Track {
	out := make([]quiz.Track, len(c.Tracks))
	for i, r := range c.Tracks {
		out[i] = r.Track
	}
	return out
}

// Validate checks the table against a catalog and reports every problem
// found in one error.
func (c Config) Validate(catalog *quiz.Catalog) error {
	var errs []string

	if c.CatalogVersion != "" {
		if !semver.IsValid(c.CatalogVersion) {
			errs = append(errs, fmt.Sprintf("invalid catalog_version %q", c.CatalogVersion))
		} else if semver.Major(c.CatalogVersion) != semver.Major(catalog.Version) {
			errs = append(errs, fmt.Sprintf("table written for catalog %s, got %s", semver.Major(c.CatalogVersion), catalog.Version))
		}
	}

	rq, ok := catalog.Lookup(c.RatingQuestion)
	switch {
	case !ok:
		errs = append(errs, fmt.Sprintf("rating question %q not in catalog", c.RatingQuestion))
	case rq.Kind != quiz.KindRating:
		errs = append(errs, fmt.Sprintf("rating question %q is a %s question", c.RatingQuestion, rq.Kind))
	}
	for _, q := range catalog.Questions {
		if q.Kind == quiz.KindRating && q.ID != c.RatingQuestion {
			errs = append(errs, fmt.Sprintf("catalog has a second rating question %q", q.ID))
		}
	}

	aggregates := make(map[string]bool, len(c.Aggregates))
	for _, a := range c.Aggregates {
		if aggregates[a.Name] {
			errs = append(errs, fmt.Sprintf("duplicate aggregate %q", a.Name))
		}
		aggregates[a.Name] = true
		if len(a.Subjects) == 0 {
			errs = append(errs, fmt.Sprintf("aggregate %q has no subjects", a.Name))
		}
		for _, s := range a.Subjects {
			if ok && !rq.HasItem(s) {
				errs = append(errs, fmt.Sprintf("aggregate %q references unknown subject %q", a.Name, s))
			}
		}
	}

	if len(c.Tracks) == 0 {
		errs = append(errs, "no tracks configured")
	}
	tracks := make(map[quiz.Track]bool, len(c.Tracks))
	categories := make(map[string]bool, len(c.Tracks))
	for _, r := range c.Tracks {
		if tracks[r.Track] {
			errs = append(errs, fmt.Sprintf("duplicate track %q", r.Track))
		}
		tracks[r.Track] = true
		categories[r.Category] = true
		if r.Category == "" {
			errs = append(errs, fmt.Sprintf("track %q has no category", r.Track))
		}
		if len(r.Terms) == 0 {
			errs = append(errs, fmt.Sprintf("track %q has no terms", r.Track))
		}
		for _, t := range r.Terms {
			switch {
			case (t.Aggregate == "") == (t.Subject == ""):
				errs = append(errs, fmt.Sprintf("track %q: term must name exactly one of aggregate or subject", r.Track))
			case t.Aggregate != "" && !aggregates[t.Aggregate]:
				errs = append(errs, fmt.Sprintf("track %q references unknown aggregate %q", r.Track, t.Aggregate))
			case t.Subject != "" && ok && !rq.HasItem(t.Subject):
				errs = append(errs, fmt.Sprintf("track %q references unknown subject %q", r.Track, t.Subject))
			}
		}
	}

	for _, b := range c.Bonuses {
		q, found := catalog.Lookup(b.Question)
		switch {
		case !found:
			errs = append(errs, fmt.Sprintf("bonus references unknown question %q", b.Question))
			continue
		case q.Kind != quiz.KindChoice:
			errs = append(errs, fmt.Sprintf("bonus question %q is not a choice question", b.Question))
			continue
		case !q.HasItem(b.Option):
			errs = append(errs, fmt.Sprintf("bonus references unknown option %q of %q", b.Option, b.Question))
		}
		for _, cat := range slices.Sorted(maps.Keys(b.Points)) {
			if !categories[cat] {
				errs = append(errs, fmt.Sprintf("bonus %q/%q awards unknown category %q", b.Question, b.Option, cat))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("engine config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
