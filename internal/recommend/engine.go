package recommend

import (
	"fmt"
	"maps"
	"slices"

	"github.com/abhisek/edupath/internal/quiz"
)

// TrackScore is the breakdown for one track.
type TrackScore struct {
	Track  quiz.Track `json:"track"`
	Base   float64    `json:"base"`
	Weight float64    `json:"weight"`
	Total  float64    `json:"total"`
}

// Result is the full outcome of scoring an answer set.
type Result struct {
	Track      quiz.Track         `json:"track"`
	Scores     []TrackScore       `json:"scores"` // declaration order
	Aggregates map[string]float64 `json:"aggregates"`
	Weights    map[string]float64 `json:"weights"`
}

// Ranked returns the scores from highest to lowest. Equal totals keep
// declaration order.
func (r *Result) Ranked() []TrackScore {
	out := slices.Clone(r.Scores)
	slices.SortStableFunc(out, func(a, b TrackScore) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		}
		return 0
	})
	return out
}

// Engine scores answer sets against a validated table. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg     Config
	catalog *quiz.Catalog
	bonuses map[string]map[string]map[string]float64 // question -> option -> category -> points
}

// New validates cfg against catalog and builds an engine.
func New(cfg Config, catalog *quiz.Catalog) (*Engine, error) {
	if err := cfg.Validate(catalog); err != nil {
		return nil, err
	}

	bonuses := make(map[string]map[string]map[string]float64)
	for _, b := range cfg.Bonuses {
		if bonuses[b.Question] == nil {
			bonuses[b.Question] = make(map[string]map[string]float64)
		}
		points := bonuses[b.Question][b.Option]
		if points == nil {
			points = make(map[string]float64)
			bonuses[b.Question][b.Option] = points
		}
		for cat, p := range b.Points {
			points[cat] += p
		}
	}

	return &Engine{cfg: cfg, catalog: catalog, bonuses: bonuses}, nil
}

// Default returns an engine over the built-in catalog and table.
func Default() *Engine {
	e, err := New(DefaultConfig(), quiz.Default())
	if err != nil {
		panic(fmt.Sprintf("built-in engine table is invalid: %v", err))
	}
	return e
}

// Config returns the table the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the catalog the engine validates answers against.
func (e *Engine) Catalog() *quiz.Catalog {
	return e.catalog
}

// Recommend returns the winning track for a complete answer set.
func (e *Engine) Recommend(answers quiz.AnswerSet) (quiz.Track, error) {
	res, err := e.Score(answers)
	if err != nil {
		return "", err
	}
	return res.Track, nil
}

// Score computes every track's score and picks the winner. The highest
// total wins; ties go to the track declared first.
func (e *Engine) Score(answers quiz.AnswerSet) (*Result, error) {
	byID, err := e.index(answers)
	if err != nil {
		return nil, err
	}

	ratings := byID[e.cfg.RatingQuestion].Ratings

	aggregates := make(map[string]float64, len(e.cfg.Aggregates))
	for _, a := range e.cfg.Aggregates {
		aggregates[a.Name] = mean(ratings, a.Subjects)
	}

	weights := make(map[string]float64)
	for _, q := range e.catalog.Questions {
		if q.Kind != quiz.KindChoice {
			continue
		}
		for cat, p := range e.bonuses[q.ID][byID[q.ID].Choice] {
			weights[cat] += p
		}
	}

	res := &Result{
		Scores:     make([]TrackScore, len(e.cfg.Tracks)),
		Aggregates: aggregates,
		Weights:    weights,
	}
	best := 0
	for i, rule := range e.cfg.Tracks {
		var sum float64
		for _, t := range rule.Terms {
			if t.Aggregate != "" {
				sum += aggregates[t.Aggregate]
			} else {
				sum += float64(ratings[t.Subject])
			}
		}
		base := sum / float64(len(rule.Terms))
		w := weights[rule.Category]
		res.Scores[i] = TrackScore{Track: rule.Track, Base: base, Weight: w, Total: base + w}

		if res.Scores[i].Total > res.Scores[best].Total {
			best = i
		}
	}
	res.Track = res.Scores[best].Track

	return res, nil
}

// mean averages the ratings of subjects, dividing by len(subjects). An
// absent subject reads as 0; index guarantees that never happens.
func mean(ratings map[string]int, subjects []string) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var sum int
	for _, s := range subjects {
		sum += ratings[s]
	}
	return float64(sum) / float64(len(subjects))
}

// index checks that answers hold exactly one well-formed answer per catalog
// question and returns them keyed by question id.
func (e *Engine) index(answers quiz.AnswerSet) (map[string]quiz.Answer, error) {
	byID := make(map[string]quiz.Answer, len(answers))

	for _, a := range answers {
		q, ok := e.catalog.Lookup(a.QuestionID)
		if !ok {
			return nil, invalid(a.QuestionID, "unknown question")
		}
		if _, dup := byID[a.QuestionID]; dup {
			return nil, invalid(a.QuestionID, "duplicate answer")
		}
		if a.Kind != q.Kind {
			return nil, invalid(a.QuestionID, "%s answer for %s question", a.Kind, q.Kind)
		}

		switch q.Kind {
		case quiz.KindChoice:
			if !q.HasItem(a.Choice) {
				return nil, invalid(a.QuestionID, "unknown option %q", a.Choice)
			}
		case quiz.KindRating:
			for _, s := range slices.Sorted(maps.Keys(a.Ratings)) {
				if !q.HasItem(s) {
					return nil, invalid(a.QuestionID, "unknown subject %q", s)
				}
				if r := a.Ratings[s]; r < quiz.MinRating || r > quiz.MaxRating {
					return nil, invalid(a.QuestionID, "rating %d for %q outside %d-%d", r, s, quiz.MinRating, quiz.MaxRating)
				}
			}
			for _, s := range q.Subjects {
				if _, ok := a.Ratings[s]; !ok {
					return nil, invalid(a.QuestionID, "missing rating for %q", s)
				}
			}
		}

		byID[a.QuestionID] = a
	}

	for _, q := range e.catalog.Questions {
		if _, ok := byID[q.ID]; !ok {
			return nil, invalid(q.ID, "missing answer")
		}
	}

	return byID, nil
}
