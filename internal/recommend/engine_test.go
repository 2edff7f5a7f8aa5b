package recommend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/quiz"
)

var allSubjects = []string{
	"Core Mathematics",
	"English Language",
	"French Language",
	"Ghanaian Language",
	"Creative Technology",
	"Creative Arts",
	"Social Studies",
	"Computing",
	"Religious and Moral Education",
	"Integrated Science",
}

func uniformRatings(r int) map[string]int {
	out := make(map[string]int, len(allSubjects))
	for _, s := range allSubjects {
		out[s] = r
	}
	return out
}

func answerSet(ratings map[string]int, career, style, goal string) quiz.AnswerSet {
	return quiz.AnswerSet{
		quiz.RatingAnswer("subject_ratings", ratings),
		quiz.ChoiceAnswer("career_interest", career),
		quiz.ChoiceAnswer("learning_style", style),
		quiz.ChoiceAnswer("future_goals", goal),
	}
}

func scoreOf(t *testing.T, res *Result, track quiz.Track) TrackScore {
	t.Helper()
	for _, s := range res.Scores {
		if s.Track == track {
			return s
		}
	}
	t.Fatalf("track %q not in result", track)
	return TrackScore{}
}

func TestDefaultEngineBuilds(t *testing.T) {
	e := Default()
	assert.Equal(t, []quiz.Track{GeneralScience, GeneralArts, Business, VisualArts, Agriculture, HomeEconomics}, e.Config().TrackLabels())
	assert.Equal(t, 4, e.Catalog().Len())
}

func TestScienceOrientedStudent(t *testing.T) {
	ratings := uniformRatings(1)
	ratings["Core Mathematics"] = 10
	ratings["Integrated Science"] = 10
	ratings["Computing"] = 10

	res, err := Default().Score(answerSet(ratings, "Healthcare & Medicine", "Problem-solving", "University education"))
	require.NoError(t, err)

	assert.Equal(t, GeneralScience, res.Track)
	assert.Equal(t, 15.0, scoreOf(t, res, GeneralScience).Total)
	assert.Equal(t, 10.0, scoreOf(t, res, Agriculture).Total)
	assert.Equal(t, 2.0, scoreOf(t, res, GeneralArts).Total)
	assert.Equal(t, 4.0, scoreOf(t, res, Business).Total)
	assert.Equal(t, 1.0, scoreOf(t, res, HomeEconomics).Total)

	ranked := res.Ranked()
	assert.Equal(t, GeneralScience, ranked[0].Track)
	assert.Equal(t, Agriculture, ranked[1].Track)
}

func TestCreativeBonusDominatesEqualRatings(t *testing.T) {
	track, err := Default().Recommend(answerSet(uniformRatings(5), "Creative Industries", "Reading and research", "Start working immediately"))
	require.NoError(t, err)
	assert.Equal(t, VisualArts, track)
}

func TestBlendedTracks(t *testing.T) {
	ratings := uniformRatings(2)
	ratings["Integrated Science"] = 8 // science aggregate = (2+8+2)/3 = 4
	ratings["Creative Arts"] = 6
	ratings["Social Studies"] = 10

	res, err := Default().Score(answerSet(ratings, "Agriculture & Environment", "Hands-on activities", "Professional training"))
	require.NoError(t, err)

	ag := scoreOf(t, res, Agriculture)
	assert.Equal(t, 6.0, ag.Base) // (8 + 4) / 2
	assert.Equal(t, 4.0, ag.Weight)

	he := scoreOf(t, res, HomeEconomics)
	assert.Equal(t, 8.0, he.Base) // (6 + 10) / 2
	assert.Equal(t, 2.0, he.Weight)

	assert.Equal(t, 4.0, res.Aggregates["science"])
	// Both blended tracks reach 10; Agriculture is declared first.
	assert.Equal(t, Agriculture, res.Track)
}

func TestTieGoesToEarliestDeclaredTrack(t *testing.T) {
	// science 5 + 3 = 8, arts (5+10+10+5+10)/5 = 8.
	ratings := uniformRatings(5)
	ratings["French Language"] = 10
	ratings["Ghanaian Language"] = 10
	ratings["Religious and Moral Education"] = 10
	answers := answerSet(ratings, "Healthcare & Medicine", "Reading and research", "Start working immediately")

	res, err := Default().Score(answers)
	require.NoError(t, err)
	require.Equal(t, scoreOf(t, res, GeneralScience).Total, scoreOf(t, res, GeneralArts).Total)
	assert.Equal(t, GeneralScience, res.Track)

	for range 20 {
		track, err := Default().Recommend(answers)
		require.NoError(t, err)
		assert.Equal(t, GeneralScience, track)
	}

	// Swapping declaration order flips the winner.
	cfg := DefaultConfig()
	cfg.Tracks[0], cfg.Tracks[1] = cfg.Tracks[1], cfg.Tracks[0]
	e, err := New(cfg, quiz.Default())
	require.NoError(t, err)
	track, err := e.Recommend(answers)
	require.NoError(t, err)
	assert.Equal(t, GeneralArts, track)
}

func TestAllEqualScoresPickFirstTrack(t *testing.T) {
	// Bonus-free choices leave every track at 5.
	track, err := Default().Recommend(answerSet(uniformRatings(5), "Healthcare & Medicine", "Group discussions", "Further skill development"))
	require.NoError(t, err)
	assert.Equal(t, GeneralScience, track)
}

func TestAggregatesAreMonotonicInRatings(t *testing.T) {
	e := Default()
	low, err := e.Score(answerSet(uniformRatings(1), "Business & Finance", "Group discussions", "Entrepreneurship"))
	require.NoError(t, err)
	high, err := e.Score(answerSet(uniformRatings(10), "Business & Finance", "Group discussions", "Entrepreneurship"))
	require.NoError(t, err)

	for name, v := range low.Aggregates {
		if high.Aggregates[name] <= v {
			t.Errorf("aggregate %s: high %v <= low %v", name, high.Aggregates[name], v)
		}
	}
	for i := range low.Scores {
		if high.Scores[i].Total <= low.Scores[i].Total {
			t.Errorf("track %s: high %v <= low %v", low.Scores[i].Track, high.Scores[i].Total, low.Scores[i].Total)
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	answers := answerSet(uniformRatings(7), "Arts & Humanities", "Visual demonstrations", "University education")
	first, err := Default().Score(answers)
	require.NoError(t, err)
	for range 10 {
		again, err := Default().Score(answers)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestInvalidInput(t *testing.T) {
	valid := func() quiz.AnswerSet {
		return answerSet(uniformRatings(5), "Creative Industries", "Problem-solving", "Entrepreneurship")
	}

	tests := []struct {
		name     string
		mutate   func(quiz.AnswerSet) quiz.AnswerSet
		question string
	}{
		{"duplicate question", func(a quiz.AnswerSet) quiz.AnswerSet {
			return append(a, quiz.ChoiceAnswer("career_interest", "Business & Finance"))
		}, "career_interest"},
		{"unknown question", func(a quiz.AnswerSet) quiz.AnswerSet {
			return append(a, quiz.ChoiceAnswer("favourite_colour", "Blue"))
		}, "favourite_colour"},
		{"missing answer", func(a quiz.AnswerSet) quiz.AnswerSet {
			return a[:3]
		}, "future_goals"},
		{"kind mismatch", func(a quiz.AnswerSet) quiz.AnswerSet {
			a[1] = quiz.RatingAnswer("career_interest", map[string]int{"Computing": 3})
			return a
		}, "career_interest"},
		{"unknown option", func(a quiz.AnswerSet) quiz.AnswerSet {
			a[2] = quiz.ChoiceAnswer("learning_style", "Sleeping")
			return a
		}, "learning_style"},
		{"rating above range", func(a quiz.AnswerSet) quiz.AnswerSet {
			a[0].Ratings["Computing"] = 11
			return a
		}, "subject_ratings"},
		{"rating zero", func(a quiz.AnswerSet) quiz.AnswerSet {
			a[0].Ratings["Computing"] = 0
			return a
		}, "subject_ratings"},
		{"missing subject", func(a quiz.AnswerSet) quiz.AnswerSet {
			delete(a[0].Ratings, "Social Studies")
			return a
		}, "subject_ratings"},
		{"unknown subject", func(a quiz.AnswerSet) quiz.AnswerSet {
			a[0].Ratings["Physics"] = 4
			return a
		}, "subject_ratings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().Recommend(tt.mutate(valid()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "want ErrInvalidInput, got %v", err)

			var ie *InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.question, ie.QuestionID)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CatalogVersion = "v2.0.0"
	cfg.Aggregates = append(cfg.Aggregates, Aggregate{Name: "science", Subjects: []string{"Physics"}})
	cfg.Tracks = append(cfg.Tracks, TrackRule{Track: "Technical", Category: "tech", Terms: []Term{{Aggregate: "tech"}}})
	cfg.Bonuses = append(cfg.Bonuses,
		Bonus{Question: "career_interest", Option: "Astronaut", Points: map[string]float64{"science": 1}},
		Bonus{Question: "future_goals", Option: "Entrepreneurship", Points: map[string]float64{"sports": 1}},
	)

	_, err := New(cfg, quiz.Default())
	require.Error(t, err)
	for _, want := range []string{
		"table written for catalog v2",
		"duplicate aggregate \"science\"",
		"unknown subject \"Physics\"",
		"unknown aggregate \"tech\"",
		"unknown option \"Astronaut\"",
		"unknown category \"sports\"",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadConfig(t *testing.T) {
	doc := `
catalog_version: v1.0.0
rating_question: subject_ratings
aggregates:
  - name: stem
    subjects: [Core Mathematics, Computing]
  - name: words
    subjects: [English Language, French Language]
tracks:
  - track: STEM
    category: stem
    terms: [{aggregate: stem}]
  - track: Languages
    category: words
    terms: [{aggregate: words}, {subject: Ghanaian Language}]
bonuses:
  - question: career_interest
    option: Arts & Humanities
    points: {words: 4}
`
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	e, err := New(cfg, quiz.Default())
	require.NoError(t, err)

	ratings := uniformRatings(6)
	res, err := e.Score(answerSet(ratings, "Arts & Humanities", "Group discussions", "Entrepreneurship"))
	require.NoError(t, err)
	assert.Equal(t, quiz.Track("Languages"), res.Track)
	assert.Equal(t, 10.0, res.Scores[1].Total)
	assert.Equal(t, 6.0, res.Scores[0].Total)
}
