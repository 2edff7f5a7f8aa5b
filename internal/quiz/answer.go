package quiz

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Answer is the recorded response to one question. Kind selects which of
// Choice or Ratings carries the value.
type Answer struct {
	QuestionID string         `json:"question_id" yaml:"question_id"`
	Kind       Kind           `json:"kind" yaml:"kind"`
	Choice     string         `json:"choice,omitempty" yaml:"choice,omitempty"`
	Ratings    map[string]int `json:"ratings,omitempty" yaml:"ratings,omitempty"`
}

// ChoiceAnswer builds an answer for a choice question.
func ChoiceAnswer(questionID, option string) Answer {
	return Answer{QuestionID: questionID, Kind: KindChoice, Choice: option}
}

// RatingAnswer builds an answer for a rating question. The map is copied.
func RatingAnswer(questionID string, ratings map[string]int) Answer {
	return Answer{QuestionID: questionID, Kind: KindRating, Ratings: maps.Clone(ratings)}
}

// AnswerSet is the ordered list of answers collected during one quiz.
type AnswerSet []Answer

// Clone returns a deep copy of the set.
func (s AnswerSet) Clone() AnswerSet {
	if s == nil {
		return nil
	}
	out := make(AnswerSet, len(s))
	for i, a := range s {
		out[i] = a
		out[i].Ratings = maps.Clone(a.Ratings)
	}
	return out
}

// Submission is an answer set stored in a file, as scored by the
// recommend command.
type Submission struct {
	Student string    `json:"student,omitempty" yaml:"student,omitempty"`
	Answers AnswerSet `json:"answers" yaml:"answers"`
}

// LoadSubmission reads a JSON or YAML submission file.
func LoadSubmission(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}

	var sub Submission
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sub)
	default:
		err = json.Unmarshal(data, &sub)
	}
	if err != nil {
		return nil, fmt.Errorf("parse submission %s: %w", path, err)
	}
	if sub.Student == "" {
		sub.Student = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &sub, nil
}
