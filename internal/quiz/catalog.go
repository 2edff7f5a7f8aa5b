package quiz

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

const catalogSchemaURL = "schema://catalog.schema.json"

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Catalog is the ordered, versioned list of questions.
type Catalog struct {
	Version   string     `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`

	index map[string]int
}

// NewCatalog validates the questions and builds the id index.
func NewCatalog(version string, questions []Question) (*Catalog, error) {
	if err := validateQuestions(version, questions); err != nil {
		return nil, err
	}
	c := &Catalog{
		Version:   version,
		Questions: questions,
		index:     make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		c.index[q.ID] = i
	}
	return c, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.Questions)
}

// At returns the question at position i.
func (c *Catalog) At(i int) Question {
	return c.Questions[i]
}

// Lookup finds a question by id.
func (c *Catalog) Lookup(id string) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	return c.Questions[i], true
}

// Position returns the index of the question with the given id, or -1.
func (c *Catalog) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultCatalogJSON, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
})

// Default returns the built-in SHS questionnaire.
func Default() *Catalog {
	return defaultCatalog()
}

// Load reads a catalog from a .json, .yaml or .yml file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document, checks it against the catalog JSON
// Schema and then validates it structurally.
func Parse(data []byte, format Format) (*Catalog, error) {
	if format == FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		data = converted
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	sch, err := catalogSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(c.Version, c.Questions)
}

var catalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(catalogSchemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add catalog schema: %w", err)
	}
	sch, err := c.Compile(catalogSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	return sch, nil
})

// validateQuestions performs all structural checks on a question list.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(version string, questions []Question) error {
	var errs []string

	if !semver.IsValid(version) {
		errs = append(errs, fmt.Sprintf("invalid catalog version %q", version))
	}
	if len(questions) == 0 {
		errs = append(errs, "catalog has no questions")
	}

	ids := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question %d has an empty id", i))
		} else if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true

		switch q.Kind {
		case KindRating:
			if len(q.Subjects) == 0 {
				errs = append(errs, fmt.Sprintf("question %q: rating question has no subjects", q.ID))
			}
			if len(q.Options) > 0 {
				errs = append(errs, fmt.Sprintf("question %q: rating question must not declare options", q.ID))
			}
		case KindChoice:
			if len(q.Options) == 0 {
				errs = append(errs, fmt.Sprintf("question %q: choice question has no options", q.ID))
			}
			if len(q.Subjects) > 0 {
				errs = append(errs, fmt.Sprintf("question %q: choice question must not declare subjects", q.ID))
			}
		default:
			errs = append(errs, fmt.Sprintf("question %q: unknown kind %q", q.ID, q.Kind))
		}

		seen := make(map[string]bool)
		for _, item := range q.Items() {
			if seen[item] {
				errs = append(errs, fmt.Sprintf("question %q: duplicate item %q", q.ID, item))
			}
			seen[item] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
