package catalog

import "fmt"

// AnswerShape tags the kind of value a question expects.
type AnswerShape string

const (
	ShapeYesNo       AnswerShape = "yes_no"
	ShapeYesNoUnsure AnswerShape = "yes_no_unsure"
	ShapeNumeric     AnswerShape = "numeric"
	ShapeChoice      AnswerShape = "choice"
	ShapeFreeText    AnswerShape = "free_text"
)

// knownShapes lists every shape the validator understands.
var knownShapes = map[AnswerShape]bool{
	ShapeYesNo:       true,
	ShapeYesNoUnsure: true,
	ShapeNumeric:     true,
	ShapeChoice:      true,
	ShapeFreeText:    true,
}

// Question is one intake question. Immutable once the catalog is built.
type Question struct {
	ID      int         `yaml:"id"`
	Prompt  string      `yaml:"prompt"`
	Shape   AnswerShape `yaml:"shape"`
	Options []string    `yaml:"options,omitempty"`
}

// Catalog is an ordered, read-only sequence of intake questions.
type Catalog struct {
	questions []Question
}

// New builds a catalog from a question list, validating it the same way
// a loaded YAML catalog is validated.
func New(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one question")
	}

	for i, q := range questions {
		expectedID := i + 1
		if q.ID != expectedID {
			return nil, fmt.Errorf("question %d has wrong ID: expected %d, got %d", i, expectedID, q.ID)
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %d must have a prompt", q.ID)
		}
		if !knownShapes[q.Shape] {
			return nil, fmt.Errorf("question %d has unknown shape %q", q.ID, q.Shape)
		}
		if q.Shape == ShapeChoice && len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d is a choice question but declares no options", q.ID)
		}
		if q.Shape != ShapeChoice && len(q.Options) > 0 {
			return nil, fmt.Errorf("question %d declares options but is not a choice question", q.ID)
		}
	}

	cp := make([]Question, len(questions))
	copy(cp, questions)
	return &Catalog{questions: cp}, nil
}

// Questions returns the questions in catalog order. The returned slice is
// a copy; mutating it does not affect the catalog.
func (c *Catalog) Questions() []Question {
	cp := make([]Question, len(c.questions))
	copy(cp, c.questions)
	return cp
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Question returns the question with the given 1-based ID.
func (c *Catalog) Question(id int) (Question, bool) {
	if id < 1 || id > len(c.questions) {
		return Question{}, false
	}
	return c.questions[id-1], true
}
