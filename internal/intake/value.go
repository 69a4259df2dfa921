package intake

import (
	"fmt"
	"strconv"
	"strings"

	"compliance-bot/internal/catalog"
)

// TriState is a yes/no answer with an explicit "unsure" option.
type TriState string

const (
	TriYes    TriState = "yes"
	TriNo     TriState = "no"
	TriUnsure TriState = "unsure"
)

// Value is a typed answer. Exactly the field matching Shape is
// meaningful; the rest stay at their zero value. Values are produced
// only by ParseValue so untyped data never enters the store.
type Value struct {
	Shape  catalog.AnswerShape
	Bool   bool
	Tri    TriState
	Number float64
	Choice string
	Text   string
}

// ValidationError reports an answer that failed its question's shape
// check. It is recoverable: the caller re-prompts the same question.
type ValidationError struct {
	QuestionID int
	Raw        string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for question %d: %s", e.QuestionID, e.Reason)
}

// ParseValue validates raw input against the question's shape and
// returns the typed value. Empty input is never valid here; the store
// treats it as "unanswered" before calling ParseValue.
func ParseValue(q catalog.Question, raw string) (Value, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}, &ValidationError{QuestionID: q.ID, Raw: raw, Reason: "answer is empty"}
	}

	switch q.Shape {
	case catalog.ShapeYesNo:
		switch strings.ToLower(trimmed) {
		case "yes", "y":
			return Value{Shape: q.Shape, Bool: true}, nil
		case "no", "n":
			return Value{Shape: q.Shape, Bool: false}, nil
		}
		return Value{}, &ValidationError{QuestionID: q.ID, Raw: raw, Reason: "expected Yes or No"}

	case catalog.ShapeYesNoUnsure:
		switch strings.ToLower(trimmed) {
		case "yes", "y":
			return Value{Shape: q.Shape, Tri: TriYes}, nil
		case "no", "n":
			return Value{Shape: q.Shape, Tri: TriNo}, nil
		case "unsure", "not sure", "na", "n/a":
			return Value{Shape: q.Shape, Tri: TriUnsure}, nil
		}
		return Value{}, &ValidationError{QuestionID: q.ID, Raw: raw, Reason: "expected Yes, No or Not Sure"}

	case catalog.ShapeNumeric:
		// Allow thousands separators, e.g. "1,250.5".
		cleaned := strings.ReplaceAll(trimmed, ",", "")
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return Value{}, &ValidationError{QuestionID: q.ID, Raw: raw, Reason: "expected a number"}
		}
		if n < 0 {
			return Value{}, &ValidationError{QuestionID: q.ID, Raw: raw, Reason: "expected a non-negative number"}
		}
		return Value{Shape: q.Shape, Number: n}, nil

	case catalog.ShapeChoice:
		for _, opt := range q.Options {
			if strings.EqualFold(opt, trimmed) {
				// Store the canonical option, not the user's spelling.
				return Value{Shape: q.Shape, Choice: opt}, nil
			}
		}
		return Value{}, &ValidationError{
			QuestionID: q.ID,
			Raw:        raw,
			Reason:     fmt.Sprintf("expected one of: %s", strings.Join(q.Options, ", ")),
		}

	case catalog.ShapeFreeText:
		return Value{Shape: q.Shape, Text: trimmed}, nil
	}

	return Value{}, &ValidationError{QuestionID: q.ID, Raw: raw, Reason: fmt.Sprintf("unknown answer shape %q", q.Shape)}
}

// String renders the typed value the way it is presented to the analysis
// capability.
func (v Value) String() string {
	switch v.Shape {
	case catalog.ShapeYesNo:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case catalog.ShapeYesNoUnsure:
		switch v.Tri {
		case TriYes:
			return "Yes"
		case TriNo:
			return "No"
		default:
			return "Not Sure"
		}
	case catalog.ShapeNumeric:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case catalog.ShapeChoice:
		return v.Choice
	case catalog.ShapeFreeText:
		return v.Text
	}
	return ""
}
