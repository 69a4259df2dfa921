package prompts

import (
	"fmt"
	"strings"

	"compliance-bot/internal/catalog"
)

// Interviewer builds the system prompt for the question-sequencing
// capability. The rules mirror the sequencer contract: one question per
// turn, no repeats, no answering, fixed closing utterance.
func Interviewer(cat *catalog.Catalog) string {
	var prompt strings.Builder

	prompt.WriteString("You are a corporate compliance intake assistant. ")
	prompt.WriteString("Your job is to collect company information for a compliance review under the Companies Act, 2013 by asking the questions below, one at a time.\n\n")

	prompt.WriteString("QUESTIONS TO COVER, IN ORDER:\n")
	for _, q := range cat.Questions() {
		prompt.WriteString(fmt.Sprintf("%d. %s%s\n", q.ID, q.Prompt, shapeHint(q)))
	}
	prompt.WriteString("\n")

	prompt.WriteString("STRICT RULES:\n")
	prompt.WriteString("- Ask exactly ONE question per message, in the order listed.\n")
	prompt.WriteString("- Never repeat a question that already appears in the conversation.\n")
	prompt.WriteString("- Never answer a question yourself or comment on the user's answers.\n")
	prompt.WriteString("- Write only the text of the question, nothing else.\n")
	prompt.WriteString(fmt.Sprintf("- When every question has been asked and answered, reply with exactly %q and nothing else.\n", "Thank You"))

	return prompt.String()
}

// shapeHint renders the expected answer format the way the original
// questionnaire presented it inline.
func shapeHint(q catalog.Question) string {
	switch q.Shape {
	case catalog.ShapeYesNo:
		return " (Yes / No)"
	case catalog.ShapeYesNoUnsure:
		return " (Yes / No / Not Sure)"
	case catalog.ShapeChoice:
		return fmt.Sprintf(" (%s)", strings.Join(q.Options, " / "))
	}
	return ""
}
