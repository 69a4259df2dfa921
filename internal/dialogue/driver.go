package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"compliance-bot/internal/catalog"
	"compliance-bot/internal/intake"
)

// TerminalSentinel is the fixed utterance the sequencing capability emits
// once every catalog question has been covered. Matching is trim- and
// case-insensitive but never fuzzy.
const TerminalSentinel = "Thank You"

// startUtterance seeds the transcript before the first question.
const startUtterance = "start"

// State is the driver's position in the conversational intake.
type State string

const (
	StateNotStarted     State = "not_started"
	StateAwaitingAnswer State = "awaiting_answer"
	StateFinished       State = "finished"
)

// ErrFinished is returned when input arrives after the terminal sentinel.
var ErrFinished = errors.New("dialogue already finished")

// ErrNotStarted is returned when an answer arrives before Start.
var ErrNotStarted = errors.New("dialogue not started")

// StalledError reports that the sequencing capability could not produce
// the next prompt. The driver's state is unchanged and the same turn can
// be retried.
type StalledError struct {
	Cause error
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("dialogue stalled: %v", e.Cause)
}

func (e *StalledError) Unwrap() error {
	return e.Cause
}

// Sequencer produces the next question of the conversational intake.
//
// Implementations are contractually required to:
//   - ask exactly one question per invocation,
//   - never repeat a question already present in the transcript,
//   - never themselves answer a question,
//   - emit TerminalSentinel once every catalog question is covered.
//
// The driver does not verify the first three obligations; it treats any
// response as the literal next exchange and only detects the sentinel.
type Sequencer interface {
	NextPrompt(cat *catalog.Catalog, transcript []Exchange) (string, error)
}

// Driver runs the turn-based conversational intake over a single answer
// store. Questions are paired to answers by strict adjacency: each
// assistant utterance is answered by the user exchange that immediately
// follows it, and answers map onto catalog questions in catalog order.
type Driver struct {
	catalog    *catalog.Catalog
	store      *intake.Store
	seq        Sequencer
	transcript Transcript
	state      State
	answered   int
}

// NewDriver creates a driver in StateNotStarted.
func NewDriver(cat *catalog.Catalog, store *intake.Store, seq Sequencer) *Driver {
	return &Driver{
		catalog: cat,
		store:   store,
		seq:     seq,
		state:   StateNotStarted,
	}
}

// State returns the driver's current state.
func (d *Driver) State() State {
	return d.state
}

// Transcript returns a copy of the exchange log.
func (d *Driver) Transcript() []Exchange {
	return d.transcript.Entries()
}

// CurrentPrompt returns the question currently awaiting an answer.
func (d *Driver) CurrentPrompt() string {
	if last, ok := d.transcript.Last(); ok && last.Role == RoleAssistant {
		return last.Content
	}
	return ""
}

// Start appends the synthetic start exchange, asks the sequencer for the
// first question and moves to StateAwaitingAnswer. On a sequencer failure
// nothing is appended and the state stays NotStarted.
func (d *Driver) Start() (string, error) {
	if d.state != StateNotStarted {
		return "", fmt.Errorf("dialogue already started")
	}

	prompt, err := d.nextPrompt(d.transcript.Entries())
	if err != nil {
		return "", err
	}

	d.transcript.Append(RoleSystem, startUtterance)
	d.transcript.Append(RoleAssistant, prompt)

	if IsSentinel(prompt) {
		d.state = StateFinished
	} else {
		d.state = StateAwaitingAnswer
	}
	return prompt, nil
}

// Submit records the user's answer to the pending question and returns
// the next prompt (or the terminal sentinel). A *intake.ValidationError
// or *StalledError leaves state, transcript and store untouched so the
// caller can retry the same turn.
func (d *Driver) Submit(answer string) (string, error) {
	switch d.state {
	case StateNotStarted:
		return "", ErrNotStarted
	case StateFinished:
		return "", ErrFinished
	}

	answer = strings.TrimSpace(answer)
	qid := d.answered + 1

	if qid <= d.catalog.Len() {
		q, _ := d.catalog.Question(qid)
		if answer == "" {
			return "", &intake.ValidationError{QuestionID: qid, Raw: answer, Reason: "answer is empty"}
		}
		// Validate before touching any state so a rejected answer holds
		// the turn.
		if _, err := intake.ParseValue(q, answer); err != nil {
			return "", err
		}
	} else if answer == "" {
		return "", &intake.ValidationError{QuestionID: qid, Raw: answer, Reason: "answer is empty"}
	}

	history := append(d.transcript.Entries(), Exchange{Role: RoleUser, Content: answer})
	prompt, err := d.nextPrompt(history)
	if err != nil {
		return "", err
	}

	if qid <= d.catalog.Len() {
		if err := d.store.SetAnswer(qid, answer); err != nil {
			return "", err
		}
	}
	d.transcript.Append(RoleUser, answer)
	d.transcript.Append(RoleAssistant, prompt)
	d.answered++

	if IsSentinel(prompt) {
		d.state = StateFinished
	}
	return prompt, nil
}

// Reset discards the transcript and returns the driver to StateNotStarted.
func (d *Driver) Reset() {
	d.transcript.reset()
	d.state = StateNotStarted
	d.answered = 0
}

func (d *Driver) nextPrompt(history []Exchange) (string, error) {
	prompt, err := d.seq.NextPrompt(d.catalog, history)
	if err != nil {
		return "", &StalledError{Cause: err}
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &StalledError{Cause: errors.New("sequencer returned an empty prompt")}
	}
	return prompt, nil
}

// IsSentinel reports whether an utterance is the terminal sentinel.
func IsSentinel(utterance string) bool {
	return strings.EqualFold(strings.TrimSpace(utterance), TerminalSentinel)
}
