package dialogue

import (
	"fmt"
	"time"
)

// Role identifies the speaker of one exchange.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Exchange is one turn of the dialogue: a question from the assistant, an
// answer from the user, or the synthetic start utterance.
type Exchange struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Transcript is the append-only exchange log. Entries are never edited or
// reordered, and two consecutive entries never share a role.
type Transcript struct {
	entries []Exchange
}

// Append adds one exchange to the log.
func (t *Transcript) Append(role Role, content string) error {
	if last, ok := t.Last(); ok && last.Role == role {
		return fmt.Errorf("consecutive %s exchanges are not allowed", role)
	}
	t.entries = append(t.entries, Exchange{Role: role, Content: content, At: time.Now()})
	return nil
}

// Entries returns a copy of the log in arrival order.
func (t *Transcript) Entries() []Exchange {
	cp := make([]Exchange, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Last returns the most recent exchange, if any.
func (t *Transcript) Last() (Exchange, bool) {
	if len(t.entries) == 0 {
		return Exchange{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Len returns the number of exchanges in the log.
func (t *Transcript) Len() int {
	return len(t.entries)
}

func (t *Transcript) reset() {
	t.entries = nil
}
