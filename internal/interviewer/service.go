package interviewer

import (
	"fmt"
	"strings"

	"compliance-bot/internal/api"
	"compliance-bot/internal/catalog"
	"compliance-bot/internal/dialogue"
	"compliance-bot/internal/prompts"
)

// Service is the OpenAI-backed question-sequencing capability. It
// implements dialogue.Sequencer by replaying the transcript as a chat
// conversation under a system prompt that encodes the sequencing rules.
type Service struct {
	client *api.Client
}

// New creates the sequencing service.
func New(client *api.Client) *Service {
	return &Service{client: client}
}

// NextPrompt asks the model for the next question given the transcript so
// far. The synthetic start exchange is not replayed; it exists only to
// anchor the transcript.
func (s *Service) NextPrompt(cat *catalog.Catalog, transcript []dialogue.Exchange) (string, error) {
	messages := []api.Message{
		{Role: "system", Content: prompts.Interviewer(cat)},
	}

	for _, ex := range transcript {
		switch ex.Role {
		case dialogue.RoleAssistant:
			messages = append(messages, api.Message{Role: "assistant", Content: ex.Content})
		case dialogue.RoleUser:
			messages = append(messages, api.Message{Role: "user", Content: ex.Content})
		}
	}

	response, err := s.client.Complete(messages)
	if err != nil {
		return "", fmt.Errorf("error generating next question: %w", err)
	}

	return strings.TrimSpace(response), nil
}
