package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/cardforge/internal/domain"
)

// responseSchema is the structured payload the backend is prompted to return.
type responseSchema struct {
	Cards []cardSchema `json:"cards"`
}

type cardSchema struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Type     string `json:"type"`
}

// Candidate is one parsed flashcard candidate before collection insertion.
type Candidate struct {
	Question string
	Answer   string
	Type     domain.CardType
}

// parseResponse decodes the backend's payload into flashcard candidates.
// Models wrap JSON in markdown fences often enough that stripping them here
// is cheaper than another round trip. Malformed structure, an empty card
// list, or a card missing either side fails with ErrInvalidResponse so the
// orchestrator can re-invoke the backend.
func parseResponse(payload string) ([]Candidate, error) {
	payload = stripCodeFence(payload)
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidResponse)
	}

	var schema responseSchema
	if err := json.Unmarshal([]byte(payload), &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(schema.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", ErrInvalidResponse)
	}

	candidates := make([]Candidate, 0, len(schema.Cards))
	for i, card := range schema.Cards {
		question := strings.TrimSpace(card.Question)
		answer := strings.TrimSpace(card.Answer)
		if question == "" {
			return nil, fmt.Errorf("%w: card %d missing question", ErrInvalidResponse, i)
		}
		if answer == "" {
			return nil, fmt.Errorf("%w: card %d missing answer", ErrInvalidResponse, i)
		}

		candidates = append(candidates, Candidate{
			Question: question,
			Answer:   answer,
			Type:     classifyCardType(card.Type, question),
		})
	}

	return candidates, nil
}

// classifyCardType trusts the model's tag only when the question actually
// carries a deletion marker; a "cloze" card without one degrades to basic
// rather than failing the whole payload.
func classifyCardType(tag, question string) domain.CardType {
	if strings.EqualFold(strings.TrimSpace(tag), string(domain.CardTypeCloze)) && domain.HasClozeMarker(question) {
		return domain.CardTypeCloze
	}
	return domain.CardTypeBasic
}

func stripCodeFence(payload string) string {
	trimmed := strings.TrimSpace(payload)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:] // drop the language tag line
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
