package agent

import (
	"context"
	"strings"
)

// MockGenerator provides canned responses for testing. Responses are
// matched by substring against the prompt; unmatched prompts get the
// default response.
type MockGenerator struct {
	Responses map[string]string
	Default   string
	Err       error
	Calls     []string
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Responses: make(map[string]string),
		Default:   "The rain kept falling and neither of them moved to close the window.",
	}
}

// Generate records the prompt and returns the first matching response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for key, response := range m.Responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return m.Default, nil
}
