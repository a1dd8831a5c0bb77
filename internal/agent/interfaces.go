package agent

import "context"

// Generator is the external text-generation capability: one prompt in,
// one string out. It is the only suspension point in the pipeline.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
