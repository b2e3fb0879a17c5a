// Package ai defines the provider-neutral contracts the analysis pipeline
// uses to talk to an LLM and an embedding backend.
package ai

import "context"

// Generator produces a free-form completion for a prompt. Sampling settings
// such as temperature are fixed at construction time by the implementation.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Embedder converts texts into fixed-length vectors for similarity search.
// Implementations must support batches so a chunked document can be embedded
// in one round trip.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
