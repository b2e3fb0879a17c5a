// Package rag implements the retrieval side of the pipeline: deterministic
// chunking, an in-memory vector index over embedded chunks, and a small
// retrieval-QA step that stuffs the best-matching chunks into an LLM prompt.
package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spigell/resume-agent/internal/ai"
)

// Index is an immutable collection of (chunk, embedding) pairs supporting
// nearest-neighbour lookup by query embedding. It is built once per document
// and lives only for the session; there are no update or delete operations.
type Index struct {
	chunks   []string
	vectors  [][]float32
	embedder ai.Embedder
}

// BuildChunked splits text into overlapping windows and embeds every chunk.
// Embedding failures are fatal to index construction.
func BuildChunked(ctx context.Context, embedder ai.Embedder, text string, size, overlap int) (*Index, error) {
	return build(ctx, embedder, SplitText(text, size, overlap))
}

// BuildWhole embeds the entire text as a single unit. It is used where
// fine-grained retrieval is unnecessary, such as skill scoring.
func BuildWhole(ctx context.Context, embedder ai.Embedder, text string) (*Index, error) {
	if text == "" {
		return nil, errors.New("cannot index empty text")
	}
	return build(ctx, embedder, []string{text})
}

func build(ctx context.Context, embedder ai.Embedder, chunks []string) (*Index, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if len(chunks) == 0 {
		return nil, errors.New("cannot index empty text")
	}

	vectors, err := embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	return &Index{chunks: chunks, vectors: vectors, embedder: embedder}, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Search embeds the query and returns the k most similar chunks, best first.
// Fewer than k chunks are returned when the index is smaller than k.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	if ix == nil || len(ix.chunks) == 0 {
		return nil, errors.New("index is empty")
	}
	if k <= 0 {
		k = 1
	}

	vectors, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for the query", len(vectors))
	}
	queryVec := vectors[0]

	type scored struct {
		idx   int
		score float32
	}
	results := make([]scored, 0, len(ix.chunks))
	for i, vec := range ix.vectors {
		results = append(results, scored{idx: i, score: cosineSimilarity(queryVec, vec)})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].idx < results[j].idx
		}
		return results[i].score > results[j].score
	})

	if len(results) > k {
		results = results[:k]
	}

	chunks := make([]string, len(results))
	for i, r := range results {
		chunks[i] = ix.chunks[r.idx]
	}

	return chunks, nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
