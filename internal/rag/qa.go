package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/logger"
	"go.uber.org/zap"
)

const (
	// DefaultTopK is how many chunks a QA query retrieves by default.
	DefaultTopK = 3

	chunkSeparator = "\n---\n"
)

const qaPromptTemplate = `Use only the resume excerpts below to answer the question. If the excerpts do not contain the answer, say so instead of guessing.

Resume excerpts:
%s

Question: %s`

// QA answers free-form questions over an index by retrieving the best-matching
// chunks and conditioning an LLM response on them.
type QA struct {
	index     *Index
	generator ai.Generator
	topK      int
	maxLogLen int
	logger    *zap.Logger
}

// NewQA builds a retrieval-QA step over the provided index.
func NewQA(index *Index, generator ai.Generator, topK int, log *zap.Logger) *QA {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &QA{
		index:     index,
		generator: generator,
		topK:      topK,
		maxLogLen: 200,
		logger:    log,
	}
}

// Answer retrieves the top-k chunks for the question and returns the raw
// provider response. Retrieval and generation failures propagate.
func (q *QA) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question must not be empty")
	}

	chunks, err := q.index.Search(ctx, question, q.topK)
	if err != nil {
		return "", fmt.Errorf("retrieving chunks: %w", err)
	}

	prompt := fmt.Sprintf(qaPromptTemplate, strings.Join(chunks, chunkSeparator), question)

	q.logger.Debug("retrieval qa request",
		zap.Int("retrieved_chunks", len(chunks)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, q.maxLogLen)),
	)

	answer, err := q.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	q.logger.Debug("retrieval qa response",
		zap.Int("response_length", utf8.RuneCountInString(answer)),
		zap.String("response_preview", logger.TruncateForLog(answer, q.maxLogLen)),
	)

	return answer, nil
}
