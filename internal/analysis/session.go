// Package analysis scores a resume against a skill set and produces the
// selection verdict, weakness breakdown and interview questions. All provider
// calls flow through the ai interfaces, so the package stays testable with
// in-memory stubs.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/document"
	"github.com/spigell/resume-agent/internal/logger"
	"github.com/spigell/resume-agent/internal/rag"
	"go.uber.org/zap"
)

// ErrNoAnalysis is returned by operations that require a completed resume
// analysis when none has run yet.
var ErrNoAnalysis = errors.New("no analysis available")

// GuidanceMessage is shown instead of an answer when an operation needs a
// completed analysis and none has run.
const GuidanceMessage = "Please analyze a resume first."

const defaultRequestTimeout = 60 * time.Second

// Options tune a Session. Zero values fall back to sane defaults.
type Options struct {
	CutoffScore    int
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
	RequestTimeout time.Duration
}

// Session drives one resume analysis and the follow-up operations on its
// result. It is not safe for concurrent use.
type Session struct {
	generator ai.Generator
	embedder  ai.Embedder
	extractor *document.Extractor
	opts      Options
	logger    *zap.Logger

	resumeText string
	ragIndex   *rag.Index
	skills     []string
	result     *Result
}

// NewSession wires a session from its provider and extraction dependencies.
func NewSession(gen ai.Generator, emb ai.Embedder, extractor *document.Extractor, opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CutoffScore <= 0 {
		opts.CutoffScore = DefaultCutoffScore
	}
	if opts.TopK <= 0 {
		opts.TopK = rag.DefaultTopK
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	return &Session{
		generator: gen,
		embedder:  emb,
		extractor: extractor,
		opts:      opts,
		logger:    log,
	}
}

// AnalyzeRequest names the inputs of one analysis run. Exactly one of
// RoleSkills and JobDescriptionPath should be set; when both are present the
// explicit skill list wins.
type AnalyzeRequest struct {
	ResumePath         string
	RoleSkills         []string
	JobDescriptionPath string
}

// Analyze runs the full pipeline: extract the resume, build the retrieval
// indexes, resolve the target skills, score each one and aggregate the
// verdict. Low-scoring skills are elaborated into weakness details. The
// result is kept on the session for Ask and GenerateQuestions.
func (s *Session) Analyze(ctx context.Context, req AnalyzeRequest) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String(logger.FieldRun, runID))

	resume := s.extractor.ExtractFile(req.ResumePath, document.KindResume)
	if resume.Text == "" {
		return nil, fmt.Errorf("resume %s yielded no text to analyze", req.ResumePath)
	}
	s.resumeText = resume.Text

	index, err := rag.BuildChunked(ctx, s.embedder, resume.Text, s.opts.ChunkSize, s.opts.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("indexing resume: %w", err)
	}
	s.ragIndex = index
	log.Info("resume indexed", zap.Int("chunks", index.Len()))

	skills := req.RoleSkills
	if len(skills) == 0 && req.JobDescriptionPath != "" {
		jd := s.extractor.ExtractFile(req.JobDescriptionPath, document.KindJobDescription)
		skills = ExtractSkills(ctx, s.generator, jd.Text, log)
	}
	s.skills = skills

	if len(skills) == 0 {
		log.Warn("no target skills resolved, producing empty verdict")
		s.result = Aggregate(nil, nil, s.opts.CutoffScore)
		s.result.RunID = runID
		return s.result, nil
	}

	// Scoring queries run against the whole resume as a single chunk so
	// that a skill mentioned anywhere is visible to every query.
	whole, err := rag.BuildWhole(ctx, s.embedder, resume.Text)
	if err != nil {
		return nil, fmt.Errorf("indexing resume for scoring: %w", err)
	}

	qa := rag.NewQA(whole, s.generator, 1, log)
	scores := scoreSkills(ctx, qa, skills, s.opts.RequestTimeout, log)

	result := Aggregate(skills, scores, s.opts.CutoffScore)
	result.RunID = runID

	for _, miss := range result.MissingSkills {
		score := result.SkillScores[miss].Score
		result.Weaknesses = append(result.Weaknesses,
			elaborateWeakness(ctx, s.generator, resume.Text, miss, score, log))
	}

	s.result = result

	log.Info("analysis complete",
		zap.Int("overall_score", result.OverallScore),
		zap.Bool("selected", result.Selected),
		zap.Int("skills", len(skills)),
	)

	return result, nil
}

// Ask answers a free-form question about the analyzed resume. Before an
// analysis has run there is nothing to retrieve from, so the caller gets a
// fixed guidance message and no provider call is made.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if s.ragIndex == nil || s.resumeText == "" {
		return GuidanceMessage, nil
	}

	qa := rag.NewQA(s.ragIndex, s.generator, s.opts.TopK, s.logger)
	return qa.Answer(ctx, question)
}

// Result returns the outcome of the last Analyze call, or nil.
func (s *Session) Result() *Result {
	return s.result
}
