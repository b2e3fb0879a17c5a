package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spigell/resume-agent/internal/analysis"
	"go.uber.org/zap"
)

func TestRunQuestionGenerationWithoutAnalysis(t *testing.T) {
	session := analysis.NewSession(nil, nil, nil, analysis.Options{}, zap.NewNop())

	var out bytes.Buffer
	err := runQuestionGeneration(context.Background(), &out, session, &Config{}, "Easy", 3, zap.NewNop())
	if err != nil {
		t.Fatalf("a missing analysis must not be fatal, got %v", err)
	}

	if !strings.Contains(out.String(), analysis.GuidanceMessage) {
		t.Fatalf("expected the guidance message, got %q", out.String())
	}
}
