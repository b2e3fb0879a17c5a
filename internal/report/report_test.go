package report

import (
	"strings"
	"testing"

	"github.com/spigell/resume-agent/internal/analysis"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		OverallScore: 55,
		Selected:     false,
		Reasoning:    "Scored on resume evidence.",
		Skills:       []string{"Go", "Kubernetes"},
		SkillScores: map[string]analysis.SkillScore{
			"Go":         {Skill: "Go", Score: 9},
			"Kubernetes": {Skill: "Kubernetes", Score: 2},
		},
		Strengths:        []string{"Go"},
		MissingSkills:    []string{"Kubernetes"},
		ImprovementAreas: []string{"Kubernetes"},
		Weaknesses: []analysis.WeaknessDetail{{
			Skill:       "Kubernetes",
			Score:       2,
			Detail:      "No cluster operations experience is mentioned.",
			Suggestions: []string{"Describe any container orchestration work"},
			Example:     "Operated Kubernetes clusters for staging and production.",
		}},
	}
}

func TestAnalysisReport(t *testing.T) {
	out := Analysis(sampleResult())

	for _, want := range []string{
		"# Resume Analysis Report",
		"Overall Score: 55/100",
		"Status: Not Selected",
		"Scored on resume evidence.",
		"- Go (9/10)",
		"## Areas for Improvement",
		"- Kubernetes (2/10)",
		"## Kubernetes (2/10)",
		"No cluster operations experience is mentioned.",
		"Describe any container orchestration work",
		"Example resume line: Operated Kubernetes clusters for staging and production.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestAnalysisReportShortlisted(t *testing.T) {
	res := sampleResult()
	res.Selected = true

	if !strings.Contains(Analysis(res), "Status: Shortlisted") {
		t.Fatal("expected shortlisted status")
	}
}

func TestQuestionsReport(t *testing.T) {
	out := Questions("Medium", []string{"Technical", "Coding"}, []analysis.Question{
		{Type: "Technical", Text: "Explain goroutine scheduling."},
		{Type: "Coding", Text: "Write a worker pool."},
	})

	for _, want := range []string{
		"# Interview Questions",
		"Difficulty: Medium",
		"Types: Technical, Coding",
		"## 1. Technical Question",
		"Explain goroutine scheduling.",
		"## 2. Coding Question",
		"```python\nWrite a worker pool.\n```",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("questions output missing %q:\n%s", want, out)
		}
	}
}
