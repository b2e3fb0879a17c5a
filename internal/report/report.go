// Package report renders analysis results as plain text and interview
// questions as markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-agent/internal/analysis"
)

// Analysis renders the full scoring report for a completed analysis.
func Analysis(res *analysis.Result) string {
	var b strings.Builder

	b.WriteString("# Resume Analysis Report\n\n")
	fmt.Fprintf(&b, "Overall Score: %d/100\n", res.OverallScore)

	status := "Not Selected"
	if res.Selected {
		status = "Shortlisted"
	}
	fmt.Fprintf(&b, "Status: %s\n\n", status)

	if res.Reasoning != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Reasoning)
	}

	if len(res.Strengths) > 0 {
		b.WriteString("## Strengths\n\n")
		for _, skill := range res.Strengths {
			fmt.Fprintf(&b, "- %s (%d/10)\n", skill, res.SkillScores[skill].Score)
		}
		b.WriteString("\n")
	}

	if len(res.ImprovementAreas) > 0 {
		b.WriteString("## Areas for Improvement\n\n")
		for _, skill := range res.ImprovementAreas {
			fmt.Fprintf(&b, "- %s (%d/10)\n", skill, res.SkillScores[skill].Score)
		}
		b.WriteString("\n")
	}

	for _, w := range res.Weaknesses {
		fmt.Fprintf(&b, "## %s (%d/10)\n\n", w.Skill, w.Score)
		if w.Detail != "" {
			fmt.Fprintf(&b, "%s\n\n", w.Detail)
		}
		if len(w.Suggestions) > 0 {
			b.WriteString("Suggestions:\n")
			for _, s := range w.Suggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n")
		}
		if w.Example != "" {
			fmt.Fprintf(&b, "Example resume line: %s\n\n", w.Example)
		}
	}

	b.WriteString("Generated by resume-agent.\n")

	return b.String()
}

// Questions renders generated interview questions as a markdown document
// suitable for saving to a file.
func Questions(difficulty string, types []string, qs []analysis.Question) string {
	var b strings.Builder

	b.WriteString("# Interview Questions\n\n")
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Types: %s\n\n", strings.Join(types, ", "))

	for i, q := range qs {
		fmt.Fprintf(&b, "## %d. %s Question\n\n", i+1, q.Type)
		if q.Type == "Coding" {
			fmt.Fprintf(&b, "```python\n%s\n```\n\n", q.Text)
		} else {
			fmt.Fprintf(&b, "%s\n\n", q.Text)
		}
	}

	return b.String()
}
