package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/logger"
	"go.uber.org/zap"
)

const weaknessResumeExcerptLimit = 3000

const weaknessFallbackDetailLimit = 200

const weaknessPromptTemplate = `The candidate scored low on the skill %q (%d/10) based on their resume.

Resume excerpt:
%s

Explain why this skill appears weak or missing, and suggest how the candidate could improve. Respond with a JSON object with these keys:
- "weakness": a short explanation of the gap
- "improvement_suggestions": a list of concrete suggestions
- "example_addition": an example resume line the candidate could add

Respond with JSON only.`

type weaknessPayload struct {
	Weakness               string   `json:"weakness"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	ExampleAddition        string   `json:"example_addition"`
}

// elaborateWeakness asks the provider to explain one low-scoring skill. The
// response is expected to be JSON; when parsing fails, the raw text stands in
// as the detail so the report never loses the provider's explanation.
func elaborateWeakness(ctx context.Context, gen ai.Generator, resumeText, skill string, score int, log *zap.Logger) WeaknessDetail {
	detail := WeaknessDetail{Skill: skill, Score: score}

	prompt := fmt.Sprintf(weaknessPromptTemplate, skill, score, truncateRunes(resumeText, weaknessResumeExcerptLimit))

	response, err := gen.GenerateContent(ctx, prompt)
	if err != nil {
		log.Warn("weakness elaboration failed",
			zap.String(logger.FieldSkill, skill),
			zap.Error(err),
		)
		detail.Detail = "No specific details provided."
		return detail
	}

	var payload weaknessPayload
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		log.Debug("weakness response is not valid json, keeping raw text",
			zap.String(logger.FieldSkill, skill),
			zap.Error(err),
		)
		detail.Detail = truncateRunes(strings.TrimSpace(response), weaknessFallbackDetailLimit)
		return detail
	}

	detail.Detail = payload.Weakness
	detail.Suggestions = payload.ImprovementSuggestions
	detail.Example = payload.ExampleAddition

	return detail
}

// extractJSON strips a markdown code fence wrapper when the provider adds one.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	return text
}

// truncateRunes shortens s to at most limit runes.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
