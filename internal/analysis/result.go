package analysis

import "math"

const (
	// missingScoreMax is the highest score still counted as a missing skill.
	missingScoreMax = 5
	// strengthScoreMin is the lowest score counted as a strength.
	strengthScoreMin = 7

	// DefaultCutoffScore is the minimum overall score for selection.
	DefaultCutoffScore = 75

	selectionReasoning = "Candidate evaluated based on explicit resume content using semantic similarity and clear numeric scoring."
)

// SkillScore is a single skill's 0-10 proficiency estimate with the
// provider's free-text justification.
type SkillScore struct {
	Skill     string
	Score     int
	Reasoning string
}

// WeaknessDetail describes why the resume is weak in one missing skill and
// how to improve it.
type WeaknessDetail struct {
	Skill       string
	Score       int
	Detail      string
	Suggestions []string
	Example     string
}

// Question is one generated interview question tagged with its category.
type Question struct {
	Type string
	Text string
}

// Result is the outcome of a full analysis run. It is assembled once by the
// pipeline and treated as read-only afterwards.
type Result struct {
	RunID        string
	OverallScore int
	// Skills preserves the canonical scoring order; SkillScores is keyed by
	// the case-sensitive skill label.
	Skills      []string
	SkillScores map[string]SkillScore
	Selected    bool
	Reasoning   string
	// MissingSkills holds skills scored 5 or below, Strengths skills scored
	// 7 or above, both in canonical order. Scores of 6 land in neither.
	MissingSkills    []string
	Strengths        []string
	ImprovementAreas []string
	Weaknesses       []WeaknessDetail
}

// Aggregate combines per-skill scores into the overall outcome. It is a pure
// function of its inputs: no provider calls, deterministic, and safe to rerun.
// An empty skill set yields overall score 0 and selection only when the
// cutoff is not positive. Skills without a score entry default to 0.
func Aggregate(skills []string, scores []SkillScore, cutoff int) *Result {
	result := &Result{
		Skills:        skills,
		SkillScores:   make(map[string]SkillScore, len(skills)),
		Reasoning:     selectionReasoning,
		MissingSkills: []string{},
		Strengths:     []string{},
	}

	byName := make(map[string]SkillScore, len(scores))
	for _, score := range scores {
		byName[score.Skill] = score
	}

	total := 0
	for _, skill := range skills {
		score := byName[skill]
		score.Skill = skill
		result.SkillScores[skill] = score
		total += score.Score

		if score.Score <= missingScoreMax {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
		if score.Score >= strengthScoreMin {
			result.Strengths = append(result.Strengths, skill)
		}
	}

	if len(skills) > 0 {
		result.OverallScore = int(math.Round(float64(total) * 100 / float64(10*len(skills))))
	}
	result.Selected = result.OverallScore >= cutoff

	result.ImprovementAreas = []string{}
	if !result.Selected {
		result.ImprovementAreas = append(result.ImprovementAreas, result.MissingSkills...)
	}

	return result
}
