package analysis

import (
	"reflect"
	"testing"
)

func TestAggregateOverallScore(t *testing.T) {
	skills := []string{"Go", "SQL", "Docker"}
	scores := []SkillScore{
		{Skill: "Go", Score: 8},
		{Skill: "SQL", Score: 5},
		{Skill: "Docker", Score: 9},
	}

	result := Aggregate(skills, scores, DefaultCutoffScore)

	// round(100 * 22 / 30) = 73
	if result.OverallScore != 73 {
		t.Fatalf("expected overall score 73, got %d", result.OverallScore)
	}
	if result.Selected {
		t.Fatal("73 must not pass the default cutoff of 75")
	}
}

func TestAggregateRoundsHalfUp(t *testing.T) {
	// 100 * 5 / (10 * 2) = 25, 100 * 3 / (10 * 2) = 15
	result := Aggregate([]string{"A", "B"}, []SkillScore{
		{Skill: "A", Score: 2},
		{Skill: "B", Score: 3},
	}, 75)

	if result.OverallScore != 25 {
		t.Fatalf("expected 25, got %d", result.OverallScore)
	}

	// 100 * 9 / (10 * 4) = 22.5 rounds to 23
	result = Aggregate([]string{"A", "B", "C", "D"}, []SkillScore{
		{Skill: "A", Score: 3},
		{Skill: "B", Score: 3},
		{Skill: "C", Score: 3},
		{Skill: "D", Score: 0},
	}, 75)

	if result.OverallScore != 23 {
		t.Fatalf("expected 23, got %d", result.OverallScore)
	}
}

func TestAggregateSelectionAtCutoff(t *testing.T) {
	scores := []SkillScore{{Skill: "Go", Score: 8}}
	// 100 * 8 / 10 = 80
	if !Aggregate([]string{"Go"}, scores, 80).Selected {
		t.Fatal("score equal to cutoff must be selected")
	}
	if Aggregate([]string{"Go"}, scores, 81).Selected {
		t.Fatal("score below cutoff must not be selected")
	}
}

func TestAggregateMissingAndStrengths(t *testing.T) {
	skills := []string{"Go", "SQL", "Docker", "K8s"}
	scores := []SkillScore{
		{Skill: "Go", Score: 9},
		{Skill: "SQL", Score: 6},
		{Skill: "Docker", Score: 5},
		{Skill: "K8s", Score: 0},
	}

	result := Aggregate(skills, scores, 75)

	if !reflect.DeepEqual(result.MissingSkills, []string{"Docker", "K8s"}) {
		t.Fatalf("unexpected missing skills: %v", result.MissingSkills)
	}
	if !reflect.DeepEqual(result.Strengths, []string{"Go"}) {
		t.Fatalf("unexpected strengths: %v", result.Strengths)
	}

	// score 6 lands in neither list
	for _, skill := range append(result.MissingSkills, result.Strengths...) {
		if skill == "SQL" {
			t.Fatal("score 6 must be neither missing nor a strength")
		}
	}
}

func TestAggregateEmptySkills(t *testing.T) {
	result := Aggregate(nil, nil, 75)

	if result.OverallScore != 0 {
		t.Fatalf("expected score 0 for empty skill set, got %d", result.OverallScore)
	}
	if result.Selected {
		t.Fatal("empty skill set must not be selected with a positive cutoff")
	}
	if !Aggregate(nil, nil, 0).Selected {
		t.Fatal("cutoff 0 selects even an empty skill set")
	}
}

func TestAggregateUnscoredSkillDefaultsToZero(t *testing.T) {
	result := Aggregate([]string{"Go", "Rust"}, []SkillScore{{Skill: "Go", Score: 10}}, 75)

	if got := result.SkillScores["Rust"].Score; got != 0 {
		t.Fatalf("expected 0 for unscored skill, got %d", got)
	}
	if got := result.SkillScores["Rust"].Skill; got != "Rust" {
		t.Fatalf("expected the skill label to be filled in, got %q", got)
	}
	if result.OverallScore != 50 {
		t.Fatalf("expected 50, got %d", result.OverallScore)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	skills := []string{"Go", "SQL"}
	scores := []SkillScore{
		{Skill: "Go", Score: 7, Reasoning: "solid"},
		{Skill: "SQL", Score: 4, Reasoning: "thin"},
	}

	first := Aggregate(skills, scores, 75)
	second := Aggregate(skills, scores, 75)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("aggregation must be deterministic for identical inputs")
	}
}

func TestAggregateImprovementAreas(t *testing.T) {
	scores := []SkillScore{{Skill: "Go", Score: 2}}

	rejected := Aggregate([]string{"Go"}, scores, 75)
	if !reflect.DeepEqual(rejected.ImprovementAreas, []string{"Go"}) {
		t.Fatalf("expected missing skills as improvement areas, got %v", rejected.ImprovementAreas)
	}

	selected := Aggregate([]string{"Go"}, []SkillScore{{Skill: "Go", Score: 8}}, 75)
	if len(selected.ImprovementAreas) != 0 {
		t.Fatalf("expected no improvement areas when selected, got %v", selected.ImprovementAreas)
	}
}
