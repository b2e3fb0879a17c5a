package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeQA struct {
	mu        sync.Mutex
	questions []string
	inflight  int
	peak      int

	answers map[string]string
	errs    map[string]error
}

func (f *fakeQA) Answer(_ context.Context, question string) (string, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.inflight++
	if f.inflight > f.peak {
		f.peak = f.inflight
	}
	f.mu.Unlock()

	// give other workers a chance to overlap
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.inflight--
	f.mu.Unlock()

	for skill, err := range f.errs {
		if strings.Contains(question, skill) {
			return "", err
		}
	}
	for skill, answer := range f.answers {
		if strings.Contains(question, skill) {
			return answer, nil
		}
	}
	return "0. No evidence found.", nil
}

func TestScoreSkillsCanonicalOrder(t *testing.T) {
	skills := []string{"Go", "SQL", "Docker", "K8s", "AWS"}

	qa := &fakeQA{answers: map[string]string{}}
	for i, skill := range skills {
		qa.answers[skill] = fmt.Sprintf("%d. Mentioned in the resume.", i)
	}

	scores := scoreSkills(context.Background(), qa, skills, 0, zap.NewNop())

	if len(scores) != len(skills) {
		t.Fatalf("expected %d scores, got %d", len(skills), len(scores))
	}
	for i, skill := range skills {
		if scores[i].Skill != skill {
			t.Fatalf("position %d: expected %q, got %q", i, skill, scores[i].Skill)
		}
		if scores[i].Score != i {
			t.Fatalf("skill %q: expected score %d, got %d", skill, i, scores[i].Score)
		}
	}

	if len(qa.questions) != len(skills) {
		t.Fatalf("expected one query per skill, got %d", len(qa.questions))
	}
	if qa.peak > ScoreWorkers {
		t.Fatalf("concurrency exceeded worker limit: %d", qa.peak)
	}
}

func TestScoreSkillsFailureIsolation(t *testing.T) {
	qa := &fakeQA{
		answers: map[string]string{"Go": "8. Strong evidence of Go usage."},
		errs:    map[string]error{"SQL": errors.New("deadline exceeded")},
	}

	scores := scoreSkills(context.Background(), qa, []string{"Go", "SQL"}, time.Second, zap.NewNop())

	if scores[0].Score != 8 {
		t.Fatalf("healthy skill must keep its score, got %d", scores[0].Score)
	}
	if scores[1].Skill != "SQL" || scores[1].Score != 0 {
		t.Fatalf("failed skill must degrade to zero, got %+v", scores[1])
	}
}

func TestParseScoreResponse(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		score     int
		reasoning string
	}{
		{
			name:      "rating then reasoning",
			response:  "8. Strong evidence of professional Go experience.",
			score:     8,
			reasoning: "Strong evidence of professional Go experience.",
		},
		{
			name:      "clamped above ten",
			response:  "15. Way beyond the scale.",
			score:     10,
			reasoning: "Way beyond the scale.",
		},
		{
			name:     "no digits",
			response: "The resume does not mention this at all",
			score:    0,
		},
		{
			name:     "no period",
			response: "7",
			score:    7,
		},
		{
			name:      "digits embedded in prose",
			response:  "I would rate this a 9. The skill is prominent.",
			score:     9,
			reasoning: "The skill is prominent.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasoning := parseScoreResponse(tt.response)
			if score != tt.score {
				t.Fatalf("expected score %d, got %d", tt.score, score)
			}
			if reasoning != tt.reasoning {
				t.Fatalf("expected reasoning %q, got %q", tt.reasoning, reasoning)
			}
		})
	}
}
