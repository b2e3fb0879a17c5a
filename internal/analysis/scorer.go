package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/resume-agent/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScoreWorkers bounds how many skills are scored concurrently. Each score is
// one provider round trip, so the pool stays small.
const ScoreWorkers = 2

const scoreQueryTemplate = "On a scale of 0-10, how clearly does the candidate mention proficiency in %s? Provide a numeric rating first, followed by reasoning."

var scorePattern = regexp.MustCompile(`\d{1,2}`)

// qaRunner is the retrieval-QA dependency of the scorer.
type qaRunner interface {
	Answer(ctx context.Context, question string) (string, error)
}

// scoreSkills rates every skill against the resume concurrently. Results come
// back in the canonical skill order regardless of completion order. A failed
// or timed-out call degrades that one skill to score 0 and never aborts the
// batch.
func scoreSkills(ctx context.Context, qa qaRunner, skills []string, timeout time.Duration, log *zap.Logger) []SkillScore {
	results := make([]SkillScore, len(skills))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ScoreWorkers)

	for i, skill := range skills {
		g.Go(func() error {
			callCtx := gctx
			if timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}

			response, err := qa.Answer(callCtx, fmt.Sprintf(scoreQueryTemplate, skill))
			if err != nil {
				log.Warn("skill scoring failed",
					zap.String(logger.FieldSkill, skill),
					zap.Error(err),
				)
				results[i] = SkillScore{Skill: skill, Reasoning: fmt.Sprintf("scoring failed: %v", err)}
				return nil
			}

			score, reasoning := parseScoreResponse(response)
			results[i] = SkillScore{Skill: skill, Score: score, Reasoning: reasoning}

			log.Debug("skill scored",
				zap.String(logger.FieldSkill, skill),
				zap.Int("score", score),
			)
			return nil
		})
	}

	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	return results
}

// parseScoreResponse extracts the rating and reasoning from a free-form
// provider response. The first 1-2 digit number is the score, clamped to 10;
// no number means 0. Reasoning is the text after the first period, which for
// the usual "8. Because ..." shape drops the rating token. No period means
// empty reasoning.
func parseScoreResponse(response string) (int, string) {
	score := 0
	if match := scorePattern.FindString(response); match != "" {
		score, _ = strconv.Atoi(match)
		if score > 10 {
			score = 10
		}
	}

	reasoning := ""
	if idx := strings.Index(response, "."); idx != -1 {
		reasoning = strings.TrimSpace(response[idx+1:])
	}

	return score, reasoning
}
