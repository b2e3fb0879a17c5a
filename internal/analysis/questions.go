package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// QuestionTypes lists the interview question categories the generator knows
// how to ask for.
var QuestionTypes = []string{"Basic", "Technical", "Experience", "Scenario", "Coding", "Behavioral"}

// Difficulties lists the supported difficulty levels.
var Difficulties = []string{"Easy", "Medium", "Hard"}

const questionsResumeExcerptLimit = 2000

const questionsPromptTemplate = `You are preparing interview questions for a candidate.

Resume excerpt:
%s

Focus skills: %s
Candidate strengths: %s
Skills to probe deeper: %s

Generate exactly %d interview questions at %s difficulty. Use only these question types: %s.

Return the questions as a Python-style list of ("Type", "Question") tuples, one tuple per question.`

var questionTuplePattern = regexp.MustCompile(`\(\s*"([^"]+)"\s*,\s*"([^"]+)"\s*\)`)

// GenerateQuestions builds tailored interview questions from the analyzed
// resume. The provider is asked for typed tuples; responses that ignore the
// format are recovered through a line-based fallback. The result holds at
// most count questions and may be empty when the response is unusable.
func (s *Session) GenerateQuestions(ctx context.Context, types []string, difficulty string, count int) ([]Question, error) {
	if s.resumeText == "" || len(s.skills) == 0 {
		return nil, ErrNoAnalysis
	}

	if len(types) == 0 {
		types = QuestionTypes
	}
	if count <= 0 {
		count = 5
	}

	var strengths, missing []string
	if s.result != nil {
		strengths = s.result.Strengths
		missing = s.result.MissingSkills
	}

	prompt := fmt.Sprintf(questionsPromptTemplate,
		truncateRunes(s.resumeText, questionsResumeExcerptLimit),
		strings.Join(s.skills, ", "),
		strings.Join(strengths, ", "),
		strings.Join(missing, ", "),
		count,
		difficulty,
		strings.Join(types, ", "),
	)

	response, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("question generation failed", zap.Error(err))
		return nil, nil
	}

	questions := parseQuestionTuples(response, types)
	if len(questions) == 0 {
		questions = parseQuestionLines(response, types)
	}

	if len(questions) > count {
		questions = questions[:count]
	}

	s.logger.Debug("questions generated", zap.Int("count", len(questions)))

	return questions, nil
}

// parseQuestionTuples pulls ("Type", "Question") pairs out of the response.
// Pairs whose type does not match any requested type are dropped, and the
// matched type is normalized to the requested label.
func parseQuestionTuples(response string, types []string) []Question {
	var questions []Question

	for _, match := range questionTuplePattern.FindAllStringSubmatch(response, -1) {
		if qt, ok := matchQuestionType(match[1], types); ok {
			questions = append(questions, Question{Type: qt, Text: match[2]})
		}
	}

	return questions
}

// parseQuestionLines recovers questions from responses that abandoned the
// tuple format. A line naming a known type starts a question; following lines
// extend it until a blank line.
func parseQuestionLines(response string, types []string) []Question {
	var questions []Question
	var current *Question

	flush := func() {
		if current != nil && current.Text != "" {
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if qt, ok := matchQuestionType(line, types); ok {
			flush()
			text := line
			if idx := strings.Index(line, ":"); idx != -1 {
				text = strings.TrimSpace(line[idx+1:])
			}
			current = &Question{Type: qt, Text: text}
			continue
		}

		if current != nil {
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += line
		}
	}
	flush()

	return questions
}

// matchQuestionType reports which requested type the text mentions, matching
// case-insensitively on substring.
func matchQuestionType(text string, types []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, qt := range types {
		if strings.Contains(lower, strings.ToLower(qt)) {
			return qt, true
		}
	}

	return "", false
}
