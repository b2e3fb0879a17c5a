package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/resume-agent/internal/ai"
	"go.uber.org/zap"
)

const skillExtractionPromptTemplate = `Extract a comprehensive list of technical skills, technologies, and competencies required from this job description.
Format the output as a JSON array of strings. Only include the array, nothing else.

Job Description:
%s`

// ExtractSkills asks the provider for the skills a job description requires.
// It is total: provider or parse failures are logged and yield an empty
// slice, which callers treat as "no required skills".
func ExtractSkills(ctx context.Context, generator ai.Generator, jdText string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	jdText = strings.TrimSpace(jdText)
	if jdText == "" {
		log.Warn("job description is empty, no skills to extract")
		return nil
	}

	response, err := generator.GenerateContent(ctx, fmt.Sprintf(skillExtractionPromptTemplate, jdText))
	if err != nil {
		log.Warn("skill extraction call failed", zap.Error(err))
		return nil
	}

	skills := ParseSkillList(response)
	if len(skills) == 0 {
		log.Warn("no skills recognized in provider response",
			zap.Int("response_length", len(response)),
		)
	}

	return skills
}

// ParseSkillList recognizes a list of skills in free-form provider output.
// It first looks for a bracketed list literal and parses it strictly; when
// that fails it falls back to scanning lines for bullet markers or quoted
// strings. A partial parse is acceptable and the result may be empty, but
// the function never fails.
func ParseSkillList(text string) []string {
	if start := strings.Index(text, "["); start != -1 {
		if end := strings.Index(text[start:], "]"); end != -1 {
			if skills := parseListLiteral(text[start : start+end+1]); len(skills) > 0 {
				return skills
			}
		}
	}

	var skills []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			if skill := strings.TrimSpace(line[2:]); skill != "" {
				skills = append(skills, skill)
			}
		case len(line) > 1 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`):
			if skill := strings.Trim(line, `"`); skill != "" {
				skills = append(skills, skill)
			}
		}
	}

	return skills
}

// parseListLiteral decodes a JSON array of strings, tolerating the
// single-quoted variant some models produce instead.
func parseListLiteral(literal string) []string {
	var skills []string
	if err := json.Unmarshal([]byte(literal), &skills); err == nil {
		return cleanSkills(skills)
	}

	singleQuoted := strings.ReplaceAll(literal, `'`, `"`)
	if err := json.Unmarshal([]byte(singleQuoted), &skills); err == nil {
		return cleanSkills(skills)
	}

	return nil
}

func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	return cleaned
}

// DefaultRoles is the built-in role catalogue used when no custom job
// description is supplied. It can be extended or replaced through the
// `roles` configuration key.
func DefaultRoles() map[string][]string {
	return map[string][]string{
		"AI/ML Engineer": {
			"Python", "Machine Learning", "Deep Learning", "PyTorch",
			"TensorFlow", "SQL", "MLOps",
		},
		"Backend Engineer": {
			"Go", "REST APIs", "PostgreSQL", "Docker", "Kubernetes",
			"Microservices", "CI/CD",
		},
		"Data Scientist": {
			"Python", "Statistics", "Pandas", "SQL", "Machine Learning",
			"Data Visualization",
		},
		"DevOps Engineer": {
			"Linux", "Docker", "Kubernetes", "Terraform", "AWS", "CI/CD",
			"Monitoring",
		},
		"Frontend Engineer": {
			"JavaScript", "TypeScript", "React", "HTML", "CSS", "Testing",
		},
	}
}

// RolesFromConfig decodes a raw roles mapping, as a config loader produces
// it, into catalogue form. Roles named in raw override the built-in catalogue
// entry for the same name.
func RolesFromConfig(raw any) (map[string][]string, error) {
	roles := DefaultRoles()
	if raw == nil {
		return roles, nil
	}

	custom := map[string][]string{}
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &custom,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding roles configuration: %w", err)
	}

	for name, skills := range custom {
		roles[name] = cleanSkills(skills)
	}

	return roles, nil
}

// RoleNames returns the catalogue's role names in a stable order.
func RoleNames(roles map[string][]string) []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
