package cv

import (
	"regexp"
	"strings"
)

// Profile is the basic information pulled out of a résumé without an LLM.
type Profile struct {
	Name   string
	Email  string
	Skills []string
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Common skill keywords
	skillKeywords = []string{
		"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript",
		"React", "Vue", "Angular", "Node.js", "Docker", "Kubernetes",
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "AWS", "Azure", "GCP",
		"GraphQL", "REST", "Microservices", "Git", "CI/CD",
		"Machine Learning", "Data Science", "DevOps", "Figma", "SQL",
	}
)

// ExtractProfile finds the email, a likely name (first non-empty line without
// an email or digits) and keyword skills.
func ExtractProfile(text string) Profile {
	p := Profile{
		Email:  emailPattern.FindString(text),
		Skills: ExtractSkills(text),
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || emailPattern.MatchString(line) || strings.ContainsAny(line, "0123456789") {
			continue
		}
		if len(strings.Fields(line)) <= 4 {
			p.Name = line
		}
		break
	}
	return p
}

// ExtractSkills matches skill keywords on word boundaries, case-insensitively.
func ExtractSkills(text string) []string {
	var skills []string
	for _, skill := range skillKeywords {
		pattern := `(?i)(^|[^A-Za-z0-9])` + regexp.QuoteMeta(skill) + `($|[^A-Za-z0-9])`
		if regexp.MustCompile(pattern).MatchString(text) {
			skills = append(skills, skill)
		}
	}
	return skills
}
