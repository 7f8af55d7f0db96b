package filter

import (
	"github.com/samber/lo"
	"strings"
)

// SkillSet is the ordered list of lowercased keywords a posting is matched against.
type SkillSet []string

// ParseSkills splits a comma separated list, dropping blanks and repeats while keeping order.
func ParseSkills(raw string) SkillSet {
	skills := lo.FilterMap(strings.Split(raw, ","), func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
	return lo.Uniq(skills)
}

// Matches reports whether any trimmed skill occurs in text, ignoring case.
// It is a plain substring check, so "java" matches "javascript".
func Matches(text string, skills []string) bool {
	lowered := strings.ToLower(text)
	return lo.SomeBy(skills, func(skill string) bool {
		return strings.Contains(lowered, strings.ToLower(strings.TrimSpace(skill)))
	})
}

func (s SkillSet) Matches(text string) bool {
	return Matches(text, s)
}

// Head returns at most n leading skills, used to build search queries.
func (s SkillSet) Head(n int) []string {
	return lo.Slice(s, 0, n)
}
