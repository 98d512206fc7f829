package generation

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// skillParser is one tier of the skills extraction chain.
// It reports false when it could not produce at least one skill.
type skillParser struct {
	name  string
	parse func(text, batch string) ([]types.Skill, bool)
}

// skillParsers is tried in order; the last tier never fails.
var skillParsers = []skillParser{
	{name: "json", parse: parseSkillsJSON},
	{name: "pattern", parse: parseSkillsPattern},
	{name: "default", parse: func(_ string, batch string) ([]types.Skill, bool) {
		return DefaultSkills(batch), true
	}},
}

// skillPairPattern matches "name": "...", optionally followed by "level": "...".
// Values close on the quote that opened them, so "Developer's Tools" survives.
var skillPairPattern = regexp.MustCompile(`["']name["']\s*:\s*(?:"([^"]*)"|'([^']*)')(?:\s*,\s*["']level["']\s*:\s*(?:"([^"]*)"|'([^']*)'))?`)

// ParseSkills extracts skills from untrusted completion text.
// The result is never empty and every entry has a name, a known level and a fresh ID.
func ParseSkills(text string) []types.Skill {
	skills, _ := parseSkillsWithTier(text)
	return skills
}

func parseSkillsWithTier(text string) ([]types.Skill, string) {
	batch := types.NewBatchID()
	for _, p := range skillParsers {
		if skills, ok := p.parse(text, batch); ok {
			if p.name != "json" {
				log.Printf("[generation] skills parsed by %s fallback (raw text: %q)", p.name, truncate(text, 200))
			}
			return skills, p.name
		}
	}
	// unreachable: the default tier always succeeds
	return DefaultSkills(batch), "default"
}

type rawSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

func parseSkillsJSON(text, batch string) ([]types.Skill, bool) {
	var raw []rawSkill
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(text)), &raw); err != nil {
		// Fences in the middle of prose; take the first array anywhere
		arr := llm.FindJSONArray(llm.StripCodeFences(text))
		if arr == "" {
			return nil, false
		}
		if err := json.Unmarshal([]byte(arr), &raw); err != nil {
			return nil, false
		}
	}
	if len(raw) == 0 {
		return nil, false
	}

	skills := make([]types.Skill, len(raw))
	for i, r := range raw {
		skills[i] = newSkill(batch, i, r.Name, r.Level)
	}
	return skills, true
}

func parseSkillsPattern(text, batch string) ([]types.Skill, bool) {
	matches := skillPairPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, false
	}

	skills := make([]types.Skill, len(matches))
	for i, m := range matches {
		skills[i] = newSkill(batch, i, m[1]+m[2], m[3]+m[4])
	}
	return skills, true
}

// DefaultSkills returns the fixed fallback list used when nothing can be parsed.
func DefaultSkills(batch string) []types.Skill {
	defaults := []struct {
		name  string
		level types.SkillLevel
	}{
		{"Communication", types.LevelAdvanced},
		{"Problem Solving", types.LevelIntermediate},
		{"Teamwork", types.LevelExpert},
		{"Time Management", types.LevelAdvanced},
		{"Adaptability", types.LevelIntermediate},
	}

	skills := make([]types.Skill, len(defaults))
	for i, d := range defaults {
		skills[i] = types.Skill{
			ID:    types.BatchItemID(batch, i),
			Name:  d.name,
			Level: string(d.level),
		}
	}
	return skills
}

func newSkill(batch string, index int, name, level string) types.Skill {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Skill %d", index+1)
	}
	return types.Skill{
		ID:    types.BatchItemID(batch, index),
		Name:  name,
		Level: normalizeLevel(level),
	}
}

// normalizeLevel maps a level onto the known set, case-insensitively.
// Unknown or missing levels become the default level.
func normalizeLevel(level string) string {
	level = strings.TrimSpace(level)
	for _, known := range types.SkillLevels() {
		if strings.EqualFold(level, string(known)) {
			return string(known)
		}
	}
	return string(types.DefaultSkillLevel)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
