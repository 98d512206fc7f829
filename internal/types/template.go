package types

import "fmt"

// TemplateID identifies one of the fixed visual layouts
type TemplateID string

// Template identifiers
const (
	TemplateModern       TemplateID = "modern"
	TemplateMinimal      TemplateID = "minimal"
	TemplateProfessional TemplateID = "professional"
	TemplateCreative     TemplateID = "creative"
)

// DefaultTemplate is the layout selected when nothing else is known
const DefaultTemplate = TemplateModern

// Template describes a layout in the template catalogue
type Template struct {
	ID          TemplateID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
}

// Templates returns the catalogue in display order.
func Templates() []Template {
	return []Template{
		{ID: TemplateModern, Name: "Modern", Description: "Clean and contemporary design with a sidebar", Image: "/template-1.png"},
		{ID: TemplateMinimal, Name: "Minimal", Description: "Simple and elegant with a focus on content", Image: "/template-2.png"},
		{ID: TemplateProfessional, Name: "Professional", Description: "Traditional format ideal for corporate roles", Image: "/template-3.png"},
		{ID: TemplateCreative, Name: "Creative", Description: "Bold design for creative industries", Image: "/template-4.png"},
	}
}

// IsValid reports whether id names a known template
func (id TemplateID) IsValid() bool {
	switch id {
	case TemplateModern, TemplateMinimal, TemplateProfessional, TemplateCreative:
		return true
	}
	return false
}

// ParseTemplateID converts a raw identifier into a TemplateID.
func ParseTemplateID(raw string) (TemplateID, error) {
	id := TemplateID(raw)
	if !id.IsValid() {
		return "", fmt.Errorf("unknown template %q", raw)
	}
	return id, nil
}

// SkillLevel is a proficiency level for a Skill
type SkillLevel string

// Known skill levels, lowest to highest
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// DefaultSkillLevel is used when a level is missing
const DefaultSkillLevel = LevelIntermediate

// SkillLevels returns the known levels in ascending order.
func SkillLevels() []SkillLevel {
	return []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
}

// IsValidLevel reports whether level is one of the known skill levels.
func IsValidLevel(level string) bool {
	for _, l := range SkillLevels() {
		if string(l) == level {
			return true
		}
	}
	return false
}
