package types

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for a list item.
// Identifiers only need to be unique within their own list.
func NewID() string {
	return uuid.NewString()
}

// NewBatchID returns a prefix shared by items generated together.
// Combine it with an item position using BatchItemID.
func NewBatchID() string {
	return uuid.NewString()[:8]
}

// BatchItemID composes a batch prefix and a position into an item identifier
func BatchItemID(batch string, index int) string {
	return fmt.Sprintf("%s-%d", batch, index)
}

// AddExperience returns a new list with a blank experience appended.
func AddExperience(list []Experience) []Experience {
	out := make([]Experience, 0, len(list)+1)
	out = append(out, list...)
	return append(out, Experience{ID: NewID()})
}

// UpdateExperience returns a new list where the item with the given ID is replaced.
// The list is returned unchanged (as a copy) when no item matches.
func UpdateExperience(list []Experience, item Experience) []Experience {
	out := make([]Experience, len(list))
	for i, e := range list {
		if e.ID == item.ID {
			out[i] = item
			continue
		}
		out[i] = e
	}
	return out
}

// RemoveExperience returns a new list without the item with the given ID.
func RemoveExperience(list []Experience, id string) []Experience {
	out := make([]Experience, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// AddEducation returns a new list with a blank education entry appended.
func AddEducation(list []Education) []Education {
	out := make([]Education, 0, len(list)+1)
	out = append(out, list...)
	return append(out, Education{ID: NewID()})
}

// UpdateEducation returns a new list where the item with the given ID is replaced.
func UpdateEducation(list []Education, item Education) []Education {
	out := make([]Education, len(list))
	for i, e := range list {
		if e.ID == item.ID {
			out[i] = item
			continue
		}
		out[i] = e
	}
	return out
}

// RemoveEducation returns a new list without the item with the given ID.
func RemoveEducation(list []Education, id string) []Education {
	out := make([]Education, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// AddSkill returns a new list with a named skill appended.
// An empty level falls back to DefaultSkillLevel.
func AddSkill(list []Skill, name, level string) []Skill {
	if level == "" {
		level = string(DefaultSkillLevel)
	}
	out := make([]Skill, 0, len(list)+1)
	out = append(out, list...)
	return append(out, Skill{ID: NewID(), Name: name, Level: level})
}

// UpdateSkillLevel returns a new list with the level of one skill changed.
func UpdateSkillLevel(list []Skill, id, level string) []Skill {
	out := make([]Skill, len(list))
	for i, s := range list {
		if s.ID == id {
			s.Level = level
		}
		out[i] = s
	}
	return out
}

// RemoveSkill returns a new list without the skill with the given ID.
func RemoveSkill(list []Skill, id string) []Skill {
	out := make([]Skill, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
