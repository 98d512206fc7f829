// Package builder holds the builder view state: load ordering, wizard steps
// and the per-operation busy flags of an editing session.
package builder

import (
	"fmt"
	"strings"
)

// Step is a wizard tab
type Step string

// Wizard steps in display order
const (
	StepTemplates  Step = "templates"
	StepPersonal   Step = "personal"
	StepExperience Step = "experience"
	StepEducation  Step = "education"
	StepSkills     Step = "skills"
	StepPreview    Step = "preview"
)

var stepOrder = []Step{StepTemplates, StepPersonal, StepExperience, StepEducation, StepSkills, StepPreview}

// Steps returns the wizard steps in order
func Steps() []Step {
	return append([]Step(nil), stepOrder...)
}

func (s Step) index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is a known step
func (s Step) IsValid() bool {
	return s.index() >= 0
}

// Next returns the following step; the last step returns itself
func (s Step) Next() Step {
	i := s.index()
	if i < 0 {
		return StepTemplates
	}
	if i == len(stepOrder)-1 {
		return s
	}
	return stepOrder[i+1]
}

// Previous returns the preceding step; the first step returns itself
func (s Step) Previous() Step {
	i := s.index()
	if i <= 0 {
		return StepTemplates
	}
	return stepOrder[i-1]
}

// ParseStep converts a string into a Step
func ParseStep(s string) (Step, error) {
	step := Step(s)
	if !step.IsValid() {
		names := make([]string, 0, len(stepOrder))
		for _, known := range Steps() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unknown step %q (expected one of: %s)", s, strings.Join(names, ", "))
	}
	return step, nil
}
