package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue describes a single validation problem
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found by Validate
type ValidationError struct {
	Issues []FieldIssue `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate performs opt-in field validation: email format, known skill levels
// and identifier uniqueness inside each list. Decoding never calls it, so an
// invalid resume still loads and renders.
func (r *ResumeData) Validate() error {
	var issues []FieldIssue

	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			issues = append(issues, FieldIssue{
				Field:   strings.TrimPrefix(fe.Namespace(), "ResumeData."),
				Message: describeTag(fe),
			})
		}
	}

	issues = append(issues, duplicateIDs("Experience", experienceIDs(r.Experience))...)
	issues = append(issues, duplicateIDs("Education", educationIDs(r.Education))...)
	issues = append(issues, duplicateIDs("Skills", skillIDs(r.Skills))...)

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + fe.Param()
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag()
	}
}

func duplicateIDs(list string, ids []string) []FieldIssue {
	var issues []FieldIssue
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		if seen[id] {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("%s[%d].ID", list, i),
				Message: fmt.Sprintf("duplicate identifier %q", id),
			})
		}
		seen[id] = true
	}
	return issues
}

func experienceIDs(list []Experience) []string {
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}

func educationIDs(list []Education) []string {
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}

func skillIDs(list []Skill) []string {
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}
