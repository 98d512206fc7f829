package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/types"
)

// maxConcurrentFields bounds the number of in-flight completion calls during autofill
const maxConcurrentFields = 4

// Field names reported by Autofill
const (
	FieldSummary = "summary"
	FieldSkills  = "skills"
)

// Autofill event statuses
const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// AutofillEvent reports the outcome of one field
type AutofillEvent struct {
	Field string `json:"field"`
	// ItemID identifies the experience entry for per-item fields
	ItemID string `json:"itemId,omitempty"`
	Status string `json:"status"` // StatusDone or StatusFailed
	Error  string `json:"error,omitempty"`
}

// AutofillReport lists every field Autofill attempted
type AutofillReport struct {
	Events []AutofillEvent `json:"events"`
}

// Failed returns the events whose generation failed
func (r *AutofillReport) Failed() []AutofillEvent {
	var failed []AutofillEvent
	for _, e := range r.Events {
		if e.Status == StatusFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

// AutofillOptions controls Autofill
type AutofillOptions struct {
	// OnEvent is called once per finished field; calls are serialized
	OnEvent func(AutofillEvent)
}

// Autofill generates every empty AI-assisted field of a copy of data: the summary,
// the skill list and each experience description. Fields are generated concurrently
// and independently; a failing field never aborts the others.
func (g *Generator) Autofill(ctx context.Context, data *types.ResumeData, opts AutofillOptions) (*types.ResumeData, *AutofillReport) {
	out := data.Clone()
	report := &AutofillReport{}

	var mu sync.Mutex
	record := func(field, itemID string, err error, apply func()) {
		mu.Lock()
		defer mu.Unlock()
		event := AutofillEvent{Field: field, ItemID: itemID, Status: StatusDone}
		if err != nil {
			event.Status = StatusFailed
			event.Error = err.Error()
		} else {
			apply()
		}
		report.Events = append(report.Events, event)
		if opts.OnEvent != nil {
			opts.OnEvent(event)
		}
	}

	hint := experienceHint(data.Experience)

	var eg errgroup.Group
	eg.SetLimit(maxConcurrentFields)

	if strings.TrimSpace(data.PersonalInfo.Summary) == "" {
		eg.Go(func() error {
			summary, err := g.GenerateSummary(ctx, SummaryRequest{
				Name:       data.PersonalInfo.Name,
				Title:      data.PersonalInfo.Title,
				Experience: hint,
			})
			record(FieldSummary, "", err, func() { out.PersonalInfo.Summary = summary })
			return nil
		})
	}

	if len(data.Skills) == 0 {
		eg.Go(func() error {
			skills, err := g.GenerateSkills(ctx, SkillsRequest{
				Title:      data.PersonalInfo.Title,
				Experience: hint,
			})
			record(FieldSkills, "", err, func() { out.Skills = skills })
			return nil
		})
	}

	for i, exp := range data.Experience {
		if strings.TrimSpace(exp.Description) != "" {
			continue
		}
		eg.Go(func() error {
			desc, err := g.GenerateExperienceDescription(ctx, ExperienceRequest{
				Position:  exp.Position,
				Company:   exp.Company,
				StartDate: exp.StartDate,
				EndDate:   exp.EndDate,
			})
			record(fmt.Sprintf("experience[%d]", i), exp.ID, err, func() { out.Experience[i].Description = desc })
			return nil
		})
	}

	_ = eg.Wait()
	return out, report
}

// Apply copies the successfully generated fields from filled into dst.
// Experience descriptions are matched by identifier, so entries removed or
// reordered in dst since the run started are handled; a description the
// user has typed in the meantime is kept.
func (r *AutofillReport) Apply(dst, filled *types.ResumeData) {
	for _, e := range r.Events {
		if e.Status != StatusDone {
			continue
		}
		switch {
		case e.Field == FieldSummary:
			if strings.TrimSpace(dst.PersonalInfo.Summary) == "" {
				dst.PersonalInfo.Summary = filled.PersonalInfo.Summary
			}
		case e.Field == FieldSkills:
			if len(dst.Skills) == 0 {
				dst.Skills = append([]types.Skill(nil), filled.Skills...)
			}
		case e.ItemID != "":
			desc := ""
			for _, exp := range filled.Experience {
				if exp.ID == e.ItemID {
					desc = exp.Description
					break
				}
			}
			for i := range dst.Experience {
				if dst.Experience[i].ID == e.ItemID && strings.TrimSpace(dst.Experience[i].Description) == "" {
					dst.Experience[i].Description = desc
				}
			}
		}
	}
}

// experienceHint summarizes positions as "Position at Company" entries
func experienceHint(list []types.Experience) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		switch {
		case e.Position != "" && e.Company != "":
			parts = append(parts, e.Position+" at "+e.Company)
		case e.Position != "":
			parts = append(parts, e.Position)
		case e.Company != "":
			parts = append(parts, e.Company)
		}
	}
	return strings.Join(parts, "; ")
}
