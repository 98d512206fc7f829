package builder

import (
	"log"
	"net/url"

	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/types"
)

// Source names where the loaded resume came from
type Source string

// Resume sources in priority order
const (
	SourceURL     Source = "url"
	SourceStorage Source = "storage"
	SourceDefault Source = "default"
)

// State is the builder view state after entering the builder
type State struct {
	Template types.TemplateID  `json:"template"`
	Step     Step              `json:"step"`
	Resume   *types.ResumeData `json:"resume"`
	Source   Source            `json:"source,omitempty"`
}

// Loader is the part of the persistence codec Load needs
type Loader interface {
	Load() (*types.ResumeData, error)
}

var _ Loader = (*persistence.Codec)(nil)

// Load resolves the initial state from navigation parameters and storage.
//
// A non-empty template parameter selects the template and skips the template
// step; an unknown identifier falls back to the default template. A non-empty
// data parameter replaces the resume; storage is then never consulted even if
// it fails to decode. Empty parameters count as absent. Otherwise the stored resume is used, and failing that the
// empty default. Failures are logged, never returned.
func Load(params url.Values, store Loader) *State {
	state := &State{
		Template: types.DefaultTemplate,
		Step:     StepTemplates,
		Resume:   types.NewResumeData(),
		Source:   SourceDefault,
	}

	payload, err := share.Decode(params)
	if err != nil {
		log.Printf("[builder] ignoring shared resume: %v", err)
		payload = &share.Payload{Template: types.TemplateID(params.Get(share.ParamTemplate))}
	}

	if params.Get(share.ParamTemplate) != "" {
		if payload.Template.IsValid() {
			state.Template = payload.Template
		} else {
			log.Printf("[builder] unknown template %q, using %s", payload.Template, types.DefaultTemplate)
		}
		state.Step = StepPersonal
	}

	if params.Get(share.ParamData) != "" {
		if payload.Data != nil {
			state.Resume = payload.Data
			state.Source = SourceURL
		}
		return state
	}

	if store == nil {
		return state
	}
	stored, err := store.Load()
	if err != nil {
		log.Printf("[builder] ignoring stored resume: %v", err)
		return state
	}
	if stored != nil {
		state.Resume = stored
		state.Source = SourceStorage
	}
	return state
}
