package builder

import (
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// Operation identifies a control whose action runs asynchronously
type Operation string

// Operations guarded by busy flags
const (
	OpGenerateSummary    Operation = "generate-summary"
	OpGenerateExperience Operation = "generate-experience"
	OpGenerateSkills     Operation = "generate-skills"
	OpAutofill           Operation = "autofill"
	OpSave               Operation = "save"
	OpShare              Operation = "share"
	OpExport             Operation = "export"
)

// Session is the state of one builder view.
// Each operation may have one run in flight; different operations may overlap
// and their updates to the resume are last-write-wins.
type Session struct {
	mu       sync.Mutex
	template types.TemplateID
	step     Step
	resume   *types.ResumeData
	busy     map[Operation]bool
}

// NewSession starts a session from a loaded state
func NewSession(state *State) *Session {
	s := &Session{
		template: types.DefaultTemplate,
		step:     StepTemplates,
		resume:   types.NewResumeData(),
		busy:     make(map[Operation]bool),
	}
	if state != nil {
		s.Reset(state)
	}
	return s
}

// Reset replaces the session content with state; busy flags are kept
func (s *Session) Reset(state *State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = state.Template
	s.step = state.Step
	if state.Resume != nil {
		s.resume = state.Resume.Clone()
	} else {
		s.resume = types.NewResumeData()
	}
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &State{
		Template: s.template,
		Step:     s.step,
		Resume:   s.resume.Clone(),
	}
}

// Resume returns a copy of the working resume
func (s *Session) Resume() *types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume.Clone()
}

// SetResume replaces the working resume
func (s *Session) SetResume(data *types.ResumeData) {
	if data == nil {
		data = types.NewResumeData()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = data.Clone().Normalize()
}

// Update applies fn to a copy of the resume and stores the result
func (s *Session) Update(fn func(*types.ResumeData)) *types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.resume.Clone()
	fn(next)
	s.resume = next.Normalize()
	return s.resume.Clone()
}

// Template returns the active template
func (s *Session) Template() types.TemplateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// SetTemplate selects a template; unknown identifiers are rejected
func (s *Session) SetTemplate(id types.TemplateID) error {
	if _, err := types.ParseTemplateID(string(id)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = id
	return nil
}

// Step returns the current wizard step
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SetStep jumps to a step
func (s *Session) SetStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}

// Next advances the wizard and returns the new step
func (s *Session) Next() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = s.step.Next()
	return s.step
}

// Previous moves the wizard back and returns the new step
func (s *Session) Previous() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = s.step.Previous()
	return s.step
}

// TryBegin marks op as running. It returns false if op is already running.
func (s *Session) TryBegin(op Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[op] {
		return false
	}
	s.busy[op] = true
	return true
}

// End clears the busy flag of op
func (s *Session) End(op Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, op)
}

// Busy reports whether op is running
func (s *Session) Busy(op Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[op]
}
