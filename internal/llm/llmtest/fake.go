// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/llm"
)

// FakeClient answers prompts from a table of canned responses.
// Responses are matched by the first key contained in the prompt.
type FakeClient struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	// Default is returned when no key matches
	Default string
	Prompts []string
}

// NewFakeClient returns an empty FakeClient
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// On registers a response for prompts containing key
func (f *FakeClient) On(key, response string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[key] = response
	return f
}

// Fail registers an error for prompts containing key
func (f *FakeClient) Fail(key string, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[key] = err
	return f
}

// GenerateContent implements llm.Client
func (f *FakeClient) GenerateContent(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)

	for key, err := range f.Errors {
		if strings.Contains(prompt, key) {
			return "", err
		}
	}
	for key, resp := range f.Responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return f.Default, nil
}

// GetModel implements llm.Client
func (f *FakeClient) GetModel(_ llm.ModelTier) string {
	return "fake-model"
}

// Close implements llm.Client
func (f *FakeClient) Close() error {
	return nil
}

// Calls returns a copy of the prompts received so far
func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.Prompts...)
}
