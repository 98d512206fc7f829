package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/llm/llmtest"
	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

const testOrigin = "http://resume.test"

// fakeExporter records the last export request
type fakeExporter struct {
	pdf      []byte
	err      error
	template types.TemplateID
}

func (f *fakeExporter) Resume(_ context.Context, _ *types.ResumeData, id types.TemplateID) ([]byte, error) {
	f.template = id
	return f.pdf, f.err
}

// testServer bundles a server with its collaborators
type testServer struct {
	*Server
	llm      *llmtest.FakeClient
	store    *storage.MemoryStore
	exporter *fakeExporter
}

type testOption func(*Config)

func newTestServer(t *testing.T, opts ...testOption) *testServer {
	t.Helper()
	fake := llmtest.NewFakeClient()
	store := storage.NewMemoryStore()
	exporter := &fakeExporter{pdf: []byte("%PDF-1.4")}

	cfg := Config{
		Port:      0,
		Client:    fake,
		Store:     store,
		Origin:    testOrigin,
		Exporter:  exporter,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	return &testServer{Server: s, llm: fake, store: store, exporter: exporter}
}

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Ada Lovelace", Title: "Engineer", Email: "ada@example.com"},
		Experience: []types.Experience{
			{ID: "e1", Company: "Analytical Engines", Position: "Programmer", StartDate: "1842", Description: "Wrote the first program."},
		},
		Education: []types.Education{},
		Skills:    []types.Skill{{ID: "s1", Name: "Mathematics", Level: "Expert"}},
	}
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// TestHealthEndpoint tests the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", resp["status"])
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{Store: storage.NewMemoryStore()})
	assert.Error(t, err)

	_, err = New(Config{Client: llmtest.NewFakeClient()})
	assert.Error(t, err)
}

func TestNew_SessionStartsFromStorage(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, persistence.NewCodec(store).Save(sampleResume()))

	s := newTestServer(t, func(c *Config) { c.Store = store })

	assert.Equal(t, "Ada Lovelace", s.Session().Resume().PersonalInfo.Name)
}

func TestTemplatesEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.handleTemplates, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []types.Template `json:"templates"`
		Default   string           `json:"default"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 4)
	assert.Equal(t, "modern", resp.Default)
}

func TestGenerateSummary(t *testing.T) {
	s := newTestServer(t)
	s.llm.On("professional summary", "Seasoned engineer.")

	w := doJSON(t, s.handleGenerateSummary, http.MethodPost, "/api/generate-summary",
		map[string]string{"name": "Ada", "title": "Engineer", "experience": ""})

	require.Equal(t, http.StatusOK, w.Code)
	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Seasoned engineer.", resp.Summary)

	calls := s.llm.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "Name: Ada")
}

func TestGenerateSummary_Failure(t *testing.T) {
	s := newTestServer(t)
	s.llm.Fail("professional summary", errors.New("quota exceeded"))

	w := doJSON(t, s.handleGenerateSummary, http.MethodPost, "/api/generate-summary",
		map[string]string{"name": "Ada"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate summary. Please try again.", resp["error"])
	assert.Contains(t, resp["details"], "quota exceeded")
}

func TestGenerate_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	handlers := map[string]http.HandlerFunc{
		"summary":    s.handleGenerateSummary,
		"experience": s.handleGenerateExperience,
		"skills":     s.handleGenerateSkills,
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/generate-"+name, strings.NewReader("{not json"))
			w := httptest.NewRecorder()
			h(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid request body")
		})
	}
	assert.Empty(t, s.llm.Calls())
}

func TestGenerate_BusyPerControl(t *testing.T) {
	tests := []struct {
		name string
		op   builder.Operation
		path string
	}{
		{"summary", builder.OpGenerateSummary, "/api/generate-summary"},
		{"experience", builder.OpGenerateExperience, "/api/generate-experience"},
		{"skills", builder.OpGenerateSkills, "/api/generate-skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			handlers := map[builder.Operation]http.HandlerFunc{
				builder.OpGenerateSummary:    s.handleGenerateSummary,
				builder.OpGenerateExperience: s.handleGenerateExperience,
				builder.OpGenerateSkills:     s.handleGenerateSkills,
			}
			require.True(t, s.session.TryBegin(tt.op))

			w := doJSON(t, handlers[tt.op], http.MethodPost, tt.path, map[string]string{"name": "Ada"})
			assert.Equal(t, http.StatusConflict, w.Code)
			assert.Empty(t, s.llm.Calls())

			// Other generate controls stay usable
			for op, h := range handlers {
				if op == tt.op {
					continue
				}
				w := doJSON(t, h, http.MethodPost, "/api/generate", map[string]string{"name": "Ada"})
				assert.NotEqual(t, http.StatusConflict, w.Code, op)
			}

			s.session.End(tt.op)
			w = doJSON(t, handlers[tt.op], http.MethodPost, tt.path, map[string]string{"name": "Ada"})
			assert.NotEqual(t, http.StatusConflict, w.Code)
			assert.False(t, s.session.Busy(tt.op))
		})
	}
}

func TestGenerateExperience(t *testing.T) {
	s := newTestServer(t)
	s.llm.On("job description", "Led the team.")

	w := doJSON(t, s.handleGenerateExperience, http.MethodPost, "/api/generate-experience",
		map[string]string{"position": "Lead", "company": "Acme", "startDate": "2020"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp ExperienceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Led the team.", resp.Description)
	assert.Contains(t, s.llm.Calls()[0], "2020 to Present")
}

func TestGenerateExperience_Failure(t *testing.T) {
	s := newTestServer(t)
	s.llm.Fail("job description", errors.New("timeout"))

	w := doJSON(t, s.handleGenerateExperience, http.MethodPost, "/api/generate-experience",
		map[string]string{"position": "Lead"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate experience description. Please try again.")
}

func TestGenerateSkills(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantFirst string
	}{
		{"json", `[{"name":"Go","level":"Expert"}]`, "Go"},
		{"garbage falls back to defaults", "I cannot help with that", "Communication"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.llm.On("list of 6-8", tt.reply)

			w := doJSON(t, s.handleGenerateSkills, http.MethodPost, "/api/generate-skills",
				map[string]string{"title": "Engineer"})

			require.Equal(t, http.StatusOK, w.Code)
			var resp SkillsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Skills)
			assert.Equal(t, tt.wantFirst, resp.Skills[0].Name)
			for _, skill := range resp.Skills {
				assert.NotEmpty(t, skill.ID)
			}
		})
	}
}

func TestAutofillStream(t *testing.T) {
	s := newTestServer(t)
	s.llm.On("professional summary", "A summary.")
	s.llm.On("job description", "Did things.")
	s.llm.On("list of 6-8", `[{"name":"Go","level":"Expert"}]`)
	s.session.SetResume(&types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Ada", Title: "Engineer"},
		Experience:   []types.Experience{{ID: "e1", Position: "Programmer"}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/autofill/stream", nil)
	w := httptest.NewRecorder()
	s.handleAutofillStream(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event: field"))
	assert.Contains(t, body, `"itemId":"e1"`)
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, `"fields":3`)

	resume := s.session.Resume()
	assert.Equal(t, "A summary.", resume.PersonalInfo.Summary)
	assert.Equal(t, "Did things.", resume.Experience[0].Description)
	require.Len(t, resume.Skills, 1)
	assert.Equal(t, "Go", resume.Skills[0].Name)
	assert.False(t, s.session.Busy(builder.OpAutofill))
}

func TestAutofillStream_Busy(t *testing.T) {
	s := newTestServer(t)
	require.True(t, s.session.TryBegin(builder.OpAutofill))

	w := doJSON(t, s.handleAutofillStream, http.MethodPost, "/api/autofill/stream", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, s.llm.Calls())
}

func TestBuilder_LoadOrdering(t *testing.T) {
	shared := sampleResume()
	shared.PersonalInfo.Name = "From Link"
	link, err := share.Encode(shared, types.TemplateCreative, testOrigin)
	require.NoError(t, err)
	parsed, err := url.Parse(link)
	require.NoError(t, err)

	stored := sampleResume()
	stored.PersonalInfo.Name = "From Storage"

	tests := []struct {
		name         string
		query        string
		wantSource   builder.Source
		wantName     string
		wantTemplate types.TemplateID
		wantStep     builder.Step
	}{
		{"link wins", parsed.RawQuery, builder.SourceURL, "From Link", types.TemplateCreative, builder.StepPersonal},
		{"storage", "", builder.SourceStorage, "From Storage", types.TemplateModern, builder.StepTemplates},
		{"template only", "template=minimal", builder.SourceStorage, "From Storage", types.TemplateMinimal, builder.StepPersonal},
		{"broken link keeps default", "template=professional&data=!!!!", builder.SourceDefault, "", types.TemplateProfessional, builder.StepPersonal},
		{"empty parameters read storage", "template=&data=", builder.SourceStorage, "From Storage", types.TemplateModern, builder.StepTemplates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			require.NoError(t, s.codec.Save(stored))

			w := doJSON(t, s.handleBuilder, http.MethodGet, "/builder?"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var state builder.State
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
			assert.Equal(t, tt.wantSource, state.Source)
			assert.Equal(t, tt.wantTemplate, state.Template)
			assert.Equal(t, tt.wantStep, state.Step)
			assert.Equal(t, tt.wantName, state.Resume.PersonalInfo.Name)
			assert.Equal(t, tt.wantName, s.session.Resume().PersonalInfo.Name)
		})
	}
}

func TestPutResume(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.handlePutResume, http.MethodPut, "/api/resume", sampleResume())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada Lovelace", s.session.Resume().PersonalInfo.Name)

	w = doJSON(t, s.handleGetResume, http.MethodGet, "/api/resume", nil)
	var got types.ResumeData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, sampleResume(), &got)

	// Not persisted until saved
	_, ok, err := s.store.Get(persistence.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutResume_RejectsWrongShape(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"skills":"many"}`, `[]`, `not json`} {
		req := httptest.NewRequest(http.MethodPut, "/api/resume", strings.NewReader(body))
		w := httptest.NewRecorder()
		s.handlePutResume(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.True(t, s.session.Resume().IsEmpty())
}

func TestSaveResume(t *testing.T) {
	s := newTestServer(t)
	s.session.SetResume(sampleResume())

	w := doJSON(t, s.handleSaveResume, http.MethodPost, "/api/resume/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Saved)
	assert.Equal(t, "resumeData", resp.Key)

	loaded, err := s.codec.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleResume(), loaded)
}

func TestSaveResume_StoreFailureIsNotAnError(t *testing.T) {
	s := newTestServer(t)
	s.store.SetErr = errors.New("quota exceeded")

	w := doJSON(t, s.handleSaveResume, http.MethodPost, "/api/resume/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Saved)
}

func TestSaveResume_Busy(t *testing.T) {
	s := newTestServer(t)
	require.True(t, s.session.TryBegin(builder.OpSave))

	w := doJSON(t, s.handleSaveResume, http.MethodPost, "/api/resume/save", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "save already in progress")
}

func TestValidateResume(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.handleValidateResume, http.MethodPost, "/api/resume/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ok ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, ok.Valid)

	bad := sampleResume()
	bad.PersonalInfo.Email = "nope"
	w = doJSON(t, s.handleValidateResume, http.MethodPost, "/api/resume/validate", bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var report ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "PersonalInfo.Email", report.Issues[0].Field)
}

func TestStep(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.handleStep, http.MethodPost, "/api/step", StepRequest{Step: "next"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, builder.StepPersonal, s.session.Step())

	doJSON(t, s.handleStep, http.MethodPost, "/api/step", StepRequest{Step: "preview"})
	assert.Equal(t, builder.StepPreview, s.session.Step())

	doJSON(t, s.handleStep, http.MethodPost, "/api/step", StepRequest{Step: "previous"})
	assert.Equal(t, builder.StepSkills, s.session.Step())

	w = doJSON(t, s.handleStep, http.MethodPost, "/api/step", StepRequest{Step: "checkout"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShare(t *testing.T) {
	s := newTestServer(t)
	s.session.SetResume(sampleResume())

	w := doJSON(t, s.handleShare, http.MethodPost, "/api/share", TemplateRequest{Template: types.TemplateMinimal})
	require.Equal(t, http.StatusOK, w.Code)

	var result share.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Copied)
	assert.True(t, strings.HasPrefix(result.URL, testOrigin+"/builder?template=minimal&data="))

	payload, err := share.DecodeURL(result.URL)
	require.NoError(t, err)
	assert.Equal(t, types.TemplateMinimal, payload.Template)
	assert.Equal(t, sampleResume(), payload.Data)
	assert.Equal(t, types.TemplateMinimal, s.session.Template())
}

func TestShare_EmptyBodyUsesSessionTemplate(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.session.SetTemplate(types.TemplateProfessional))

	req := httptest.NewRequest(http.MethodPost, "/api/share", nil)
	w := httptest.NewRecorder()
	s.handleShare(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "template=professional")
}

func TestShare_Errors(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.MaxShareURLLength = 64 })
	s.session.SetResume(sampleResume())

	w := doJSON(t, s.handleShare, http.MethodPost, "/api/share", nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = doJSON(t, s.handleShare, http.MethodPost, "/api/share", TemplateRequest{Template: "fancy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)
	s.session.SetResume(sampleResume())

	w := doJSON(t, s.handlePreview, http.MethodGet, "/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="resume-preview"`)
	assert.Contains(t, w.Body.String(), "template-modern")
	assert.Contains(t, w.Body.String(), "Ada Lovelace")

	w = doJSON(t, s.handlePreview, http.MethodGet, "/preview?template=creative", nil)
	assert.Contains(t, w.Body.String(), "template-creative")
	assert.Equal(t, types.TemplateModern, s.session.Template())

	w = doJSON(t, s.handlePreview, http.MethodGet, "/preview?template=fancy", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPDF(t *testing.T) {
	s := newTestServer(t)
	s.session.SetResume(sampleResume())
	require.NoError(t, s.session.SetTemplate(types.TemplateCreative))

	w := doJSON(t, s.handleExportPDF, http.MethodGet, "/export.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Ada Lovelace.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
	assert.Equal(t, types.TemplateCreative, s.exporter.template)
	assert.False(t, s.session.Busy(builder.OpExport))
}

func TestExportPDF_Errors(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Exporter = nil })
	w := doJSON(t, s.handleExportPDF, http.MethodGet, "/export.pdf", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s = newTestServer(t)
	s.exporter.err = errors.New("chrome crashed")
	w = doJSON(t, s.handleExportPDF, http.MethodGet, "/export.pdf", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, s.session.Busy(builder.OpExport))

	require.True(t, s.session.TryBegin(builder.OpExport))
	w = doJSON(t, s.handleExportPDF, http.MethodGet, "/export.pdf", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Routing(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		method     string
		target     string
		wantStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/templates", http.StatusOK},
		{http.MethodGet, "/api/resume", http.StatusOK},
		{http.MethodOptions, "/api/resume", http.StatusOK},
		{http.MethodDelete, "/api/resume", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestHandler_RateLimitsGeneration(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/api/generate-*", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		}
	})
	s.llm.Default = "ok"
	h := s.Handler()

	post := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, post("/api/generate-summary").Code)

	w := post("/api/generate-skills")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	assert.Len(t, s.llm.Calls(), 1)
}
