package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestTemplatesCommand(t *testing.T) {
	out, err := executeCommand(t, nil, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "TEMPLATES")
	for _, id := range []string{"modern", "minimal", "professional", "creative"} {
		assert.Contains(t, out, id)
	}

	out, err = executeCommand(t, nil, "templates", "--json")
	require.NoError(t, err)
	var templates []types.Template
	require.NoError(t, json.Unmarshal([]byte(out), &templates))
	assert.Len(t, templates, 4)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := writeResumeFile(t, t.TempDir(), sampleResume())

	out, err := executeCommand(t, nil, "save", "--in", in, "--store-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"resumeData"`)

	out, err = executeCommand(t, nil, "load", "--store-dir", dir)
	require.NoError(t, err)
	var loaded types.ResumeData
	require.NoError(t, json.Unmarshal([]byte(out), &loaded))
	assert.Equal(t, sampleResume(), &loaded)
}

func TestSave_FromStdin(t *testing.T) {
	dir := t.TempDir()
	raw, err := json.Marshal(sampleResume())
	require.NoError(t, err)

	_, err = executeCommand(t, strings.NewReader(string(raw)), "save", "--in", "-", "--store-dir", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "resumeData.json"))
	assert.NoError(t, err)
}

func TestSave_RejectsWrongShape(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"experience":{"id":"1"}}`), 0644))

	_, err := executeCommand(t, nil, "save", "--in", in, "--store-dir", dir)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "resumeData.json"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestSave_MissingInFlag(t *testing.T) {
	_, err := executeCommand(t, nil, "save", "--store-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
}

func TestLoad_NothingSaved(t *testing.T) {
	out, err := executeCommand(t, nil, "load", "--store-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No saved resume")
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resumeData.json"), []byte("{not json"), 0644))

	_, err := executeCommand(t, nil, "load", "--store-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	in := writeResumeFile(t, t.TempDir(), sampleResume())
	_, err := executeCommand(t, nil, "save", "--in", in, "--store-dir", dir)
	require.NoError(t, err)

	out, err := executeCommand(t, nil, "clear", "--store-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")

	out, err = executeCommand(t, nil, "load", "--store-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No saved resume")
}

func TestShareEncodeDecode(t *testing.T) {
	in := writeResumeFile(t, t.TempDir(), sampleResume())

	out, err := executeCommand(t, nil, "share", "encode", "--in", in, "--template", "minimal",
		"--origin", "https://resume.example", "--store-dir", t.TempDir())
	require.NoError(t, err)

	link := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(link, "https://resume.example/builder?template=minimal&data="), link)

	out, err = executeCommand(t, nil, "share", "decode", link)
	require.NoError(t, err)

	var payload share.Payload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, types.TemplateMinimal, payload.Template)
	assert.Equal(t, sampleResume(), payload.Data)
}

func TestShareEncode_StoredDefaultsToEmptyResume(t *testing.T) {
	out, err := executeCommand(t, nil, "share", "encode", "--origin", "http://localhost:8080", "--store-dir", t.TempDir())
	require.NoError(t, err)

	payload, err := share.DecodeURL(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.True(t, payload.Data.IsEmpty())
	assert.Equal(t, types.DefaultTemplate, payload.Template)
}

func TestShareEncode_UnknownTemplate(t *testing.T) {
	_, err := executeCommand(t, nil, "share", "encode", "--template", "fancy", "--store-dir", t.TempDir())
	assert.Error(t, err)
}

func TestShareDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{"bad base64", "http://localhost:8080/builder?template=modern&data=***"},
		{"no data", "http://localhost:8080/builder?template=modern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, nil, "share", "decode", tt.link)
			assert.Error(t, err)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	in := writeResumeFile(t, t.TempDir(), sampleResume())

	out, err := executeCommand(t, nil, "render", "--in", in, "--template", "professional", "--store-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, `id="resume-preview"`)
	assert.Contains(t, out, "Grace Hopper")

	out, err = executeCommand(t, nil, "render", "--in", in, "--text", "--store-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "COBOL")
	assert.NotContains(t, out, "<")
}

func TestRenderCommand_WritesFile(t *testing.T) {
	in := writeResumeFile(t, t.TempDir(), sampleResume())
	outPath := filepath.Join(t.TempDir(), "nested", "resume.html")

	_, err := executeCommand(t, nil, "render", "--in", in, "--out", outPath, "--store-dir", t.TempDir())
	require.NoError(t, err)

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "template-modern")
}

func TestValidateCommand(t *testing.T) {
	in := writeResumeFile(t, t.TempDir(), sampleResume())
	out, err := executeCommand(t, nil, "validate", "--in", in, "--store-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "NO ISSUES FOUND")

	bad := sampleResume()
	bad.Skills[0].Level = "Wizard"
	in = writeResumeFile(t, t.TempDir(), bad)
	out, err = executeCommand(t, nil, "validate", "--in", in, "--store-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 invalid fields")
	assert.Contains(t, out, "Skills[0].Level")
}

func TestGenerate_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	for _, sub := range []string{"summary", "experience", "skills"} {
		t.Run(sub, func(t *testing.T) {
			_, err := executeCommand(t, nil, "generate", sub)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "API key is required")
		})
	}
}

func TestLoadSettings_Layers(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"template":"creative","origin":"https://file.example"}`), 0644))
	t.Setenv("RESUME_ORIGIN", "https://env.example")
	t.Setenv("RESUME_STORE_DIR", "/env/store")

	configPath, storeDir, verbose = cfgFile, "/flag/store", true
	t.Cleanup(func() { configPath, storeDir, verbose = "", "", false })

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "creative", cfg.Template)
	assert.Equal(t, "https://file.example", cfg.Origin)
	assert.Equal(t, "/flag/store", cfg.StoreDir)
	assert.Equal(t, share.DefaultMaxURLLength, cfg.MaxShareURLLength)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadSettings_Invalid(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"template":"fancy"}`), 0644))

	configPath = cfgFile
	t.Cleanup(func() { configPath = "" })

	_, err := loadSettings()
	assert.Error(t, err)
}

func TestServeCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "serve", "--store-dir", t.TempDir())
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY=")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "API key is required")
}
