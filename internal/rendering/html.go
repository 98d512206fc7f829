package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// PreviewElementID is the id of the element wrapping the rendered resume
const PreviewElementID = "resume-preview"

const (
	placeholderName     = "Your Name"
	placeholderHeadline = "Professional Title"
)

//go:embed templates/*.html
var templateFiles embed.FS

var (
	layouts     map[types.TemplateID]*template.Template
	layoutsErr  error
	layoutsOnce sync.Once
)

// pageData is what the layouts see
type pageData struct {
	Template      types.TemplateID
	DocumentTitle string
	Name          string
	Headline      string
	Contact       []string
	Personal      types.PersonalInfo
	Experience    []types.Experience
	Education     []types.Education
	Skills        []types.Skill
}

func loadLayouts() (map[types.TemplateID]*template.Template, error) {
	layoutsOnce.Do(func() {
		parsed := make(map[types.TemplateID]*template.Template)
		for _, tmpl := range types.Templates() {
			t, err := template.New("base.html").ParseFS(templateFiles, "templates/base.html", "templates/"+string(tmpl.ID)+".html")
			if err != nil {
				layoutsErr = &TemplateError{Template: string(tmpl.ID), Message: "failed to parse template", Cause: err}
				return
			}
			parsed[tmpl.ID] = t
		}
		layouts = parsed
	})
	return layouts, layoutsErr
}

func buildPageData(data *types.ResumeData, id types.TemplateID) *pageData {
	p := data.PersonalInfo
	page := &pageData{
		Template:   id,
		Name:       p.Name,
		Headline:   p.Title,
		Personal:   p,
		Experience: data.Experience,
		Education:  data.Education,
		Skills:     data.Skills,
	}
	if page.Name == "" {
		page.Name = placeholderName
	}
	if page.Headline == "" {
		page.Headline = placeholderHeadline
	}
	page.DocumentTitle = page.Name + " - Resume"
	for _, c := range []string{p.Email, p.Phone, p.Location} {
		if c != "" {
			page.Contact = append(page.Contact, c)
		}
	}
	return page
}

// RenderHTML writes a complete HTML document for data using the given layout.
// Empty name and title render as placeholders; empty sections are omitted.
func RenderHTML(w io.Writer, data *types.ResumeData, id types.TemplateID) error {
	if !id.IsValid() {
		return &TemplateError{Template: string(id), Message: "unknown template"}
	}
	if data == nil {
		data = types.NewResumeData()
	}

	set, err := loadLayouts()
	if err != nil {
		return err
	}

	if err := set[id].Execute(w, buildPageData(data, id)); err != nil {
		return &TemplateError{Template: string(id), Message: "failed to execute template", Cause: err}
	}
	return nil
}

// Render is RenderHTML into a string
func Render(data *types.ResumeData, id types.TemplateID) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, data, id); err != nil {
		return "", err
	}
	return buf.String(), nil
}
