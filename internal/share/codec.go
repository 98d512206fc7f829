// Package share encodes a resume and its template into a self-contained builder link
// and reverses the transformation on load.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// BuilderPath is the entry point share links point at
	BuilderPath = "/builder"
	// ParamTemplate carries the template identifier
	ParamTemplate = "template"
	// ParamData carries the base64 encoded resume JSON
	ParamData = "data"

	// DefaultMaxURLLength keeps links under the limit common browsers and proxies accept
	DefaultMaxURLLength = 32768
)

// Payload is the content recovered from a share link
type Payload struct {
	// Template is kept verbatim, even when it names no known layout
	Template types.TemplateID `json:"template"`
	// Data is nil when the link carried no data parameter
	Data *types.ResumeData `json:"data"`
}

// Codec builds share links rooted at Origin
type Codec struct {
	Origin string
	// MaxURLLength bounds the produced link; zero disables the check
	MaxURLLength int
}

// NewCodec returns a codec with the default length limit
func NewCodec(origin string) *Codec {
	return &Codec{Origin: origin, MaxURLLength: DefaultMaxURLLength}
}

// Encode is shorthand for NewCodec(origin).Encode
func Encode(data *types.ResumeData, templateID types.TemplateID, origin string) (string, error) {
	return NewCodec(origin).Encode(data, templateID)
}

// Encode returns <origin>/builder?template=<id>&data=<base64(JSON)>
func (c *Codec) Encode(data *types.ResumeData, templateID types.TemplateID) (string, error) {
	if data == nil {
		data = types.NewResumeData()
	}
	raw, err := json.Marshal(data.Clone().Normalize())
	if err != nil {
		return "", fmt.Errorf("failed to marshal resume: %w", err)
	}
	blob := base64.StdEncoding.EncodeToString(raw)

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(c.Origin, "/"))
	sb.WriteString(BuilderPath)
	sb.WriteString("?" + ParamTemplate + "=")
	sb.WriteString(url.QueryEscape(string(templateID)))
	sb.WriteString("&" + ParamData + "=")
	sb.WriteString(url.QueryEscape(blob))

	link := sb.String()
	if c.MaxURLLength > 0 && len(link) > c.MaxURLLength {
		return "", &TooLargeError{Length: len(link), Limit: c.MaxURLLength}
	}
	return link, nil
}

// Decode reads the template and data parameters.
// A missing or empty data parameter is not an error; Payload.Data is then nil.
func Decode(params url.Values) (*Payload, error) {
	payload := &Payload{Template: types.TemplateID(params.Get(ParamTemplate))}
	if params.Get(ParamData) == "" {
		return payload, nil
	}

	data, err := DecodeData(params.Get(ParamData))
	if err != nil {
		return nil, err
	}
	payload.Data = data
	return payload, nil
}

// DecodeURL parses a full share link and decodes its query
func DecodeURL(link string) (*Payload, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, &DecodeError{Stage: "url", Cause: err}
	}
	return Decode(u.Query())
}

// DecodeData reverses the data parameter into a resume.
// Standard, URL-safe and unpadded base64 are accepted, and spaces are read
// back as '+' since unescaped links lose them to form decoding.
func DecodeData(blob string) (*types.ResumeData, error) {
	normalized := strings.NewReplacer(" ", "+", "-", "+", "_", "/").Replace(strings.TrimSpace(blob))
	normalized = strings.TrimRight(normalized, "=")

	raw, err := base64.RawStdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, &DecodeError{Stage: "base64", Cause: err}
	}

	data, err := persistence.Decode(raw)
	if err != nil {
		return nil, &DecodeError{Stage: "json", Cause: err}
	}
	return data, nil
}
