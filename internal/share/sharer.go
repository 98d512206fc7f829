package share

import (
	"context"
	"errors"
	"log"

	"github.com/atotto/clipboard"
	"github.com/jonathan/resume-builder/internal/types"
)

// Clipboard receives the share link
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// WriteAll implements Clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// Result describes a produced share link
type Result struct {
	URL    string `json:"url"`
	Copied bool   `json:"copied"`
}

// Sharer encodes links and offers them to a clipboard
type Sharer struct {
	codec     *Codec
	clipboard Clipboard
}

// NewSharer returns a Sharer. A nil clipboard skips the copy step.
func NewSharer(codec *Codec, cb Clipboard) *Sharer {
	return &Sharer{codec: codec, clipboard: cb}
}

// Share encodes the resume and tries to copy the link.
// A clipboard failure is logged and the link is still returned.
func (s *Sharer) Share(ctx context.Context, data *types.ResumeData, templateID types.TemplateID) (*Result, error) {
	link, err := s.codec.Encode(data, templateID)
	if err != nil {
		return nil, err
	}

	result := &Result{URL: link}
	if s.clipboard == nil || ctx.Err() != nil {
		return result, nil
	}
	if err := s.clipboard.WriteAll(link); err != nil {
		log.Printf("[share] failed to copy link to clipboard: %v", err)
		return result, nil
	}
	result.Copied = true
	return result, nil
}
