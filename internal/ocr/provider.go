package ocr

import (
	"context"
	"fmt"
)

// Instruction sent with every image. The providers are vision models, not
// dedicated OCR engines, so the prompt pins them to verbatim extraction.
const extractionPrompt = "Extract all text from this image. Return only the text content, no additional commentary or explanations."

// Request holds the image to read. Image bytes may be re-encoded by the
// adapter before transmission; MimeType is the declared type of the
// original upload.
type Request struct {
	Image    []byte
	MimeType string
}

// Provider abstracts an OCR backend (Gemini, OpenAI vision).
//
// ExtractText returns the text found in the image, trimmed of surrounding
// whitespace. An empty string is a successful result meaning no text was
// detected. Any provider error is returned as a *Failure.
type Provider interface {
	ExtractText(ctx context.Context, req Request) (string, error)
	Name() string
}

// Failure wraps a provider error so callers can distinguish OCR faults
// from other pipeline errors with errors.As.
type Failure struct {
	Provider string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("ocr failed (%s): %v", f.Provider, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }
