// Package extractor turns uploaded document bytes into plain text. One
// extractor exists per supported format; the registry dispatches on the file
// extension.
package extractor

import (
	"strings"

	"quizforge/internal/domain"
)

// TextExtractor extracts plain text from raw file content.
type TextExtractor interface {
	Extract(content []byte) (string, error)
}

// Registry dispatches extraction by lower-cased file extension.
type Registry struct {
	extractors map[string]TextExtractor
}

// NewRegistry returns a registry with the three supported document formats
// registered.
func NewRegistry() *Registry {
	return &Registry{
		extractors: map[string]TextExtractor{
			".pdf":  &PDFExtractor{},
			".docx": &DocxExtractor{},
			".pptx": &PptxExtractor{},
		},
	}
}

// Register adds or replaces the extractor for an extension. The extension
// must include the leading dot.
func (r *Registry) Register(extension string, extractor TextExtractor) {
	r.extractors[strings.ToLower(extension)] = extractor
}

// Supported reports whether the extension has a registered extractor.
func (r *Registry) Supported(extension string) bool {
	_, ok := r.extractors[strings.ToLower(extension)]
	return ok
}

// Extract runs the extractor registered for the extension. It fails with an
// unsupported-format error for unknown extensions and a no-extractable-text
// error when the file yields no text.
func (r *Registry) Extract(content []byte, extension string) (string, error) {
	ext := strings.ToLower(extension)
	extractor, ok := r.extractors[ext]
	if !ok {
		return "", domain.NewUnsupportedFormatError(extension)
	}

	text, err := extractor.Extract(content)
	if err != nil {
		return "", domain.NewError(domain.CodeNoExtractableText,
			"failed to extract text from "+ext+" file", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewError(domain.CodeNoExtractableText,
			"the "+ext+" file contains no extractable text", nil)
	}
	return text, nil
}
