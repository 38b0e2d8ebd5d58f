package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DocxExtractor extracts paragraph text from Word documents. DOCX is a zip
// archive; the body text lives in word/document.xml as runs of <w:t>
// elements grouped into <w:p> paragraphs.
type DocxExtractor struct{}

// Extract implements TextExtractor.
func (e *DocxExtractor) Extract(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		paragraphs, err := collectText(file, "t", "p")
		if err != nil {
			return "", err
		}
		return strings.Join(paragraphs, "\n"), nil
	}
	return "", fmt.Errorf("docx archive has no word/document.xml")
}

// PptxExtractor extracts shape text from PowerPoint presentations. Slide
// text lives in ppt/slides/slideN.xml as <a:t> elements, one file per slide.
type PptxExtractor struct{}

// Extract implements TextExtractor.
func (e *PptxExtractor) Extract(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pptx archive: %w", err)
	}

	var slides []*zip.File
	for _, file := range archive.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file)
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].Name < slides[j].Name })

	var text []string
	for _, slide := range slides {
		parts, err := collectText(slide, "t", "p")
		if err != nil {
			return "", err
		}
		text = append(text, parts...)
	}
	return strings.Join(text, "\n"), nil
}

// collectText walks an OOXML part and joins the character data of textTag
// elements, splitting on paragraphTag boundaries.
func collectText(file *zip.File, textTag, paragraphTag string) ([]string, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file.Name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textTag {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == textTag {
				inText = false
			}
			if t.Name.Local == paragraphTag {
				if s := strings.TrimSpace(current.String()); s != "" {
					paragraphs = append(paragraphs, s)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		paragraphs = append(paragraphs, s)
	}
	return paragraphs, nil
}
