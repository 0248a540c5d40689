// Package extractor pulls plain text out of uploaded resume documents.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/careerlens/careerlens/internal/models"
)

const (
	MinChars      = 100
	MaxChars      = 30000
	TruncatedNote = "\n\n[Resume truncated due to length]"

	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrNoText      = errors.New("no extractable text")
	ErrUnsupported = errors.New("unsupported document type")
)

// DocumentError reports a document the parser could not read.
type DocumentError struct {
	Kind string
	Err  error
}

func (e *DocumentError) Error() string { return fmt.Sprintf("read %s: %v", e.Kind, e.Err) }
func (e *DocumentError) Unwrap() error { return e.Err }

// Detect returns the document type from the leading bytes.
func Detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return MimePDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return MimeDOCX
	}
	return ""
}

// Extract reads the document and returns normalised text.
func Extract(data []byte) (models.ExtractedResume, error) {
	var (
		raw string
		err error
	)
	switch Detect(data) {
	case MimePDF:
		raw, err = pdfText(data)
		if err != nil {
			return models.ExtractedResume{}, &DocumentError{Kind: "PDF", Err: err}
		}
	case MimeDOCX:
		raw, err = docxText(data)
		if err != nil {
			return models.ExtractedResume{}, &DocumentError{Kind: "DOCX", Err: err}
		}
	default:
		return models.ExtractedResume{}, ErrUnsupported
	}
	return Normalize(raw)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize trims, collapses runs of blank lines and applies the length
// limits.
func Normalize(raw string) (models.ExtractedResume, error) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	text = blankRuns.ReplaceAllString(text, "\n\n")
	if utf8.RuneCountInString(text) < MinChars {
		return models.ExtractedResume{}, ErrNoText
	}

	truncated := false
	if utf8.RuneCountInString(text) > MaxChars {
		text = string([]rune(text)[:MaxChars]) + TruncatedNote
		truncated = true
	}
	return models.ExtractedResume{
		Text:           text,
		CharacterCount: utf8.RuneCountInString(text),
		Truncated:      truncated,
	}, nil
}

func pdfText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasPrefix(m, "<w:tab") {
			return "\t"
		}
		return "\n"
	})
	return html.UnescapeString(xmlTag.ReplaceAllString(content, "")), nil
}

// ReadAll reads at most limit bytes, failing when the input is larger.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %d bytes", limit)
	}
	return data, nil
}
