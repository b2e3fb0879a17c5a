// Package document converts uploaded resume and job-description files into
// plain text. Extraction problems are never fatal: an unreadable or
// unsupported file yields empty text and a logged warning, and the caller
// decides what an empty document means.
package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Kind tags the origin of an extracted document.
type Kind string

const (
	KindResume         Kind = "resume"
	KindJobDescription Kind = "job-description"
)

// Document holds the raw text extracted from a single file.
type Document struct {
	Kind Kind
	Path string
	Text string
}

// Extractor reads PDF and plain-text files.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an extractor that logs warnings to the provided logger.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractFile reads the file at path and returns its text. The format is
// chosen by extension: ".pdf" and ".txt" are supported, anything else yields
// an empty document.
func (e *Extractor) ExtractFile(path string, kind Kind) *Document {
	doc := &Document{Kind: kind, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("reading document failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return doc
	}

	doc.Text = e.extract(path, data)
	return doc
}

// ExtractBytes extracts text from in-memory file content. The name is used
// only to pick the format by extension.
func (e *Extractor) ExtractBytes(name string, data []byte, kind Kind) *Document {
	return &Document{Kind: kind, Path: name, Text: e.extract(name, data)}
}

func (e *Extractor) extract(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return e.extractPDF(name, data)
	case ".txt":
		return string(data)
	default:
		e.logger.Warn("unsupported document extension",
			zap.String("path", name),
			zap.String("hint", "only .pdf and .txt files are supported"),
		)
		return ""
	}
}

// extractPDF concatenates per-page text in page order. A corrupt or image-only
// PDF yields empty text rather than an error.
func (e *Extractor) extractPDF(name string, data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("parsing pdf failed",
			zap.String("path", name),
			zap.Error(err),
		)
		return ""
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("extracting pdf page failed",
				zap.String("path", name),
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}
		builder.WriteString(text)
	}

	return builder.String()
}
