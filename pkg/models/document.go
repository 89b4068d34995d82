package models

import (
	"path/filepath"
	"strings"
)

type ContentType string

const (
	ContentJavaScript ContentType = "javascript"
	ContentHTML       ContentType = "html"
	ContentCSS        ContentType = "css"
	ContentUnknown    ContentType = "unknown"
)

// DetectContentType infers the content type from the file extension,
// the same way an editor would pick a syntax scope for the buffer.
func DetectContentType(path string) ContentType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return ContentJavaScript
	case ".html", ".htm", ".xhtml":
		return ContentHTML
	case ".css":
		return ContentCSS
	default:
		return ContentUnknown
	}
}

// Document is an immutable view of a file buffer at the moment of scanning.
// The detector never mutates it; the caller owns the underlying content.
type Document struct {
	Path   string
	Type   ContentType
	Lines  []string
	binary bool
}

// NewDocument builds a Document from the full buffer content.
// Content containing NUL bytes is flagged as binary and yields no findings.
func NewDocument(path, content string, ct ContentType) *Document {
	d := &Document{
		Path: path,
		Type: ct,
	}

	if strings.ContainsRune(content, 0) {
		d.binary = true
		return d
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	d.Lines = lines
	return d
}

// Binary reports whether the content was rejected as non-text.
func (d *Document) Binary() bool {
	return d.binary
}

// Scannable reports whether the document can produce findings at all.
func (d *Document) Scannable() bool {
	return d != nil && !d.binary && d.Type != ContentUnknown && d.Type != ""
}
