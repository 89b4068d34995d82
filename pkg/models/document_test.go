package models

import "testing"

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		path string
		want ContentType
	}{
		{"app.js", ContentJavaScript},
		{"lib/worker.mjs", ContentJavaScript},
		{"view.jsx", ContentJavaScript},
		{"index.html", ContentHTML},
		{"page.HTM", ContentHTML},
		{"style.css", ContentCSS},
		{"notes.txt", ContentUnknown},
		{"Makefile", ContentUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := DetectContentType(tc.path); got != tc.want {
				t.Errorf("DetectContentType(%q) = %s, want %s", tc.path, got, tc.want)
			}
		})
	}
}

func TestNewDocument_Lines(t *testing.T) {
	doc := NewDocument("a.js", "one\r\ntwo\nthree", ContentJavaScript)
	if len(doc.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(doc.Lines))
	}
	if doc.Lines[0] != "one" || doc.Lines[1] != "two" || doc.Lines[2] != "three" {
		t.Errorf("unexpected lines: %q", doc.Lines)
	}
	if !doc.Scannable() {
		t.Error("expected text document to be scannable")
	}
}

func TestNewDocument_Binary(t *testing.T) {
	doc := NewDocument("a.js", "eval(\x00)", ContentJavaScript)
	if !doc.Binary() {
		t.Error("expected content with NUL byte to be flagged binary")
	}
	if doc.Scannable() {
		t.Error("binary document must not be scannable")
	}
	if len(doc.Lines) != 0 {
		t.Errorf("binary document should carry no lines, got %d", len(doc.Lines))
	}
}

func TestDocument_Scannable(t *testing.T) {
	var nilDoc *Document
	if nilDoc.Scannable() {
		t.Error("nil document must not be scannable")
	}
	if NewDocument("x.txt", "text", ContentUnknown).Scannable() {
		t.Error("unknown content type must not be scannable")
	}
}
