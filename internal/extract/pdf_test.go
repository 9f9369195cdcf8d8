package extract

import (
	"strings"
	"testing"
)

func TestPDFTextRejectsNonPDF(t *testing.T) {
	if _, err := PDFText(strings.NewReader("plain text, not a pdf")); err == nil {
		t.Fatalf("expected error for non-PDF input")
	}
}

func TestPDFTextRejectsEmptyInput(t *testing.T) {
	if _, err := PDFText(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestPDFTextRejectsTruncatedHeader(t *testing.T) {
	if _, err := PDFText(strings.NewReader("%PDF-1.7\ngarbage")); err == nil {
		t.Fatalf("expected error for truncated PDF")
	}
}
