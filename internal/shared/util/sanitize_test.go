package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName(" my resume/v2.docx ")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "my resume_v2.docx" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}

	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatal("expected error for traversal name")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}
