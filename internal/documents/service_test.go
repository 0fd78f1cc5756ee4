package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/shared/storage/object"
)

type fakeStore struct {
	saves   int
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	s.saves++
	key := fmt.Sprintf("%s/%d/%s", userID, s.saves, fileName)
	s.objects[key] = data
	return key, int64(len(data)), "application/octet-stream", nil
}

func (s *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var _ object.ObjectStore = (*fakeStore)(nil)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := f.Write(body.Bytes()); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return &Service{Store: store, Repo: NewMemoryRepo()}, store
}

func TestUploadParsesAndPersists(t *testing.T) {
	svc, store := newTestService()
	data := buildDocx(t,
		"Jane Doe",
		"jane.doe@example.com",
		"Work Experience",
		"Built backend services",
		"Skills",
		"Go, PostgreSQL",
	)

	doc, reused, err := svc.Upload(context.Background(), "user-1", "resume.docx", extract.TypeDOCX, data)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if reused {
		t.Fatal("first upload must not report reuse")
	}
	if doc.ID == "" || doc.FileHash == "" || doc.StorageKey == "" {
		t.Fatalf("incomplete document: %+v", doc)
	}
	if doc.Contact.Email != "jane.doe@example.com" {
		t.Fatalf("contact email not extracted: %q", doc.Contact.Email)
	}
	if len(doc.Sections[extract.SectionExperience]) == 0 {
		t.Fatal("experience section not extracted")
	}
	if store.saves != 1 {
		t.Fatalf("expected 1 stored object, got %d", store.saves)
	}

	fetched, err := svc.Get(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.RawText != doc.RawText {
		t.Fatal("persisted raw text differs")
	}
}

func TestUploadDeduplicatesIdenticalBytes(t *testing.T) {
	svc, store := newTestService()
	data := buildDocx(t, "Jane Doe", "Work Experience", "Engineer")

	first, _, err := svc.Upload(context.Background(), "user-1", "resume.docx", extract.TypeDOCX, data)
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	second, reused, err := svc.Upload(context.Background(), "user-1", "renamed.docx", extract.TypeDOCX, data)
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if !reused {
		t.Fatal("identical bytes must report reuse")
	}
	if second.ID != first.ID {
		t.Fatalf("reuse returned a different document: %q vs %q", second.ID, first.ID)
	}
	if store.saves != 1 {
		t.Fatalf("re-upload must not store again, got %d saves", store.saves)
	}

	// A different user uploading the same bytes gets their own copy.
	other, reused, err := svc.Upload(context.Background(), "user-2", "resume.docx", extract.TypeDOCX, data)
	if err != nil {
		t.Fatalf("other user Upload: %v", err)
	}
	if reused || other.ID == first.ID {
		t.Fatal("dedupe must be scoped per user")
	}
}

func TestUploadRejectsEmptyInput(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Upload(context.Background(), "user-1", "resume.docx", extract.TypeDOCX, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty data, got %v", err)
	}
	if _, _, err := svc.Upload(context.Background(), "user-1", "", extract.TypeDOCX, []byte("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestUploadPropagatesExtractionError(t *testing.T) {
	svc, store := newTestService()
	_, _, err := svc.Upload(context.Background(), "user-1", "resume.pdf", extract.TypePDF, []byte("not a pdf"))
	var extractErr *extract.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if store.saves != 0 {
		t.Fatal("failed extraction must not store the object")
	}
}
