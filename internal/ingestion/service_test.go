package ingestion_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/store"
)

type fakeRenderer struct {
	image []byte
	err   error
	calls int
}

func (r *fakeRenderer) RenderFirstPage(_ context.Context, _ []byte) ([]byte, error) {
	r.calls++
	return r.image, r.err
}

type fakeExtractor struct {
	data ingestion.ResumeData
	err  error
}

func (e *fakeExtractor) ExtractSkills(_ context.Context, _ []byte) (ingestion.ResumeData, error) {
	if e.err != nil {
		return ingestion.ResumeData{}, e.err
	}
	return e.data, nil
}

func TestMain(m *testing.M) {
	os.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	config.InitCrypto()
	os.Exit(m.Run())
}

func pdfBytes() []byte {
	return []byte("%PDF-1.7\nfake resume content")
}

func TestIngestHappyPath(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	extractor := &fakeExtractor{data: ingestion.ResumeData{
		Name:       "Jane Doe",
		Skills:     []string{"Go", "Postgres"},
		Experience: []string{"Backend Engineer at Acme (3 years)"},
	}}
	svc := ingestion.NewService(&fakeRenderer{image: []byte("png")}, extractor, kv)

	doc := pdfBytes()
	data, err := svc.Ingest(ctx, "u1", bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if data.Name != "Jane Doe" || len(data.Skills) != 2 {
		t.Fatalf("unexpected resume data: %+v", data)
	}

	stored, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Skills[0] != "Go" {
		t.Fatalf("stored data mismatch: %+v", stored)
	}

	raw, err := svc.File(ctx, "u1")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if !bytes.Equal(raw, doc) {
		t.Fatal("retained document does not round-trip")
	}

	// The retained copy is not stored in the clear.
	var sealed string
	if err := kv.Get(ctx, store.ResumeFileKey("u1"), &sealed); err != nil {
		t.Fatalf("raw kv get: %v", err)
	}
	if strings.Contains(sealed, "fake resume content") {
		t.Fatal("stored document is not encrypted")
	}
}

func TestIngestReUploadOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	extractor := &fakeExtractor{data: ingestion.ResumeData{Name: "First", Skills: []string{"Go"}}}
	svc := ingestion.NewService(&fakeRenderer{image: []byte("png")}, extractor, kv)

	doc := pdfBytes()
	if _, err := svc.Ingest(ctx, "u1", bytes.NewReader(doc), int64(len(doc))); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	extractor.data = ingestion.ResumeData{Name: "Second", Skills: []string{"Rust"}}
	if _, err := svc.Ingest(ctx, "u1", bytes.NewReader(doc), int64(len(doc))); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	stored, _ := svc.Get(ctx, "u1")
	if stored.Name != "Second" {
		t.Fatalf("expected overwrite, got %+v", stored)
	}
}

func TestIngestRejectsBadDocuments(t *testing.T) {
	ctx := context.Background()
	svc := ingestion.NewService(&fakeRenderer{image: []byte("png")}, &fakeExtractor{}, store.NewMemoryKV())

	t.Run("Oversized", func(t *testing.T) {
		_, err := svc.Ingest(ctx, "u1", bytes.NewReader(nil), ingestion.MaxUploadSize+1)
		if !errors.Is(err, ingestion.ErrIngestionFailed) {
			t.Fatalf("expected ErrIngestionFailed, got %v", err)
		}
	})

	t.Run("NotPDF", func(t *testing.T) {
		doc := []byte("PK\x03\x04 this is a zip")
		_, err := svc.Ingest(ctx, "u1", bytes.NewReader(doc), int64(len(doc)))
		if !errors.Is(err, ingestion.ErrIngestionFailed) {
			t.Fatalf("expected ErrIngestionFailed, got %v", err)
		}
	})

	t.Run("RenderFailure", func(t *testing.T) {
		broken := ingestion.NewService(&fakeRenderer{err: errors.New("chrome crashed")}, &fakeExtractor{}, store.NewMemoryKV())
		doc := pdfBytes()
		_, err := broken.Ingest(ctx, "u1", bytes.NewReader(doc), int64(len(doc)))
		if !errors.Is(err, ingestion.ErrIngestionFailed) {
			t.Fatalf("expected ErrIngestionFailed, got %v", err)
		}
	})
}

func TestIngestAnalysisFailureLeavesNoPartialState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	extractor := &fakeExtractor{err: ingestion.ErrAnalysisFailed}
	svc := ingestion.NewService(&fakeRenderer{image: []byte("png")}, extractor, kv)

	doc := pdfBytes()
	_, err := svc.Ingest(ctx, "u1", bytes.NewReader(doc), int64(len(doc)))
	if !errors.Is(err, ingestion.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}

	if _, err := svc.Get(ctx, "u1"); !errors.Is(err, ingestion.ErrNoResume) {
		t.Fatalf("expected no resume on record, got %v", err)
	}
	if _, err := svc.File(ctx, "u1"); !errors.Is(err, ingestion.ErrNoResume) {
		t.Fatalf("expected no retained file, got %v", err)
	}
}
