package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/store"
)

// MaxUploadSize caps resume uploads at 5 MB.
const MaxUploadSize = 5 << 20

var pdfMagic = []byte("%PDF-")

// Extractor performs the AI skill extraction over a rendered resume image.
type Extractor interface {
	ExtractSkills(ctx context.Context, image []byte) (ResumeData, error)
}

type Service interface {
	// Ingest renders the first page of the uploaded document, extracts
	// structured resume data from it, and persists both. A failure leaves
	// previously stored data untouched.
	Ingest(ctx context.Context, userID string, document io.Reader, size int64) (*ResumeData, error)
	Get(ctx context.Context, userID string) (*ResumeData, error)
	// File returns the retained original document for download.
	File(ctx context.Context, userID string) ([]byte, error)
}

type service struct {
	renderer  Renderer
	extractor Extractor
	kv        store.KV
}

func NewService(renderer Renderer, extractor Extractor, kv store.KV) Service {
	return &service{renderer: renderer, extractor: extractor, kv: kv}
}

func (s *service) Ingest(ctx context.Context, userID string, document io.Reader, size int64) (*ResumeData, error) {
	log := config.WithContext(ctx)

	if size > MaxUploadSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrIngestionFailed, MaxUploadSize)
	}

	raw, err := io.ReadAll(io.LimitReader(document, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestionFailed, err)
	}
	if len(raw) > MaxUploadSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrIngestionFailed, MaxUploadSize)
	}
	if !bytes.HasPrefix(raw, pdfMagic) {
		return nil, fmt.Errorf("%w: not a PDF document", ErrIngestionFailed)
	}

	// Only page one is considered; skills on later pages are not seen.
	image, err := s.renderer.RenderFirstPage(ctx, raw)
	if err != nil {
		log.WithError(err).Error("Failed to render resume page")
		return nil, fmt.Errorf("%w: %v", ErrIngestionFailed, err)
	}

	data, err := s.extractor.ExtractSkills(ctx, image)
	if err != nil {
		log.WithError(err).Error("Failed to extract skills from resume")
		return nil, err
	}

	if err := s.kv.Set(ctx, store.ResumeKey(userID), data); err != nil {
		return nil, err
	}

	// Retain the original for later download, encrypted at rest.
	sealed, err := config.Encrypt(raw)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, store.ResumeFileKey(userID), sealed); err != nil {
		return nil, err
	}

	log.WithField("user_id", userID).Infof("Resume ingested with %d skills", len(data.Skills))
	return &data, nil
}

func (s *service) Get(ctx context.Context, userID string) (*ResumeData, error) {
	var data ResumeData
	err := s.kv.Get(ctx, store.ResumeKey(userID), &data)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrNoResume
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *service) File(ctx context.Context, userID string) ([]byte, error) {
	var sealed string
	err := s.kv.Get(ctx, store.ResumeFileKey(userID), &sealed)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrNoResume
	}
	if err != nil {
		return nil, err
	}
	return config.Decrypt(sealed)
}
