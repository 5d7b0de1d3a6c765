package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"doclint/internal/model"
	"doclint/internal/repository"
	"doclint/internal/storage"
)

var (
	ErrIDRequired  = errors.New("id is required")
	ErrNotFound    = errors.New("document not found")
	ErrReaderNil   = errors.New("reader is nil")
	ErrNotMarkdown = errors.New("document is not markdown")
	ErrTooLarge    = errors.New("document exceeds the size limit")
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling markdown documents.
type DocumentService interface {
	// Upload streams the content to object storage, saves metadata to DB, and
	// rolls back storage if the DB save fails. Only markdown files are
	// accepted; the content hash is computed while streaming.
	// - originalFilename is used to validate the extension; the stored
	//   filename is UUID + original extension.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Content streams the stored markdown back out alongside its metadata.
	Content(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// DownloadURL returns a time-limited pre-signed link for fetching the
	// stored object directly from object storage.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	maxBytes int64
}

// NewDocumentService constructs a new DocumentService. maxBytes <= 0 disables
// the size limit.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, maxBytes int64) DocumentService {
	return &documentService{store: store, repo: repo, maxBytes: maxBytes}
}

// markdownExtensions are the accepted upload extensions.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !markdownExtensions[ext] && !strings.HasPrefix(contentType, "text/markdown") {
		return nil, ErrNotMarkdown
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrTooLarge
	}
	if ext == "" {
		ext = ".md"
	}

	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	// Hash while streaming to storage; no buffering of the whole document.
	hasher := sha256.New()
	tee := io.TeeReader(r, hasher)

	objInfo, err := s.store.Put(ctx, key, tee, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		SHA256:      hex.EncodeToString(hasher.Sum(nil)),
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Content streams the stored object for a document.
func (s *documentService) Content(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get from storage: %w", err)
	}
	return rc, doc, nil
}

// presignExpiry bounds how long a generated download link stays valid.
const presignExpiry = 15 * time.Minute

// DownloadURL resolves the document and asks storage for a pre-signed GET URL.
func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
