package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

const maxDocumentSize = 10 << 20 // 10 MB

var (
	ErrNotFound    = errors.New("document not found")
	ErrNotOwner    = errors.New("you do not own this document")
	ErrBadType     = errors.New("unknown document type")
	ErrTooLarge    = errors.New("document exceeds the 10MB limit")
	ErrEmptyFile   = errors.New("document is empty")
	ErrBadFileType = errors.New("only pdf, jpg and png documents are accepted")
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

type Service interface {
	Upload(userID uint, documentType, fileName, contentType string, data []byte) (*ApplicationDocument, error)
	ListMine(userID uint) ([]ApplicationDocument, error)
	Delete(userID, documentID uint) error
}

type service struct {
	repo  Repository
	store *utils.ObjectStore
}

func NewService(repo Repository, store *utils.ObjectStore) Service {
	return &service{repo: repo, store: store}
}

// Upload validates the file, pushes it to object storage and records the
// metadata row. The stored name is prefixed with a uuid so re-uploads of the
// same filename never collide.
func (s *service) Upload(userID uint, documentType, fileName, contentType string, data []byte) (*ApplicationDocument, error) {
	if !ValidType(documentType) {
		return nil, ErrBadType
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > maxDocumentSize {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, ErrBadFileType
	}

	// the server can boot without object storage; uploads stay disabled
	if s.store == nil {
		return nil, errors.New("object storage not configured")
	}

	storedName := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(fileName))
	url, err := s.store.Upload(userID, storedName, contentType, data)
	if err != nil {
		log.WithError(err).Warn("document upload to object storage failed")
		return nil, errors.New("failed to store document")
	}

	d := &ApplicationDocument{
		UserID:       userID,
		DocumentType: documentType,
		FileName:     fileName,
		FileURL:      url,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
	}
	if err := s.repo.Create(d); err != nil {
		// best effort cleanup of the orphaned object
		if delErr := s.store.Delete(userID, storedName); delErr != nil {
			log.WithError(delErr).Warn("failed to remove orphaned document object")
		}
		return nil, err
	}

	return d, nil
}

func (s *service) ListMine(userID uint) ([]ApplicationDocument, error) {
	return s.repo.ListForUser(userID)
}

func (s *service) Delete(userID, documentID uint) error {
	d, err := s.repo.GetByID(documentID)
	if err != nil {
		return ErrNotFound
	}
	if d.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(documentID)
}
