package mail

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService defines the interface for object storage operations
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey string, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

const presignedURLExpiry = 15 * time.Minute

// FileService manages customer file metadata and presigned access to the
// binary content in object storage.
type FileService struct {
	fileRepo  mail.FileRepository
	emailRepo mail.EmailRepository
	storage   ObjectStorageService
	logger    *zap.Logger
}

// NewFileService creates a new FileService
func NewFileService(
	fileRepo mail.FileRepository,
	emailRepo mail.EmailRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo:  fileRepo,
		emailRepo: emailRepo,
		storage:   storage,
		logger:    logger,
	}
}

// Register records file metadata and returns a presigned upload URL for
// the caller to push the binary content.
func (s *FileService) Register(ctx context.Context, uploadedBy uuid.UUID, req RegisterFileRequest) (*FileResponse, error) {
	file, err := mail.NewCustomerFile(req.CustomerID, req.FileName, req.MimeType, req.SizeBytes, req.Month, req.Year, uploadedBy)
	if err != nil {
		return nil, err
	}

	if req.EmailID != "" {
		emailID, err := uuid.Parse(req.EmailID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_EMAIL_ID", "Email ID is not a valid UUID")
		}
		if _, err := s.emailRepo.FindByID(ctx, emailID); err != nil {
			return nil, err
		}
		file.LinkEmail(emailID)
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, file.StorageKey, req.MimeType, presignedURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate upload URL")
	}

	if err := s.fileRepo.Save(ctx, file); err != nil {
		return nil, err
	}

	response := ToFileResponse(file)
	response.UploadURL = uploadURL
	response.ExpiresAt = expiresAt
	return &response, nil
}

// GetDownloadURL returns a presigned download URL for a stored file
func (s *FileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, time.Time, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return "", time.Time{}, err
	}

	exists, err := s.storage.ObjectExists(ctx, file.StorageKey)
	if err != nil {
		return "", time.Time{}, shared.NewDomainError("STORAGE_ERROR", "Failed to check object existence")
	}
	if !exists {
		return "", time.Time{}, shared.NewDomainError("OBJECT_MISSING", "File content was never uploaded")
	}

	return s.storage.GenerateDownloadURL(ctx, file.StorageKey, presignedURLExpiry)
}

// ListBucket returns the files in one customer month bucket
func (s *FileService) ListBucket(ctx context.Context, customerID string, year, month int) ([]FileResponse, error) {
	files, err := s.fileRepo.FindByBucket(ctx, customerID, year, month)
	if err != nil {
		return nil, err
	}
	responses := make([]FileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, ToFileResponse(&files[i]))
	}
	return responses, nil
}

// Delete removes file metadata and its stored object. A missing object
// is not an error; the metadata row still goes away.
func (s *FileService) Delete(ctx context.Context, fileID uuid.UUID) error {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, file.StorageKey); err != nil {
		s.logger.Warn("failed to delete stored object",
			zap.String("storage_key", file.StorageKey),
			zap.Error(err))
	}
	return s.fileRepo.Delete(ctx, fileID)
}
