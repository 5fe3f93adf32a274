package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerFile is attachment metadata for a document tied to a customer,
// bucketed by month and year and optionally linked to the inbound email it
// arrived on. Binary content lives in object storage; StorageKey is the key.
type CustomerFile struct {
	shared.BaseEntity
	CustomerID string
	EmailID    *uuid.UUID
	FileName   string
	MimeType   string
	SizeBytes  int64
	Month      int
	Year       int
	StorageKey string
	UploadedBy uuid.UUID
}

// NewCustomerFile creates attachment metadata for a stored file
func NewCustomerFile(customerID, fileName, mimeType string, sizeBytes int64, month, year int, uploadedBy uuid.UUID) (*CustomerFile, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 2000 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}

	f := &CustomerFile{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
		Month:      month,
		Year:       year,
		UploadedBy: uploadedBy,
	}
	f.StorageKey = f.buildStorageKey()
	return f, nil
}

// buildStorageKey places the object under the uploader's prefix so storage
// policies can scope access per user.
func (f *CustomerFile) buildStorageKey() string {
	return fmt.Sprintf("%s/%s/%04d-%02d/%s_%s", f.UploadedBy, f.CustomerID, f.Year, f.Month, f.ID, f.FileName)
}

// LinkEmail ties the file to the inbound email it arrived on
func (f *CustomerFile) LinkEmail(emailID uuid.UUID) {
	f.EmailID = &emailID
	f.UpdatedAt = time.Now()
}
