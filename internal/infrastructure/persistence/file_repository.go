package persistence

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFileRepository implements FileRepository using GORM
type GormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a new GormFileRepository
func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

// FindByID finds a file record by its ID
func (r *GormFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.CustomerFile, error) {
	var model models.FileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds file records for a customer matching the filter
func (r *GormFileRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]mail.CustomerFile, error) {
	var fileModels []models.FileModel
	query := r.db.WithContext(ctx).Model(&models.FileModel{}).
		Where("customer_id = ?", customerID)

	if filter.Search != "" {
		query = query.Where("file_name ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "year":
			query = query.Where("year = ?", value)
		case "month":
			query = query.Where("month = ?", value)
		case "mime_type":
			query = query.Where("mime_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, FileSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&fileModels).Error; err != nil {
		return nil, err
	}
	return toFiles(fileModels), nil
}

// FindByBucket finds file records in a customer's month bucket
func (r *GormFileRepository) FindByBucket(ctx context.Context, customerID string, year, month int) ([]mail.CustomerFile, error) {
	var fileModels []models.FileModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Order("file_name ASC").
		Find(&fileModels).Error; err != nil {
		return nil, err
	}
	return toFiles(fileModels), nil
}

// FindByEmail finds file records extracted from an email
func (r *GormFileRepository) FindByEmail(ctx context.Context, emailID uuid.UUID) ([]mail.CustomerFile, error) {
	var fileModels []models.FileModel
	if err := r.db.WithContext(ctx).
		Where("email_id = ?", emailID).
		Order("file_name ASC").
		Find(&fileModels).Error; err != nil {
		return nil, err
	}
	return toFiles(fileModels), nil
}

// Save creates or updates a file record
func (r *GormFileRepository) Save(ctx context.Context, file *mail.CustomerFile) error {
	model := models.FileModelFromDomain(file)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a file record
func (r *GormFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toFiles(fileModels []models.FileModel) []mail.CustomerFile {
	files := make([]mail.CustomerFile, len(fileModels))
	for i, model := range fileModels {
		files[i] = *model.ToDomain()
	}
	return files
}

// Ensure GormFileRepository implements FileRepository
var _ mail.FileRepository = (*GormFileRepository)(nil)
