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

// GormEmailRepository implements EmailRepository using GORM
type GormEmailRepository struct {
	db *gorm.DB
}

// NewGormEmailRepository creates a new GormEmailRepository
func NewGormEmailRepository(db *gorm.DB) *GormEmailRepository {
	return &GormEmailRepository{db: db}
}

// FindByID finds an email by its ID including its label links
func (r *GormEmailRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.InboundEmail, error) {
	var model models.EmailModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	email := model.ToDomain()
	labels, err := r.loadLabels(ctx, []uuid.UUID{email.ID})
	if err != nil {
		return nil, err
	}
	email.Labels = labels[email.ID]
	return email, nil
}

// FindByFolder finds emails in a folder matching the filter
func (r *GormEmailRepository) FindByFolder(ctx context.Context, folder mail.EmailFolder, filter shared.Filter) ([]mail.InboundEmail, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.EmailModel{}).
			Where("folder = ?", folder),
		filter,
	)
	return r.findEmails(ctx, query)
}

// FindByCustomer finds emails filed under a customer matching the filter
func (r *GormEmailRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]mail.InboundEmail, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.EmailModel{}).
			Where("customer_id = ?", customerID),
		filter,
	)
	return r.findEmails(ctx, query)
}

// FindPending finds unprocessed emails, oldest first
func (r *GormEmailRepository) FindPending(ctx context.Context, limit int) ([]mail.InboundEmail, error) {
	query := r.db.WithContext(ctx).Model(&models.EmailModel{}).
		Where("status = ?", mail.ProcessingPending).
		Order("received_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.findEmails(ctx, query)
}

// Search finds emails whose sender, subject or body match the query
func (r *GormEmailRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]mail.InboundEmail, error) {
	searchPattern := "%" + query + "%"
	q := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.EmailModel{}).
			Where("sender ILIKE ? OR subject ILIKE ? OR body ILIKE ?",
				searchPattern, searchPattern, searchPattern),
		filter,
	)
	return r.findEmails(ctx, q)
}

// Save creates or updates an email and rewrites its label links
func (r *GormEmailRepository) Save(ctx context.Context, email *mail.InboundEmail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.EmailModelFromDomain(email)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.EmailLabelLinkModel{}, "email_id = ?", email.ID).Error; err != nil {
			return err
		}
		if len(email.Labels) == 0 {
			return nil
		}
		links := make([]models.EmailLabelLinkModel, len(email.Labels))
		for i, labelID := range email.Labels {
			links[i] = models.EmailLabelLinkModel{EmailID: email.ID, LabelID: labelID}
		}
		return tx.Create(&links).Error
	})
}

// Delete deletes an email and its label links
func (r *GormEmailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.EmailLabelLinkModel{}, "email_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.EmailModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts emails in a folder
func (r *GormEmailRepository) Count(ctx context.Context, folder mail.EmailFolder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmailModel{}).
		Where("folder = ?", folder).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormEmailRepository) findEmails(ctx context.Context, query *gorm.DB) ([]mail.InboundEmail, error) {
	var emailModels []models.EmailModel
	if err := query.Find(&emailModels).Error; err != nil {
		return nil, err
	}
	if len(emailModels) == 0 {
		return []mail.InboundEmail{}, nil
	}

	ids := make([]uuid.UUID, len(emailModels))
	for i, model := range emailModels {
		ids[i] = model.ID
	}
	labels, err := r.loadLabels(ctx, ids)
	if err != nil {
		return nil, err
	}

	emails := make([]mail.InboundEmail, len(emailModels))
	for i, model := range emailModels {
		email := model.ToDomain()
		email.Labels = labels[email.ID]
		emails[i] = *email
	}
	return emails, nil
}

func (r *GormEmailRepository) loadLabels(ctx context.Context, emailIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	var links []models.EmailLabelLinkModel
	if err := r.db.WithContext(ctx).
		Where("email_id IN ?", emailIDs).
		Find(&links).Error; err != nil {
		return nil, err
	}

	byEmail := make(map[uuid.UUID][]uuid.UUID, len(emailIDs))
	for _, link := range links {
		byEmail[link.EmailID] = append(byEmail[link.EmailID], link.LabelID)
	}
	return byEmail, nil
}

// applyFilter applies filter options to the query
func (r *GormEmailRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "label_id":
			query = query.Where("id IN (SELECT email_id FROM inbound_email_labels WHERE label_id = ?)", value)
		case "received_before":
			query = query.Where("received_at < ?", value)
		case "received_after":
			query = query.Where("received_at >= ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, EmailSortFields, "received_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormEmailRepository implements EmailRepository
var _ mail.EmailRepository = (*GormEmailRepository)(nil)
