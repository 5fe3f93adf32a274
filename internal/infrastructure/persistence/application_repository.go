package persistence

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormApplicationRepository implements ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// FindByPayment finds all application rows for a payment
func (r *GormApplicationRepository) FindByPayment(ctx context.Context, paymentReference string) ([]receivable.PaymentApplication, error) {
	var appModels []models.PaymentApplicationModel
	if err := r.db.WithContext(ctx).
		Where("payment_reference = ?", paymentReference).
		Order("applied_at ASC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	return toApplications(appModels), nil
}

// FindByInvoice finds all application rows against an invoice
func (r *GormApplicationRepository) FindByInvoice(ctx context.Context, invoiceReference string) ([]receivable.PaymentApplication, error) {
	var appModels []models.PaymentApplicationModel
	if err := r.db.WithContext(ctx).
		Where("invoice_reference = ?", invoiceReference).
		Order("applied_at ASC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	return toApplications(appModels), nil
}

// FindByCustomer finds all application rows for a customer's payments
func (r *GormApplicationRepository) FindByCustomer(ctx context.Context, customerID string) ([]receivable.PaymentApplication, error) {
	var appModels []models.PaymentApplicationModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN payments ON payments.reference_number = payment_applications.payment_reference").
		Where("payments.customer_id = ?", customerID).
		Order("payment_applications.applied_at ASC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	return toApplications(appModels), nil
}

// FindInRange finds application rows applied within the given window
func (r *GormApplicationRepository) FindInRange(ctx context.Context, from, to time.Time) ([]receivable.PaymentApplication, error) {
	var appModels []models.PaymentApplicationModel
	if err := r.db.WithContext(ctx).
		Where("applied_at >= ? AND applied_at < ?", from, to).
		Order("applied_at ASC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	return toApplications(appModels), nil
}

// Save creates or updates an application row
func (r *GormApplicationRepository) Save(ctx context.Context, app *receivable.PaymentApplication) error {
	model := models.PaymentApplicationModelFromDomain(app)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates or updates multiple application rows
func (r *GormApplicationRepository) SaveBatch(ctx context.Context, apps []*receivable.PaymentApplication) error {
	if len(apps) == 0 {
		return nil
	}
	appModels := make([]*models.PaymentApplicationModel, len(apps))
	for i, app := range apps {
		appModels[i] = models.PaymentApplicationModelFromDomain(app)
	}
	return r.db.WithContext(ctx).Save(appModels).Error
}

// DeleteByPayment removes all application rows for a payment. Used when a
// payment mirror is refreshed from the ERP and its rows are rewritten.
func (r *GormApplicationRepository) DeleteByPayment(ctx context.Context, paymentReference string) error {
	return r.db.WithContext(ctx).
		Delete(&models.PaymentApplicationModel{}, "payment_reference = ?", paymentReference).Error
}

func toApplications(appModels []models.PaymentApplicationModel) []receivable.PaymentApplication {
	apps := make([]receivable.PaymentApplication, len(appModels))
	for i, model := range appModels {
		apps[i] = *model.ToDomain()
	}
	return apps
}

// Ensure GormApplicationRepository implements ApplicationRepository
var _ receivable.ApplicationRepository = (*GormApplicationRepository)(nil)
