package persistence

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByInvoice finds the assignment for an invoice reference
func (r *GormAssignmentRepository) FindByInvoice(ctx context.Context, invoiceReference string) (*collection.InvoiceAssignment, error) {
	var model models.AssignmentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_reference = ?", invoiceReference).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCollector finds assignments for a collector matching the filter
func (r *GormAssignmentRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]collection.InvoiceAssignment, error) {
	var assignmentModels []models.AssignmentModel
	query := r.db.WithContext(ctx).Model(&models.AssignmentModel{}).
		Where("collector_id = ?", collectorID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, AssignmentSortFields, "assigned_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toAssignments(assignmentModels), nil
}

// FindByTicket finds assignments linked to a ticket
func (r *GormAssignmentRepository) FindByTicket(ctx context.Context, ticketID uuid.UUID) ([]collection.InvoiceAssignment, error) {
	var assignmentModels []models.AssignmentModel
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("assigned_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toAssignments(assignmentModels), nil
}

// Upsert stores an assignment, replacing any existing row for the same
// invoice reference. An invoice has at most one assignee.
func (r *GormAssignmentRepository) Upsert(ctx context.Context, assignment *collection.InvoiceAssignment) error {
	model := models.AssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "invoice_reference"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_id", "collector_id", "ticket_id", "assigned_at", "updated_at",
			}),
		}).
		Create(model).Error
}

// ReassignByTicket moves all assignments of a ticket to another collector
func (r *GormAssignmentRepository) ReassignByTicket(ctx context.Context, ticketID uuid.UUID, collectorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AssignmentModel{}).
		Where("ticket_id = ?", ticketID).
		Update("collector_id", collectorID).Error
}

// Delete removes the assignment for an invoice reference
func (r *GormAssignmentRepository) Delete(ctx context.Context, invoiceReference string) error {
	result := r.db.WithContext(ctx).
		Delete(&models.AssignmentModel{}, "invoice_reference = ?", invoiceReference)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toAssignments(assignmentModels []models.AssignmentModel) []collection.InvoiceAssignment {
	assignments := make([]collection.InvoiceAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments
}

// Ensure GormAssignmentRepository implements AssignmentRepository
var _ collection.AssignmentRepository = (*GormAssignmentRepository)(nil)
