package persistence

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID including its invoice links
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.CollectionTicket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	ticket := model.ToDomain()
	invoices, err := r.loadInvoices(ctx, []uuid.UUID{ticket.ID})
	if err != nil {
		return nil, err
	}
	ticket.Invoices = invoices[ticket.ID]
	return ticket, nil
}

// FindByCustomer finds tickets for a customer matching the filter
func (r *GormTicketRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]collection.CollectionTicket, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TicketModel{}).
			Where("customer_id = ?", customerID),
		filter,
	)
	return r.findTickets(ctx, query)
}

// FindByCollector finds tickets for a collector, optionally narrowed by status
func (r *GormTicketRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, status collection.TicketStatus, filter shared.Filter) ([]collection.CollectionTicket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("collector_id = ?", collectorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = r.applyFilter(query, filter)
	return r.findTickets(ctx, query)
}

// FindActiveByInvoice finds active tickets that reference the given invoice
func (r *GormTicketRepository) FindActiveByInvoice(ctx context.Context, invoiceReference string) ([]collection.CollectionTicket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Joins("JOIN collection_ticket_invoices ON collection_ticket_invoices.ticket_id = collection_tickets.id").
		Where("collection_ticket_invoices.invoice_reference = ?", invoiceReference).
		Where("collection_tickets.status IN ?", []collection.TicketStatus{
			collection.TicketStatusOpen, collection.TicketStatusInProgress,
		}).
		Order("collection_tickets.created_at ASC")
	return r.findTickets(ctx, query)
}

// FindAll finds all tickets matching the filter
func (r *GormTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]collection.CollectionTicket, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TicketModel{}), filter)
	return r.findTickets(ctx, query)
}

// Save creates or updates a ticket and rewrites its invoice links
func (r *GormTicketRepository) Save(ctx context.Context, ticket *collection.CollectionTicket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.TicketModelFromDomain(ticket)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return r.saveInvoices(tx, ticket)
	})
}

// SaveWithLock saves a ticket with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormTicketRepository) SaveWithLock(ctx context.Context, ticket *collection.CollectionTicket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.TicketModelFromDomain(ticket)
		result := tx.Model(model).
			Where("id = ? AND version = ?", ticket.ID, ticket.Version-1).
			Updates(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The ticket record has been modified by another transaction")
		}
		return r.saveInvoices(tx, ticket)
	})
}

// Delete deletes a ticket and its invoice links
func (r *GormTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TicketInvoiceModel{}, "ticket_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TicketModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts tickets matching the filter
func (r *GormTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TicketModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCollector counts tickets for a collector, optionally narrowed by status
func (r *GormTicketRepository) CountByCollector(ctx context.Context, collectorID uuid.UUID, status collection.TicketStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("collector_id = ?", collectorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTicketRepository) findTickets(ctx context.Context, query *gorm.DB) ([]collection.CollectionTicket, error) {
	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	if len(ticketModels) == 0 {
		return []collection.CollectionTicket{}, nil
	}

	ids := make([]uuid.UUID, len(ticketModels))
	for i, model := range ticketModels {
		ids[i] = model.ID
	}
	invoices, err := r.loadInvoices(ctx, ids)
	if err != nil {
		return nil, err
	}

	tickets := make([]collection.CollectionTicket, len(ticketModels))
	for i, model := range ticketModels {
		ticket := model.ToDomain()
		ticket.Invoices = invoices[ticket.ID]
		tickets[i] = *ticket
	}
	return tickets, nil
}

func (r *GormTicketRepository) loadInvoices(ctx context.Context, ticketIDs []uuid.UUID) (map[uuid.UUID][]collection.TicketInvoice, error) {
	var linkModels []models.TicketInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("ticket_id IN ?", ticketIDs).
		Order("created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	byTicket := make(map[uuid.UUID][]collection.TicketInvoice, len(ticketIDs))
	for _, model := range linkModels {
		byTicket[model.TicketID] = append(byTicket[model.TicketID], model.ToDomain())
	}
	return byTicket, nil
}

// saveInvoices rewrites the link rows so removals in the aggregate take effect
func (r *GormTicketRepository) saveInvoices(tx *gorm.DB, ticket *collection.CollectionTicket) error {
	if err := tx.Delete(&models.TicketInvoiceModel{}, "ticket_id = ?", ticket.ID).Error; err != nil {
		return err
	}
	if len(ticket.Invoices) == 0 {
		return nil
	}
	linkModels := make([]*models.TicketInvoiceModel, len(ticket.Invoices))
	for i := range ticket.Invoices {
		linkModels[i] = models.TicketInvoiceModelFromDomain(&ticket.Invoices[i])
	}
	return tx.Create(linkModels).Error
}

// applyFilter applies filter options to the query
func (r *GormTicketRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, TicketSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		// Default ordering
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTicketRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR customer_id ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "auto_resolved":
			query = query.Where("auto_resolved = ?", value)
		}
	}

	return query
}

// Ensure GormTicketRepository implements TicketRepository
var _ collection.TicketRepository = (*GormTicketRepository)(nil)
