package persistence

import (
	"context"
	"testing"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory database for round-trip tests. The
// ticket repository rewrites link rows inside transactions, which
// sqlmock cannot express cleanly, so these tests run against a real
// (embedded) database instead.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TicketModel{}, &models.TicketInvoiceModel{}))
	return db
}

func newOpenTicket(t *testing.T, customerID string, collectorID uuid.UUID) *collection.CollectionTicket {
	t.Helper()
	ticket, err := collection.NewCollectionTicket(customerID, collectorID, collection.TicketPriorityHigh, "Overdue balance follow-up")
	require.NoError(t, err)
	return ticket
}

func TestGormTicketRepository_SaveAndFindByID(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	collectorID := uuid.New()
	ticket := newOpenTicket(t, "CUST001", collectorID)
	require.NoError(t, ticket.AddInvoice("INV-1001", decimal.NewFromInt(1200), false))
	require.NoError(t, ticket.AddInvoice("INV-1002", decimal.NewFromInt(340), false))

	require.NoError(t, repo.Save(ctx, ticket))

	found, err := repo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "CUST001", found.CustomerID)
	assert.Equal(t, collectorID, found.CollectorID)
	assert.Equal(t, collection.TicketStatusOpen, found.Status)
	require.Len(t, found.Invoices, 2)
	assert.Equal(t, "INV-1001", found.Invoices[0].InvoiceReference)
	assert.True(t, found.Invoices[0].BalanceAtLink.Equal(decimal.NewFromInt(1200)))
	assert.False(t, found.Invoices[0].Settled)
}

func TestGormTicketRepository_FindByID_NotFound(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormTicketRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTicketRepository_SaveRewritesInvoiceLinks(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	ticket := newOpenTicket(t, "CUST002", uuid.New())
	require.NoError(t, ticket.AddInvoice("INV-2001", decimal.NewFromInt(900), false))
	require.NoError(t, repo.Save(ctx, ticket))

	require.NoError(t, ticket.MarkInvoiceSettled("INV-2001", ticket.CreatedAt))
	require.NoError(t, ticket.AddInvoice("INV-2002", decimal.NewFromInt(150), false))
	require.NoError(t, repo.Save(ctx, ticket))

	found, err := repo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, found.Invoices, 2)

	byRef := map[string]bool{}
	for _, link := range found.Invoices {
		byRef[link.InvoiceReference] = link.Settled
	}
	assert.True(t, byRef["INV-2001"])
	assert.False(t, byRef["INV-2002"])
}

func TestGormTicketRepository_FindByCollector(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	collectorID := uuid.New()
	open := newOpenTicket(t, "CUST003", collectorID)
	require.NoError(t, repo.Save(ctx, open))

	resolved := newOpenTicket(t, "CUST004", collectorID)
	require.NoError(t, resolved.Resolve(resolved.CreatedAt))
	require.NoError(t, repo.Save(ctx, resolved))

	other := newOpenTicket(t, "CUST005", uuid.New())
	require.NoError(t, repo.Save(ctx, other))

	all, err := repo.FindByCollector(ctx, collectorID, "", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	openOnly, err := repo.FindByCollector(ctx, collectorID, collection.TicketStatusOpen, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, openOnly, 1)
	assert.Equal(t, "CUST003", openOnly[0].CustomerID)
}

func TestGormTicketRepository_FindActiveByInvoice(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	linked := newOpenTicket(t, "CUST006", uuid.New())
	require.NoError(t, linked.AddInvoice("INV-6001", decimal.NewFromInt(75), false))
	require.NoError(t, repo.Save(ctx, linked))

	unrelated := newOpenTicket(t, "CUST007", uuid.New())
	require.NoError(t, unrelated.AddInvoice("INV-7001", decimal.NewFromInt(40), false))
	require.NoError(t, repo.Save(ctx, unrelated))

	started := newOpenTicket(t, "CUST009", uuid.New())
	require.NoError(t, started.AddInvoice("INV-6001", decimal.NewFromInt(20), false))
	require.NoError(t, started.Start())
	require.NoError(t, repo.Save(ctx, started))

	done := newOpenTicket(t, "CUST010", uuid.New())
	require.NoError(t, done.AddInvoice("INV-6001", decimal.NewFromInt(10), false))
	require.NoError(t, done.Resolve(done.CreatedAt))
	require.NoError(t, repo.Save(ctx, done))

	tickets, err := repo.FindActiveByInvoice(ctx, "INV-6001")
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, linked.ID, tickets[0].ID)
	assert.Equal(t, started.ID, tickets[1].ID)
}

func TestGormTicketRepository_Delete(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	ticket := newOpenTicket(t, "CUST008", uuid.New())
	require.NoError(t, ticket.AddInvoice("INV-8001", decimal.NewFromInt(60), false))
	require.NoError(t, repo.Save(ctx, ticket))

	require.NoError(t, repo.Delete(ctx, ticket.ID))

	_, err := repo.FindByID(ctx, ticket.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var linkCount int64
	require.NoError(t, db.Model(&models.TicketInvoiceModel{}).Where("ticket_id = ?", ticket.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}
