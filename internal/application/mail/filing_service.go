package mail

import (
	"context"
	"errors"
	"time"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// nowFunc is stubbed in tests
var nowFunc = time.Now

// FilingService ingests inbound emails and files them against customers.
// Automatic filing matches the sender address against customer contact
// emails; unmatched messages stay pending for manual filing.
type FilingService struct {
	emailRepo    mail.EmailRepository
	labelRepo    mail.LabelRepository
	customerRepo partner.CustomerRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewFilingService creates a new FilingService
func NewFilingService(
	emailRepo mail.EmailRepository,
	labelRepo mail.LabelRepository,
	customerRepo partner.CustomerRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *FilingService {
	return &FilingService{
		emailRepo:    emailRepo,
		labelRepo:    labelRepo,
		customerRepo: customerRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Ingest records one inbound message and attempts automatic filing
func (s *FilingService) Ingest(ctx context.Context, req IngestEmailRequest) (*EmailResponse, error) {
	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = nowFunc()
	}

	email, err := mail.NewInboundEmail(req.Sender, req.Subject, req.Body, receivedAt)
	if err != nil {
		return nil, err
	}

	if customerID, ok := s.matchCustomer(ctx, email.Sender); ok {
		if err := email.FileToCustomer(customerID, nowFunc()); err != nil {
			return nil, err
		}
	}

	if err := s.emailRepo.Save(ctx, email); err != nil {
		return nil, err
	}
	if err := shared.PublishEvents(ctx, s.eventBus, email); err != nil {
		return nil, err
	}

	response := ToEmailResponse(email)
	return &response, nil
}

// matchCustomer looks the sender address up in the customer mirror
func (s *FilingService) matchCustomer(ctx context.Context, sender string) (string, bool) {
	filter := shared.DefaultFilter()
	filter.Search = sender
	filter.PageSize = 2
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil || len(customers) != 1 {
		return "", false
	}
	return customers[0].CustomerID, true
}

// FileManually files a pending or failed email against a customer
func (s *FilingService) FileManually(ctx context.Context, emailID uuid.UUID, req FileEmailRequest) (*EmailResponse, error) {
	email, err := s.emailRepo.FindByID(ctx, emailID)
	if err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByCustomerID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_CUSTOMER", "Customer does not exist")
		}
		return nil, err
	}

	if err := email.FileToCustomer(req.CustomerID, nowFunc()); err != nil {
		return nil, err
	}
	if err := s.emailRepo.Save(ctx, email); err != nil {
		return nil, err
	}
	if err := shared.PublishEvents(ctx, s.eventBus, email); err != nil {
		return nil, err
	}

	response := ToEmailResponse(email)
	return &response, nil
}

// ProcessPending retries automatic filing for pending emails. Emails
// whose sender still matches nothing are marked failed so they surface in
// the manual queue.
func (s *FilingService) ProcessPending(ctx context.Context, limit int) (int, error) {
	emails, err := s.emailRepo.FindPending(ctx, limit)
	if err != nil {
		return 0, err
	}

	filed := 0
	for i := range emails {
		email := &emails[i]
		customerID, ok := s.matchCustomer(ctx, email.Sender)
		if !ok {
			email.MarkFailed("no matching customer", nowFunc())
			if err := s.emailRepo.Save(ctx, email); err != nil {
				s.logger.Warn("failed to mark email failed",
					zap.String("email_id", email.ID.String()),
					zap.Error(err))
			}
			continue
		}
		if err := email.FileToCustomer(customerID, nowFunc()); err != nil {
			continue
		}
		if err := s.emailRepo.Save(ctx, email); err != nil {
			s.logger.Warn("failed to save filed email",
				zap.String("email_id", email.ID.String()),
				zap.Error(err))
			continue
		}
		if err := shared.PublishEvents(ctx, s.eventBus, email); err != nil {
			return filed, err
		}
		filed++
	}
	return filed, nil
}

// Move moves an email to another folder
func (s *FilingService) Move(ctx context.Context, emailID uuid.UUID, req MoveEmailRequest) error {
	email, err := s.emailRepo.FindByID(ctx, emailID)
	if err != nil {
		return err
	}
	if err := email.MoveTo(mail.EmailFolder(req.Folder)); err != nil {
		return err
	}
	return s.emailRepo.Save(ctx, email)
}

// ListByFolder returns the contents of one folder
func (s *FilingService) ListByFolder(ctx context.Context, folder mail.EmailFolder, filter shared.Filter) ([]EmailResponse, error) {
	filter.Clamp()
	emails, err := s.emailRepo.FindByFolder(ctx, folder, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]EmailResponse, 0, len(emails))
	for i := range emails {
		responses = append(responses, ToEmailResponse(&emails[i]))
	}
	return responses, nil
}

// Search runs a full text search over emails
func (s *FilingService) Search(ctx context.Context, query string, filter shared.Filter) ([]EmailResponse, error) {
	filter.Clamp()
	emails, err := s.emailRepo.Search(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]EmailResponse, 0, len(emails))
	for i := range emails {
		responses = append(responses, ToEmailResponse(&emails[i]))
	}
	return responses, nil
}

// CreateLabel creates a label owned by the calling user
func (s *FilingService) CreateLabel(ctx context.Context, ownerID uuid.UUID, req CreateLabelRequest) (*mail.EmailLabel, error) {
	label, err := mail.NewEmailLabel(ownerID, req.Name, req.Color)
	if err != nil {
		return nil, err
	}
	if err := s.labelRepo.Save(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// ApplyLabel attaches a label to an email, checking label ownership
func (s *FilingService) ApplyLabel(ctx context.Context, emailID, labelID, ownerID uuid.UUID) error {
	label, err := s.labelRepo.FindByID(ctx, labelID)
	if err != nil {
		return err
	}
	if label.OwnerID != ownerID {
		return shared.ErrForbidden
	}

	email, err := s.emailRepo.FindByID(ctx, emailID)
	if err != nil {
		return err
	}
	email.AddLabel(labelID)
	return s.emailRepo.Save(ctx, email)
}
