package partner

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/shared"
)

// CustomerService handles customer operations. ERP-owned fields only
// change through sync batches; end users edit the local collection
// settings.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	eventBus     shared.EventBus
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, eventBus shared.EventBus) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, eventBus: eventBus}
}

// UpsertBatch applies one customer sync batch
func (s *CustomerService) UpsertBatch(ctx context.Context, payloads []CustomerPayload) (*UpsertResult, error) {
	result := &UpsertResult{}
	for _, p := range payloads {
		existing, err := s.customerRepo.FindByCustomerID(ctx, p.CustomerID)
		switch {
		case err == nil:
			if err := existing.ApplySync(p.Name, partner.CustomerStatus(p.Status), p.Email, p.Phone, p.City, p.Country, p.CreditLimit); err != nil {
				result.Failed++
				continue
			}
			if err := s.customerRepo.SaveWithLock(ctx, existing); err != nil {
				result.Failed++
				continue
			}
			if err := shared.PublishEvents(ctx, s.eventBus, existing); err != nil {
				return result, err
			}
			result.Updated++
		case errors.Is(err, shared.ErrNotFound):
			customer, err := partner.NewCustomer(p.CustomerID, p.Name, partner.CustomerStatus(p.Status))
			if err != nil {
				result.Failed++
				continue
			}
			if err := customer.ApplySync(p.Name, partner.CustomerStatus(p.Status), p.Email, p.Phone, p.City, p.Country, p.CreditLimit); err != nil {
				result.Failed++
				continue
			}
			if err := s.customerRepo.Save(ctx, customer); err != nil {
				result.Failed++
				continue
			}
			if err := shared.PublishEvents(ctx, s.eventBus, customer); err != nil {
				return result, err
			}
			result.Created++
		default:
			return result, err
		}
	}
	return result, nil
}

// GetByCustomerID returns one customer by its ERP key
func (s *CustomerService) GetByCustomerID(ctx context.Context, customerID string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns customers matching a filter
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	filter.Clamp()
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateSettings edits the local-only collection settings
func (s *CustomerService) UpdateSettings(ctx context.Context, customerID string, req UpdateCustomerSettingsRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.RedThresholdDays != nil {
		if err := customer.SetRedThresholdDays(*req.RedThresholdDays); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}
