package customer

import (
	"context"
	"fmt"

	"github.com/catering/backend/internal/domain/customer"
	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTopCustomers is the list size of ListTop when no limit is given
const DefaultTopCustomers = 10

// CustomerService handles customer records. Order counters are maintained
// by the order service and are read-only here.
type CustomerService struct {
	customerRepo   customer.CustomerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.CustomerRepository, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CustomerService) publishDomainEvents(ctx context.Context, c *customer.Customer) {
	events := c.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	c.ClearDomainEvents()
}

// Create registers a customer. Customer codes must be unique.
func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error) {
	c, err := customer.NewCustomer(input.CustomerCode, input.Name, input.Type)
	if err != nil {
		return nil, err
	}
	exists, err := s.customerRepo.ExistsByCode(ctx, c.CustomerCode)
	if err != nil {
		return nil, fmt.Errorf("check customer code: %w", err)
	}
	if exists {
		return nil, shared.NewDuplicateError(fmt.Sprintf("Customer code %s already exists", c.CustomerCode))
	}

	if err := c.SetContact(input.ContactPerson, input.Phone, input.Email, input.Address); err != nil {
		return nil, err
	}
	if input.BusinessType != "" {
		if err := c.Classify(c.Type, input.BusinessType); err != nil {
			return nil, err
		}
	}
	if err := c.SetTerms(input.PaymentTerms, input.CreditLimit); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.logger.Info("customer created",
		zap.String("customer_code", c.CustomerCode),
		zap.String("type", string(c.Type)),
	)
	s.publishDomainEvents(ctx, c)

	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Get loads a customer
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// GetByCode loads a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// List returns a page of customers matching the filter with the total count
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// FindByPhone lists customers sharing a phone number
func (s *CustomerService) FindByPhone(ctx context.Context, phone string) ([]CustomerResponse, error) {
	if phone == "" {
		return nil, shared.NewValidationError("Phone is required")
	}
	customers, err := s.customerRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// ListOutstanding lists customers that still owe money
func (s *CustomerService) ListOutstanding(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindWithOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// ListTop lists the highest-billing customers
func (s *CustomerService) ListTop(ctx context.Context, limit int) ([]CustomerResponse, error) {
	if limit <= 0 {
		limit = DefaultTopCustomers
	}
	customers, err := s.customerRepo.FindTopByTotalAmount(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// ListFrequent lists customers with more than minOrders orders
func (s *CustomerService) ListFrequent(ctx context.Context, minOrders int) ([]CustomerResponse, error) {
	if minOrders < 0 {
		return nil, shared.NewValidationError("Minimum orders cannot be negative")
	}
	customers, err := s.customerRepo.FindWithOrdersAbove(ctx, minOrders)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// Counts returns the customer counts per type and the active count
func (s *CustomerService) Counts(ctx context.Context) (*TypeCounts, error) {
	oneTime, err := s.customerRepo.CountByType(ctx, customer.CustomerTypeOneTime)
	if err != nil {
		return nil, err
	}
	permanent, err := s.customerRepo.CountByType(ctx, customer.CustomerTypePermanent)
	if err != nil {
		return nil, err
	}
	active, err := s.customerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &TypeCounts{OneTime: oneTime, Permanent: permanent, Active: active}, nil
}

// Update edits profile, classification and terms
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *customer.Customer) error {
		if input.Name != nil {
			if err := c.Rename(*input.Name); err != nil {
				return err
			}
		}
		if input.ContactPerson != nil || input.Phone != nil || input.Email != nil || input.Address != nil {
			person, phone, email, address := c.ContactPerson, c.Phone, c.Email, c.Address
			if input.ContactPerson != nil {
				person = *input.ContactPerson
			}
			if input.Phone != nil {
				phone = *input.Phone
			}
			if input.Email != nil {
				email = *input.Email
			}
			if input.Address != nil {
				address = *input.Address
			}
			if err := c.SetContact(person, phone, email, address); err != nil {
				return err
			}
		}
		if input.Type != nil || input.BusinessType != nil {
			typ, business := c.Type, c.BusinessType
			if input.Type != nil {
				typ = *input.Type
			}
			if input.BusinessType != nil {
				business = *input.BusinessType
			}
			if err := c.Classify(typ, business); err != nil {
				return err
			}
		}
		if input.PaymentTerms != nil || input.CreditLimit != nil {
			terms, limit := c.PaymentTerms, c.CreditLimit
			if input.PaymentTerms != nil {
				terms = *input.PaymentTerms
			}
			if input.CreditLimit != nil {
				limit = *input.CreditLimit
			}
			if err := c.SetTerms(terms, limit); err != nil {
				return err
			}
		}
		return nil
	})
}

// Deactivate stops the customer from taking new orders
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *customer.Customer) error {
		return c.Deactivate()
	})
}

// Activate lets the customer book orders again
func (s *CustomerService) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *customer.Customer) error {
		return c.Activate()
	})
}

func (s *CustomerService) mutate(ctx context.Context, id uuid.UUID, fn func(c *customer.Customer) error) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, c)
	resp := ToCustomerResponse(c)
	return &resp, nil
}
