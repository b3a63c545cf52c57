package customer

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Field limits
const (
	MaxCustomerCodeLength  = 20
	MaxCustomerNameLength  = 100
	MaxContactPersonLength = 100
	MaxPhoneLength         = 20
	MaxPaymentTermsLength  = 50
)

// CustomerType tells one-off bookings apart from repeat clients
type CustomerType string

const (
	CustomerTypeOneTime   CustomerType = "ONE_TIME"
	CustomerTypePermanent CustomerType = "PERMANENT"
)

// IsValid checks if the type is known
func (t CustomerType) IsValid() bool {
	return t == CustomerTypeOneTime || t == CustomerTypePermanent
}

// DisplayName returns a human readable label
func (t CustomerType) DisplayName() string {
	return shared.DisplayName(string(t))
}

// BusinessType describes what kind of client books the events
type BusinessType string

const (
	BusinessTypeHotel           BusinessType = "HOTEL"
	BusinessTypeEventManager    BusinessType = "EVENT_MANAGER"
	BusinessTypeCateringService BusinessType = "CATERING_SERVICE"
	BusinessTypeIndividual      BusinessType = "INDIVIDUAL"
)

// AllBusinessTypes lists every valid business type
func AllBusinessTypes() []BusinessType {
	return []BusinessType{
		BusinessTypeHotel,
		BusinessTypeEventManager,
		BusinessTypeCateringService,
		BusinessTypeIndividual,
	}
}

// IsValid checks if the business type is known
func (t BusinessType) IsValid() bool {
	for _, v := range AllBusinessTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// OrderTotals are the per-customer counters derived from its orders
type OrderTotals struct {
	Orders      int
	Amount      decimal.Decimal
	Outstanding decimal.Decimal
}

// Customer books catering orders. Orders reference it by ID only;
// TotalOrders, TotalAmount and OutstandingAmount are refreshed from those
// orders and never edited directly.
type Customer struct {
	shared.BaseAggregateRoot
	CustomerCode      string
	Name              string
	ContactPerson     string
	Phone             string
	Email             string
	Address           string
	Type              CustomerType
	BusinessType      BusinessType
	PaymentTerms      string
	CreditLimit       decimal.Decimal
	TotalOrders       int
	TotalAmount       decimal.Decimal
	OutstandingAmount decimal.Decimal
	Active            bool
}

// NewCustomer creates an active customer. An empty type defaults to ONE_TIME.
func NewCustomer(code, name string, customerType CustomerType) (*Customer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("Customer code cannot be empty")
	}
	if len(code) > MaxCustomerCodeLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Customer code cannot exceed %d characters", MaxCustomerCodeLength))
	}
	if customerType == "" {
		customerType = CustomerTypeOneTime
	}
	if !customerType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown customer type %q", customerType))
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerCode:      code,
		Type:              customerType,
		CreditLimit:       decimal.Zero,
		TotalAmount:       decimal.Zero,
		OutstandingAmount: decimal.Zero,
		Active:            true,
	}
	if err := c.setName(name); err != nil {
		return nil, err
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	if len(name) > MaxCustomerNameLength {
		return shared.NewValidationError(fmt.Sprintf("Customer name cannot exceed %d characters", MaxCustomerNameLength))
	}
	c.Name = name
	return nil
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	if err := c.setName(name); err != nil {
		return err
	}
	c.Touch()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	return nil
}

// SetContact updates contact person, phone, email and address
func (c *Customer) SetContact(contactPerson, phone, email, address string) error {
	contactPerson = strings.TrimSpace(contactPerson)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	if len(contactPerson) > MaxContactPersonLength {
		return shared.NewValidationError(fmt.Sprintf("Contact person cannot exceed %d characters", MaxContactPersonLength))
	}
	if len(phone) > MaxPhoneLength {
		return shared.NewValidationError(fmt.Sprintf("Phone cannot exceed %d characters", MaxPhoneLength))
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewValidationError(fmt.Sprintf("Invalid email address %q", email))
		}
	}
	c.ContactPerson = contactPerson
	c.Phone = phone
	c.Email = email
	c.Address = strings.TrimSpace(address)
	c.Touch()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	return nil
}

// Classify sets the customer type and the optional business type
func (c *Customer) Classify(customerType CustomerType, businessType BusinessType) error {
	if !customerType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown customer type %q", customerType))
	}
	if businessType != "" && !businessType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown business type %q", businessType))
	}
	c.Type = customerType
	c.BusinessType = businessType
	c.Touch()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	return nil
}

// SetTerms sets the payment terms text and the credit limit
func (c *Customer) SetTerms(paymentTerms string, creditLimit decimal.Decimal) error {
	paymentTerms = strings.TrimSpace(paymentTerms)
	if len(paymentTerms) > MaxPaymentTermsLength {
		return shared.NewValidationError(fmt.Sprintf("Payment terms cannot exceed %d characters", MaxPaymentTermsLength))
	}
	if err := shared.CheckAmount("Credit limit", creditLimit); err != nil {
		return err
	}
	c.PaymentTerms = paymentTerms
	c.CreditLimit = creditLimit
	c.Touch()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	return nil
}

// RefreshOrderTotals overwrites the order counters and reports whether
// anything changed
func (c *Customer) RefreshOrderTotals(totals OrderTotals) (bool, error) {
	if totals.Orders < 0 {
		return false, shared.NewValidationError("Order count cannot be negative")
	}
	if totals.Amount.IsNegative() || totals.Outstanding.IsNegative() {
		return false, shared.NewValidationError("Order totals cannot be negative")
	}
	if c.TotalOrders == totals.Orders &&
		c.TotalAmount.Equal(totals.Amount) &&
		c.OutstandingAmount.Equal(totals.Outstanding) {
		return false, nil
	}
	c.TotalOrders = totals.Orders
	c.TotalAmount = totals.Amount
	c.OutstandingAmount = totals.Outstanding
	c.Touch()
	return true, nil
}

// HasOutstanding reports whether the customer still owes money
func (c *Customer) HasOutstanding() bool {
	return c.OutstandingAmount.IsPositive()
}

// OverCreditLimit reports whether the outstanding balance exceeds a
// non-zero credit limit
func (c *Customer) OverCreditLimit() bool {
	return c.CreditLimit.IsPositive() && c.OutstandingAmount.GreaterThan(c.CreditLimit)
}

// Deactivate stops the customer from taking new orders
func (c *Customer) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "Customer is already inactive")
	}
	c.Active = false
	c.Touch()
	c.AddDomainEvent(NewCustomerStatusChangedEvent(c))
	return nil
}

// Activate lets the customer book orders again
func (c *Customer) Activate() error {
	if c.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "Customer is already active")
	}
	c.Active = true
	c.Touch()
	c.AddDomainEvent(NewCustomerStatusChangedEvent(c))
	return nil
}
