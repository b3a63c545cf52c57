package customer

import (
	"time"

	"github.com/catering/backend/internal/domain/customer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerInput carries the fields needed to register a customer
type CreateCustomerInput struct {
	CustomerCode  string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	Type          customer.CustomerType
	BusinessType  customer.BusinessType
	PaymentTerms  string
	CreditLimit   decimal.Decimal
}

// UpdateCustomerInput carries editable fields; nil fields are left alone
type UpdateCustomerInput struct {
	Name          *string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	Type          *customer.CustomerType
	BusinessType  *customer.BusinessType
	PaymentTerms  *string
	CreditLimit   *decimal.Decimal
}

// CustomerResponse is the read model of a Customer
type CustomerResponse struct {
	ID                uuid.UUID       `json:"id"`
	CustomerCode      string          `json:"customer_code"`
	Name              string          `json:"name"`
	ContactPerson     string          `json:"contact_person,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Email             string          `json:"email,omitempty"`
	Address           string          `json:"address,omitempty"`
	Type              string          `json:"type"`
	TypeName          string          `json:"type_name"`
	BusinessType      string          `json:"business_type,omitempty"`
	PaymentTerms      string          `json:"payment_terms,omitempty"`
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	TotalOrders       int             `json:"total_orders"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	OverCreditLimit   bool            `json:"over_credit_limit"`
	Active            bool            `json:"active"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToCustomerResponse maps a Customer to its read model
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                c.ID,
		CustomerCode:      c.CustomerCode,
		Name:              c.Name,
		ContactPerson:     c.ContactPerson,
		Phone:             c.Phone,
		Email:             c.Email,
		Address:           c.Address,
		Type:              string(c.Type),
		TypeName:          c.Type.DisplayName(),
		BusinessType:      string(c.BusinessType),
		PaymentTerms:      c.PaymentTerms,
		CreditLimit:       c.CreditLimit,
		TotalOrders:       c.TotalOrders,
		TotalAmount:       c.TotalAmount,
		OutstandingAmount: c.OutstandingAmount,
		OverCreditLimit:   c.OverCreditLimit(),
		Active:            c.Active,
		Version:           c.GetVersion(),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToCustomerResponses maps a slice of customers
func ToCustomerResponses(customers []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, ToCustomerResponse(&customers[i]))
	}
	return out
}

// TypeCounts is the number of customers per customer type
type TypeCounts struct {
	OneTime   int64 `json:"one_time"`
	Permanent int64 `json:"permanent"`
	Active    int64 `json:"active"`
}
