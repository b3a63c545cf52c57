package staff

import (
	"time"

	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEmployeeInput carries the fields needed to hire an employee
type CreateEmployeeInput struct {
	EmployeeCode   string
	Name           string
	Type           staff.EmployeeType
	Phone          string
	Email          string
	Address        string
	HireDate       *time.Time
	SalaryPerOrder decimal.Decimal
	BaseSalary     decimal.Decimal
}

// UpdateEmployeeInput carries editable fields; nil fields are left alone
type UpdateEmployeeInput struct {
	Name           *string
	Phone          *string
	Email          *string
	Address        *string
	HireDate       *time.Time
	SalaryPerOrder *decimal.Decimal
	BaseSalary     *decimal.Decimal
}

// EmployeeResponse is the read model of an Employee
type EmployeeResponse struct {
	ID                uuid.UUID       `json:"id"`
	EmployeeCode      string          `json:"employee_code"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	TypeName          string          `json:"type_name"`
	Phone             string          `json:"phone,omitempty"`
	Email             string          `json:"email,omitempty"`
	Address           string          `json:"address,omitempty"`
	HireDate          *time.Time      `json:"hire_date,omitempty"`
	SalaryPerOrder    decimal.Decimal `json:"salary_per_order"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	TotalOrdersServed int             `json:"total_orders_served"`
	TotalEarnings     decimal.Decimal `json:"total_earnings"`
	Active            bool            `json:"active"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToEmployeeResponse maps an Employee to its read model
func ToEmployeeResponse(e *staff.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		EmployeeCode:      e.EmployeeCode,
		Name:              e.Name,
		Type:              string(e.Type),
		TypeName:          e.Type.DisplayName(),
		Phone:             e.Phone,
		Email:             e.Email,
		Address:           e.Address,
		HireDate:          e.HireDate,
		SalaryPerOrder:    e.SalaryPerOrder,
		BaseSalary:        e.BaseSalary,
		TotalOrdersServed: e.TotalOrdersServed,
		TotalEarnings:     e.TotalEarnings,
		Active:            e.Active,
		Version:           e.GetVersion(),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// ToEmployeeResponses maps a slice of employees
func ToEmployeeResponses(employees []staff.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, ToEmployeeResponse(&employees[i]))
	}
	return out
}
