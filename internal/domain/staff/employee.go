package staff

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Field limits
const (
	MaxEmployeeCodeLength = 20
	MaxEmployeeNameLength = 100
)

// EmployeeType is the job an employee is booked for
type EmployeeType string

const (
	EmployeeTypeCook            EmployeeType = "COOK"
	EmployeeTypeBai             EmployeeType = "BAI"
	EmployeeTypeWaiter          EmployeeType = "WAITER"
	EmployeeTypeDriver          EmployeeType = "DRIVER"
	EmployeeTypeDisplayTableBoy EmployeeType = "DISPLAY_TABLE_BOY"
	EmployeeTypeServiceBoy      EmployeeType = "SERVICE_BOY"
)

// AllEmployeeTypes lists every valid employee type
func AllEmployeeTypes() []EmployeeType {
	return []EmployeeType{
		EmployeeTypeCook,
		EmployeeTypeBai,
		EmployeeTypeWaiter,
		EmployeeTypeDriver,
		EmployeeTypeDisplayTableBoy,
		EmployeeTypeServiceBoy,
	}
}

// IsValid checks if the type is known
func (t EmployeeType) IsValid() bool {
	for _, v := range AllEmployeeTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// String returns the type code
func (t EmployeeType) String() string {
	return string(t)
}

// DisplayName returns a human readable label
func (t EmployeeType) DisplayName() string {
	return shared.DisplayName(string(t))
}

// Employee is a member of the catering crew. TotalOrdersServed and
// TotalEarnings only move through RecordServedOrder.
type Employee struct {
	shared.BaseAggregateRoot
	EmployeeCode      string
	Name              string
	Phone             string
	Email             string
	Address           string
	Type              EmployeeType
	HireDate          *time.Time
	SalaryPerOrder    decimal.Decimal
	BaseSalary        decimal.Decimal
	TotalOrdersServed int
	TotalEarnings     decimal.Decimal
	Active            bool
}

// NewEmployee creates an active employee with zeroed counters
func NewEmployee(code, name string, employeeType EmployeeType, salaryPerOrder decimal.Decimal) (*Employee, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewValidationError("Employee code cannot be empty")
	}
	if len(code) > MaxEmployeeCodeLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Employee code cannot exceed %d characters", MaxEmployeeCodeLength))
	}
	if name == "" {
		return nil, shared.NewValidationError("Employee name cannot be empty")
	}
	if len(name) > MaxEmployeeNameLength {
		return nil, shared.NewValidationError(fmt.Sprintf("Employee name cannot exceed %d characters", MaxEmployeeNameLength))
	}
	if !employeeType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown employee type %q", employeeType))
	}
	if err := shared.CheckAmount("Salary per order", salaryPerOrder); err != nil {
		return nil, err
	}

	e := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeCode:      code,
		Name:              name,
		Type:              employeeType,
		SalaryPerOrder:    salaryPerOrder,
		BaseSalary:        decimal.Zero,
		TotalEarnings:     decimal.Zero,
		Active:            true,
	}
	e.AddDomainEvent(NewEmployeeCreatedEvent(e))
	return e, nil
}

// SetContact updates phone, email and address
func (e *Employee) SetContact(phone, email, address string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewValidationError(fmt.Sprintf("Invalid email address %q", email))
		}
	}
	e.Phone = strings.TrimSpace(phone)
	e.Email = email
	e.Address = strings.TrimSpace(address)
	e.Touch()
	return nil
}

// SetHireDate records when the employee joined
func (e *Employee) SetHireDate(date time.Time) {
	d := shared.StartOfDay(date)
	e.HireDate = &d
	e.Touch()
}

// SetBaseSalary sets the fixed monthly component
func (e *Employee) SetBaseSalary(amount decimal.Decimal) error {
	if err := shared.CheckAmount("Base salary", amount); err != nil {
		return err
	}
	e.BaseSalary = amount
	e.Touch()
	return nil
}

// SetSalaryPerOrder changes the default pay for future assignments.
// Existing assignments keep their snapshot.
func (e *Employee) SetSalaryPerOrder(amount decimal.Decimal) error {
	if err := shared.CheckAmount("Salary per order", amount); err != nil {
		return err
	}
	e.SalaryPerOrder = amount
	e.Touch()
	return nil
}

// Rename changes the display name
func (e *Employee) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Employee name cannot be empty")
	}
	if len(name) > MaxEmployeeNameLength {
		return shared.NewValidationError(fmt.Sprintf("Employee name cannot exceed %d characters", MaxEmployeeNameLength))
	}
	e.Name = name
	e.Touch()
	return nil
}

// RecordServedOrder counts one more served order and adds its payment to earnings
func (e *Employee) RecordServedOrder(payment decimal.Decimal) error {
	if err := shared.CheckAmount("Payment", payment); err != nil {
		return err
	}
	e.TotalOrdersServed++
	e.TotalEarnings = e.TotalEarnings.Add(payment)
	e.Touch()
	return nil
}

// Deactivate removes the employee from availability
func (e *Employee) Deactivate() error {
	if !e.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "Employee is already inactive")
	}
	e.Active = false
	e.Touch()
	e.AddDomainEvent(NewEmployeeStatusEvent(e))
	return nil
}

// Activate makes the employee bookable again
func (e *Employee) Activate() error {
	if e.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "Employee is already active")
	}
	e.Active = true
	e.Touch()
	e.AddDomainEvent(NewEmployeeStatusEvent(e))
	return nil
}

// Earnings returns TotalEarnings as Money in the given currency
func (e *Employee) Earnings(currency valueobject.Currency) valueobject.Money {
	return valueobject.MoneyIn(e.TotalEarnings, currency)
}
