package staff

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*staff.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]staff.Employee, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindActive(ctx context.Context, employeeType *staff.EmployeeType) ([]staff.Employee, error) {
	args := m.Called(ctx, employeeType)
	return args.Get(0).([]staff.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *staff.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *staff.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func createTestEmployee() *staff.Employee {
	e, _ := staff.NewEmployee("W-01", "Lakshmi", staff.EmployeeTypeWaiter, decimal.NewFromInt(400))
	e.ClearDomainEvents()
	return e
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		publisher := &MockEventPublisher{}
		service := NewEmployeeService(repo, nil)
		service.SetEventPublisher(publisher)
		hired := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
		repo.On("ExistsByCode", ctx, "C-01").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*staff.Employee")).Return(nil)

		resp, err := service.Create(ctx, CreateEmployeeInput{
			EmployeeCode:   "C-01",
			Name:           "Ravi",
			Type:           staff.EmployeeTypeCook,
			Email:          "ravi@example.com",
			HireDate:       &hired,
			SalaryPerOrder: decimal.NewFromInt(800),
		})

		require.NoError(t, err)
		assert.Equal(t, "C-01", resp.EmployeeCode)
		assert.Equal(t, "Cook", resp.TypeName)
		assert.True(t, resp.Active)
		assert.Equal(t, 0, resp.TotalOrdersServed)
		require.NotNil(t, resp.HireDate)
		assert.Equal(t, 0, resp.HireDate.Hour())
		created := publisher.GetEventsByType(staff.EventTypeEmployeeCreated)
		require.Len(t, created, 1)
		assert.Equal(t, "C-01", created[0].(*staff.EmployeeCreatedEvent).EmployeeCode)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		service := NewEmployeeService(repo, nil)
		repo.On("ExistsByCode", ctx, "C-01").Return(true, nil)

		_, err := service.Create(ctx, CreateEmployeeInput{EmployeeCode: "C-01", Name: "Ravi", Type: staff.EmployeeTypeCook})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid type", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		service := NewEmployeeService(repo, nil)
		repo.On("ExistsByCode", ctx, "X-01").Return(false, nil)

		_, err := service.Create(ctx, CreateEmployeeInput{EmployeeCode: "X-01", Name: "Ravi", Type: "CHEF"})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEmployeeRepository)
	service := NewEmployeeService(repo, nil)
	employee := createTestEmployee()
	repo.On("FindByID", ctx, employee.ID).Return(employee, nil)
	repo.On("Save", ctx, employee).Return(nil)

	salary := decimal.NewFromInt(450)
	phone := "98400 00000"
	resp, err := service.Update(ctx, employee.ID, UpdateEmployeeInput{SalaryPerOrder: &salary, Phone: &phone})

	require.NoError(t, err)
	assert.True(t, resp.SalaryPerOrder.Equal(salary))
	assert.Equal(t, phone, resp.Phone)

	bad := "nope"
	_, err = service.Update(ctx, employee.ID, UpdateEmployeeInput{Email: &bad})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestEmployeeService_Activation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEmployeeRepository)
	publisher := &MockEventPublisher{}
	service := NewEmployeeService(repo, nil)
	service.SetEventPublisher(publisher)
	employee := createTestEmployee()
	repo.On("FindByID", ctx, employee.ID).Return(employee, nil)
	repo.On("Save", ctx, employee).Return(nil)

	resp, err := service.Deactivate(ctx, employee.ID)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	_, err = service.Deactivate(ctx, employee.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	resp, err = service.Activate(ctx, employee.ID)
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Len(t, publisher.GetEventsByType(staff.EventTypeEmployeeDeactivated), 1)
	assert.Len(t, publisher.GetEventsByType(staff.EventTypeEmployeeActivated), 1)
	assert.Empty(t, employee.GetDomainEvents())
}

func TestEmployeeService_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEmployeeRepository)
	service := NewEmployeeService(repo, nil)
	waiter := staff.EmployeeTypeWaiter
	repo.On("FindActive", ctx, &waiter).Return([]staff.Employee{*createTestEmployee()}, nil)

	list, err := service.ListActive(ctx, &waiter)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	bogus := staff.EmployeeType("CHEF")
	_, err = service.ListActive(ctx, &bogus)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestEmployeeService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEmployeeRepository)
	service := NewEmployeeService(repo, nil)
	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.Get(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
