package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// notFoundAs maps a repository record-not-found to a 404 for the named
// resource and passes every other error through.
func notFoundAs(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFoundError(resource)
	}
	return err
}

// ReferenceService handles the reference tables the ledgers soft-reference:
// banks, currencies, branches and employees.
type ReferenceService struct {
	bankRepo     repository.BankRepository
	currencyRepo repository.CurrencyRepository
	branchRepo   repository.BranchRepository
	employeeRepo repository.EmployeeRepository
}

// NewReferenceService creates a new reference service
func NewReferenceService(
	bankRepo repository.BankRepository,
	currencyRepo repository.CurrencyRepository,
	branchRepo repository.BranchRepository,
	employeeRepo repository.EmployeeRepository,
) *ReferenceService {
	return &ReferenceService{
		bankRepo:     bankRepo,
		currencyRepo: currencyRepo,
		branchRepo:   branchRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateBank adds a payment-channel bank
func (s *ReferenceService) CreateBank(ctx context.Context, name string) (*entity.Bank, error) {
	existing, err := s.bankRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Bank already exists")
	}

	bank := &entity.Bank{Name: name}
	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// ListBanks lists all banks
func (s *ReferenceService) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	return s.bankRepo.List(ctx)
}

// DeleteBank removes a bank. Orders and summaries keep the name, so history
// is unaffected.
func (s *ReferenceService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(s.bankRepo.Delete(ctx, id), "Bank")
}

// CreateCurrencyInput represents the create currency input
type CreateCurrencyInput struct {
	Name         string
	Symbol       string
	ExchangeRate decimal.Decimal
}

// CreateCurrency configures a currency symbol for the transaction ledger.
// The exchange rate is display data only.
func (s *ReferenceService) CreateCurrency(ctx context.Context, input *CreateCurrencyInput) (*entity.Currency, error) {
	existing, err := s.currencyRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Currency symbol already configured")
	}

	currency := &entity.Currency{
		Name:         input.Name,
		Symbol:       input.Symbol,
		ExchangeRate: input.ExchangeRate,
	}
	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// ListCurrencies lists configured currencies
func (s *ReferenceService) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	return s.currencyRepo.List(ctx)
}

// UpdateCurrencyRate updates the informational exchange rate of a symbol
func (s *ReferenceService) UpdateCurrencyRate(ctx context.Context, symbol string, rate decimal.Decimal) (*entity.Currency, error) {
	currency, err := s.currencyRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}

	currency.ExchangeRate = rate
	if err := s.currencyRepo.Update(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// DeleteCurrency removes a configured currency. Existing postings keep the
// symbol; only new postings are affected.
func (s *ReferenceService) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(s.currencyRepo.Delete(ctx, id), "Currency")
}

// CreateBranchInput represents the create branch input
type CreateBranchInput struct {
	Name    string
	Address string
	Phone   string
}

// CreateBranch adds a restaurant location
func (s *ReferenceService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	branch := &entity.Branch{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// ListBranches lists all branches
func (s *ReferenceService) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx)
}

// UpdateBranchInput represents the update branch input
type UpdateBranchInput struct {
	Name    *string
	Address *string
	Phone   *string
}

// UpdateBranch edits a branch
func (s *ReferenceService) UpdateBranch(ctx context.Context, id uuid.UUID, input *UpdateBranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != nil {
		branch.Name = *input.Name
	}
	if input.Address != nil {
		branch.Address = *input.Address
	}
	if input.Phone != nil {
		branch.Phone = *input.Phone
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch removes a branch
func (s *ReferenceService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(s.branchRepo.Delete(ctx, id), "Branch")
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	BranchID *uuid.UUID
	Name     string
	Phone    string
	Salary   decimal.Decimal
}

// CreateEmployee adds a staff member
func (s *ReferenceService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	if input.Salary.IsNegative() {
		return nil, apperror.NewBadRequestError("Salary cannot be negative")
	}

	if input.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, apperror.NewNotFoundError("Branch")
		}
	}

	employee := &entity.Employee{
		BranchID: input.BranchID,
		Name:     input.Name,
		Phone:    input.Phone,
		Salary:   input.Salary,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return s.employeeRepo.GetByID(ctx, employee.ID)
}

// GetEmployee retrieves an employee by id
func (s *ReferenceService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// ListEmployees lists all employees
func (s *ReferenceService) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// UpdateEmployeeInput represents the update employee input
type UpdateEmployeeInput struct {
	BranchID *uuid.UUID
	Name     *string
	Phone    *string
	Salary   *decimal.Decimal
}

// UpdateEmployee edits a staff member
func (s *ReferenceService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if input.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, apperror.NewNotFoundError("Branch")
		}
		employee.BranchID = input.BranchID
	}
	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Salary != nil {
		if input.Salary.IsNegative() {
			return nil, apperror.NewBadRequestError("Salary cannot be negative")
		}
		employee.Salary = *input.Salary
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return s.employeeRepo.GetByID(ctx, employee.ID)
}

// DeleteEmployee removes a staff member. Salary postings keep their soft
// reference.
func (s *ReferenceService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(s.employeeRepo.Delete(ctx, id), "Employee")
}
