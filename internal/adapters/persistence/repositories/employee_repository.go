package repositories

import (
	"context"
	"errors"

	"goldtrack/internal/adapters/persistence/models"
	"goldtrack/internal/core/domain"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create inserts a profile. The unique index on user_id rejects a concurrent
// second insert for the same account; gorm reports it as ErrDuplicatedKey
// when the connection is opened with TranslateError.
func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	m := models.EmployeeFromDomain(employee)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmployeeAlreadyExists
		}
		return err
	}
	employee.ID = m.ID
	employee.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets an employee by ID
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*domain.Employee, error) {
	var e models.Employee
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return e.ToDomain(), nil
}

// GetByUserID gets the profile attached to a user account
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	var e models.Employee
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return e.ToDomain(), nil
}

// GetByIDs batch-loads employees; unknown ids are silently absent
func (r *employeeRepository) GetByIDs(ctx context.Context, ids []uint) ([]*domain.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []*models.Employee
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return employeesToDomain(rows), nil
}

// List lists every employee, newest first
func (r *employeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	var rows []*models.Employee
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return employeesToDomain(rows), nil
}

// SetActive flips the active flag of an employee
func (r *employeeRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero affected rows when the value is unchanged
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

func employeesToDomain(rows []*models.Employee) []*domain.Employee {
	out := make([]*domain.Employee, 0, len(rows))
	for _, e := range rows {
		out = append(out, e.ToDomain())
	}
	return out
}
