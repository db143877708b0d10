package repositories

import (
	"context"

	"goldtrack/internal/adapters/persistence/models"
	"goldtrack/internal/core/domain"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m := models.CustomerFromDomain(customer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	customer.ID = m.ID
	return nil
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return c.ToDomain(), nil
}

// GetByIDs batch-loads customers; unknown ids are silently absent
func (r *customerRepository) GetByIDs(ctx context.Context, ids []uint) ([]*domain.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []*models.Customer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return customersToDomain(rows), nil
}

// List lists the customers visible in scope, newest first
func (r *customerRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Customer, error) {
	var rows []*models.Customer
	err := scoped(r.db.WithContext(ctx), scope).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return customersToDomain(rows), nil
}

// Count counts the customers visible in scope
func (r *customerRepository) Count(ctx context.Context, scope domain.Scope) (int64, error) {
	var count int64
	err := scoped(r.db.WithContext(ctx).Model(&models.Customer{}), scope).Count(&count).Error
	return count, err
}

func customersToDomain(rows []*models.Customer) []*domain.Customer {
	out := make([]*domain.Customer, 0, len(rows))
	for _, c := range rows {
		out = append(out, c.ToDomain())
	}
	return out
}
