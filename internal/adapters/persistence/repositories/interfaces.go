package repositories

import (
	"context"

	"goldtrack/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	// DeleteExpired removes tokens that expired before now and reports how many went
	DeleteExpired(ctx context.Context) (int64, error)
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	// Create inserts the profile; a second profile for the same user fails
	// with domain.ErrEmployeeAlreadyExists
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id uint) (*domain.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Employee, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uint) (*domain.Customer, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*domain.Customer, error)
	List(ctx context.Context, scope domain.Scope) ([]*domain.Customer, error)
	Count(ctx context.Context, scope domain.Scope) (int64, error)
}

// SaleRepository defines sale repository interface.
// Sales are append-only: there is no update or delete.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context, scope domain.Scope, r domain.DateRange) ([]*domain.Sale, error)
	ListByCustomerIDs(ctx context.Context, customerIDs []uint) ([]*domain.Sale, error)
}

// CollectionRepository defines collection repository interface.
// Collections are append-only: there is no update or delete.
type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) error
	List(ctx context.Context, scope domain.Scope, r domain.DateRange) ([]*domain.Collection, error)
	ListByCustomerIDs(ctx context.Context, customerIDs []uint) ([]*domain.Collection, error)
}
