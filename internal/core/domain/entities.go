package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents an employee role in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Identity is the resolved caller behind a session token
type Identity struct {
	UserID string
	Email  string
}

// User represents a sign-in account (the identity reference)
type User struct {
	ID        string
	Username  string
	Email     *string
	Password  string // Hashed
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee is the business profile attached to a user account.
// At most one Employee exists per UserID.
type Employee struct {
	ID        uint
	UserID    string
	Name      string
	Phone     string
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
}

// IsAdmin reports whether the employee has cross-employee visibility
func (e *Employee) IsAdmin() bool {
	return e != nil && e.Role == RoleAdmin
}

// Customer is owned by the employee that registered it
type Customer struct {
	ID         uint
	Name       string
	Phone      string
	Email      *string
	Address    *string
	Notes      *string
	EmployeeID uint
	CreatedAt  time.Time
}

// CustomerDraft holds the caller-supplied fields of a new customer
type CustomerDraft struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
	Notes   *string
}

// Sale is an immutable gold sale. TotalAmount is Weight × PricePerGram,
// computed once when the sale is recorded.
type Sale struct {
	ID           uint
	CustomerID   uint
	EmployeeID   uint
	ProductName  string
	Karat        Karat
	Weight       decimal.Decimal
	PricePerGram decimal.Decimal
	TotalAmount  decimal.Decimal
	SaleDate     time.Time
	Notes        *string
}

// Collection is an immutable payment received from a customer.
// Amount is grams for gold collections and currency for cash collections.
type Collection struct {
	ID             uint
	CustomerID     uint
	EmployeeID     uint
	Type           CollectionType
	Amount         decimal.Decimal
	PaymentMethod  *PaymentMethod
	CollectionDate time.Time
	Notes          *string
}

// RefreshToken represents a stored (hashed) refresh token
type RefreshToken struct {
	ID        uint
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token was revoked
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token is past its expiry at now
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
