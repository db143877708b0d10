package models

import (
	"time"

	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User represents users table
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     *string        `gorm:"uniqueIndex;size:100" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		IsActive: u.IsActive,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) ToDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        rt.ID,
		UserID:    rt.UserID,
		TokenHash: rt.TokenHash,
		ExpiresAt: rt.ExpiresAt,
		CreatedAt: rt.CreatedAt,
		RevokedAt: rt.RevokedAt,
	}
}

// ============================================================
// Business Tables
// ============================================================

// Employee represents employees table.
// user_id is unique: one profile per account, enforced by the store.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:30;not null" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	Role      string    `gorm:"size:20;not null;default:'employee';index" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) ToDomain() *domain.Employee {
	return &domain.Employee{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Phone:     e.Phone,
		Email:     e.Email,
		Role:      domain.Role(e.Role),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}

func EmployeeFromDomain(e *domain.Employee) *Employee {
	return &Employee{
		ID:       e.ID,
		UserID:   e.UserID,
		Name:     e.Name,
		Phone:    e.Phone,
		Email:    e.Email,
		Role:     string(e.Role),
		IsActive: e.IsActive,
	}
}

// Customer represents customers table
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:150;not null" json:"name"`
	Phone      string    `gorm:"size:30;not null" json:"phone"`
	Email      *string   `gorm:"size:100" json:"email"`
	Address    *string   `gorm:"type:text" json:"address"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) ToDomain() *domain.Customer {
	return &domain.Customer{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Notes:      c.Notes,
		EmployeeID: c.EmployeeID,
		CreatedAt:  c.CreatedAt,
	}
}

func CustomerFromDomain(c *domain.Customer) *Customer {
	return &Customer{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Notes:      c.Notes,
		EmployeeID: c.EmployeeID,
		CreatedAt:  c.CreatedAt,
	}
}

// Sale represents sales table. total_amount is written once, never recomputed.
type Sale struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerID   uint            `gorm:"not null;index" json:"customer_id"`
	EmployeeID   uint            `gorm:"not null;index" json:"employee_id"`
	ProductName  string          `gorm:"size:150;not null" json:"product_name"`
	Karat        string          `gorm:"size:2;not null;index" json:"karat"`
	Weight       decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"weight"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price_per_gram"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,5);not null" json:"total_amount"`
	SaleDate     time.Time       `gorm:"not null;index" json:"sale_date"`
	Notes        *string         `gorm:"type:text" json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Sale) TableName() string {
	return "sales"
}

func (s *Sale) ToDomain() *domain.Sale {
	return &domain.Sale{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		EmployeeID:   s.EmployeeID,
		ProductName:  s.ProductName,
		Karat:        domain.Karat(s.Karat),
		Weight:       s.Weight,
		PricePerGram: s.PricePerGram,
		TotalAmount:  s.TotalAmount,
		SaleDate:     s.SaleDate,
		Notes:        s.Notes,
	}
}

func SaleFromDomain(s *domain.Sale) *Sale {
	return &Sale{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		EmployeeID:   s.EmployeeID,
		ProductName:  s.ProductName,
		Karat:        string(s.Karat),
		Weight:       s.Weight,
		PricePerGram: s.PricePerGram,
		TotalAmount:  s.TotalAmount,
		SaleDate:     s.SaleDate,
		Notes:        s.Notes,
	}
}

// Collection represents collections table
type Collection struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CustomerID     uint            `gorm:"not null;index" json:"customer_id"`
	EmployeeID     uint            `gorm:"not null;index" json:"employee_id"`
	CollectionType string          `gorm:"size:10;not null;index" json:"collection_type"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,5);not null" json:"amount"`
	PaymentMethod  *string         `gorm:"size:20" json:"payment_method"`
	CollectionDate time.Time       `gorm:"not null;index" json:"collection_date"`
	Notes          *string         `gorm:"type:text" json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Collection) TableName() string {
	return "collections"
}

func (c *Collection) ToDomain() *domain.Collection {
	col := &domain.Collection{
		ID:             c.ID,
		CustomerID:     c.CustomerID,
		EmployeeID:     c.EmployeeID,
		Type:           domain.CollectionType(c.CollectionType),
		Amount:         c.Amount,
		CollectionDate: c.CollectionDate,
		Notes:          c.Notes,
	}
	if c.PaymentMethod != nil {
		pm := domain.PaymentMethod(*c.PaymentMethod)
		col.PaymentMethod = &pm
	}
	return col
}

func CollectionFromDomain(c *domain.Collection) *Collection {
	col := &Collection{
		ID:             c.ID,
		CustomerID:     c.CustomerID,
		EmployeeID:     c.EmployeeID,
		CollectionType: string(c.Type),
		Amount:         c.Amount,
		CollectionDate: c.CollectionDate,
		Notes:          c.Notes,
	}
	if c.PaymentMethod != nil {
		pm := string(*c.PaymentMethod)
		col.PaymentMethod = &pm
	}
	return col
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates every table of the service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Employee{},
		&Customer{},
		&Sale{},
		&Collection{},
	)
}
