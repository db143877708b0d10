package repositories

import (
	"context"

	"goldtrack/internal/adapters/persistence/models"
	"goldtrack/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Sales
// ============================================================

// saleRepository implements SaleRepository interface
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// Create appends a sale
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	m := models.SaleFromDomain(sale)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	sale.ID = m.ID
	return nil
}

// List lists the sales visible in scope whose sale_date falls in dr, newest first
func (r *saleRepository) List(ctx context.Context, scope domain.Scope, dr domain.DateRange) ([]*domain.Sale, error) {
	var rows []*models.Sale
	q := between(scoped(r.db.WithContext(ctx), scope), "sale_date", dr)
	if err := q.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return salesToDomain(rows), nil
}

// ListByCustomerIDs lists every sale of the given customers regardless of who recorded it
func (r *saleRepository) ListByCustomerIDs(ctx context.Context, customerIDs []uint) ([]*domain.Sale, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}
	var rows []*models.Sale
	if err := r.db.WithContext(ctx).Where("customer_id IN ?", customerIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return salesToDomain(rows), nil
}

func salesToDomain(rows []*models.Sale) []*domain.Sale {
	out := make([]*domain.Sale, 0, len(rows))
	for _, s := range rows {
		out = append(out, s.ToDomain())
	}
	return out
}

// ============================================================
// Collections
// ============================================================

// collectionRepository implements CollectionRepository interface
type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// Create appends a collection
func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	m := models.CollectionFromDomain(collection)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	collection.ID = m.ID
	return nil
}

// List lists the collections visible in scope dated in dr, newest first
func (r *collectionRepository) List(ctx context.Context, scope domain.Scope, dr domain.DateRange) ([]*domain.Collection, error) {
	var rows []*models.Collection
	q := between(scoped(r.db.WithContext(ctx), scope), "collection_date", dr)
	if err := q.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return collectionsToDomain(rows), nil
}

// ListByCustomerIDs lists every collection of the given customers regardless of who recorded it
func (r *collectionRepository) ListByCustomerIDs(ctx context.Context, customerIDs []uint) ([]*domain.Collection, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}
	var rows []*models.Collection
	if err := r.db.WithContext(ctx).Where("customer_id IN ?", customerIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return collectionsToDomain(rows), nil
}

func collectionsToDomain(rows []*models.Collection) []*domain.Collection {
	out := make([]*domain.Collection, 0, len(rows))
	for _, c := range rows {
		out = append(out, c.ToDomain())
	}
	return out
}
