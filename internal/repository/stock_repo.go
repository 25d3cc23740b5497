package repository

import (
	"context"
	"errors"

	"voltstock/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when an update/delete targets an id that does not
// exist in the collection.
var ErrNotFound = errors.New("record not found")

// StockRepository is the persistence gateway for the stock collection.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory stubs.
type StockRepository interface {
	List(ctx context.Context, category string) ([]model.StockItem, error)
	FindByID(ctx context.Context, id string) (*model.StockItem, error)
	Create(ctx context.Context, item *model.StockItem) error
	Update(ctx context.Context, item *model.StockItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, items []model.StockItem) error
	ClearCategory(ctx context.Context, category string) error
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) List(ctx context.Context, category string) ([]model.StockItem, error) {
	var items []model.StockItem
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *stockRepo) FindByID(ctx context.Context, id string) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &item, err
}

func (r *stockRepo) Create(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepo) Update(ctx context.Context, item *model.StockItem) error {
	res := r.db.WithContext(ctx).Model(&model.StockItem{}).Where("id = ?", item.ID).
		Select("name", "sku", "unit_cost", "unit_price", "quantity", "category").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.StockItem{}).Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.StockItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepo) Upsert(ctx context.Context, items []model.StockItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sku", "unit_cost", "unit_price", "quantity", "category", "updated_at"}),
	}).Create(&items).Error
}

func (r *stockRepo) ClearCategory(ctx context.Context, category string) error {
	return r.db.WithContext(ctx).Model(&model.StockItem{}).
		Where("category = ?", category).
		Update("category", "").Error
}
