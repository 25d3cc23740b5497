package repository

import (
	"context"
	"errors"

	"voltstock/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleRepository is the persistence gateway for the sales ledger.
type SaleRepository interface {
	List(ctx context.Context) ([]model.SaleItem, error)
	FindByID(ctx context.Context, id string) (*model.SaleItem, error)
	Create(ctx context.Context, item *model.SaleItem) error
	Update(ctx context.Context, item *model.SaleItem) error
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, items []model.SaleItem) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) List(ctx context.Context) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*model.SaleItem, error) {
	var item model.SaleItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &item, err
}

func (r *saleRepo) Create(ctx context.Context, item *model.SaleItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *saleRepo) Update(ctx context.Context, item *model.SaleItem) error {
	res := r.db.WithContext(ctx).Model(&model.SaleItem{}).Where("id = ?", item.ID).
		Select("date", "product_id", "product", "quantity_sold", "unit_price", "unit_cost", "total_sale").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.SaleItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepo) Upsert(ctx context.Context, items []model.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "product_id", "product", "quantity_sold", "unit_price", "unit_cost", "total_sale", "updated_at"}),
	}).Create(&items).Error
}
