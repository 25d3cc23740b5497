package repository

import (
	"context"
	"errors"

	"voltstock/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PendingRepository is the persistence gateway for pending orders.
type PendingRepository interface {
	List(ctx context.Context) ([]model.PendingItem, error)
	FindByID(ctx context.Context, id string) (*model.PendingItem, error)
	Create(ctx context.Context, item *model.PendingItem) error
	Update(ctx context.Context, item *model.PendingItem) error
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, items []model.PendingItem) error
}

type pendingRepo struct{ db *gorm.DB }

func NewPendingRepository(db *gorm.DB) PendingRepository { return &pendingRepo{db: db} }

func (r *pendingRepo) List(ctx context.Context) ([]model.PendingItem, error) {
	var items []model.PendingItem
	err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (r *pendingRepo) FindByID(ctx context.Context, id string) (*model.PendingItem, error) {
	var item model.PendingItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &item, err
}

func (r *pendingRepo) Create(ctx context.Context, item *model.PendingItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pendingRepo) Update(ctx context.Context, item *model.PendingItem) error {
	res := r.db.WithContext(ctx).Model(&model.PendingItem{}).Where("id = ?", item.ID).
		Select("date", "product_id", "product", "quantity_sent", "unit_price", "unit_cost", "status").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pendingRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.PendingItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pendingRepo) Upsert(ctx context.Context, items []model.PendingItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "product_id", "product", "quantity_sent", "unit_price", "unit_cost", "status", "updated_at"}),
	}).Create(&items).Error
}
