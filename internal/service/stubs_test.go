package service

import (
	"context"
	"errors"
	"sort"

	"voltstock/internal/model"
	"voltstock/internal/repository"

	"github.com/google/uuid"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

var errStubFailure = errors.New("storage unavailable")

type stubStockRepo struct {
	items map[string]*model.StockItem
	order []string

	failUpdateQty bool
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

func newStubStockRepo(items ...model.StockItem) *stubStockRepo {
	r := &stubStockRepo{items: make(map[string]*model.StockItem)}
	for i := range items {
		it := items[i]
		r.items[it.ID] = &it
		r.order = append(r.order, it.ID)
	}
	return r
}

func (r *stubStockRepo) List(_ context.Context, category string) ([]model.StockItem, error) {
	var out []model.StockItem
	for _, id := range r.order {
		it := r.items[id]
		if category == "" || it.Category == category {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubStockRepo) FindByID(_ context.Context, id string) (*model.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (r *stubStockRepo) Create(_ context.Context, item *model.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	copied := *item
	r.items[item.ID] = &copied
	r.order = append(r.order, item.ID)
	return nil
}

func (r *stubStockRepo) Update(_ context.Context, item *model.StockItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *stubStockRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	if r.failUpdateQty {
		return errStubFailure
	}
	it, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *stubStockRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubStockRepo) Upsert(_ context.Context, items []model.StockItem) error {
	for i := range items {
		it := items[i]
		if _, exists := r.items[it.ID]; !exists {
			r.order = append(r.order, it.ID)
		}
		r.items[it.ID] = &it
	}
	return nil
}

func (r *stubStockRepo) ClearCategory(_ context.Context, category string) error {
	for _, it := range r.items {
		if it.Category == category {
			it.Category = ""
		}
	}
	return nil
}

type stubSaleRepo struct {
	sales      map[string]*model.SaleItem
	failCreate bool
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[string]*model.SaleItem)}
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.SaleItem, error) {
	out := make([]model.SaleItem, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id string) (*model.SaleItem, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *stubSaleRepo) Create(_ context.Context, item *model.SaleItem) error {
	if r.failCreate {
		return errStubFailure
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	copied := *item
	r.sales[item.ID] = &copied
	return nil
}

func (r *stubSaleRepo) Update(_ context.Context, item *model.SaleItem) error {
	if _, ok := r.sales[item.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *item
	r.sales[item.ID] = &copied
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sales[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) Upsert(_ context.Context, items []model.SaleItem) error {
	for i := range items {
		it := items[i]
		r.sales[it.ID] = &it
	}
	return nil
}

type stubPendingRepo struct {
	items map[string]*model.PendingItem
}

var _ repository.PendingRepository = (*stubPendingRepo)(nil)

func newStubPendingRepo(items ...model.PendingItem) *stubPendingRepo {
	r := &stubPendingRepo{items: make(map[string]*model.PendingItem)}
	for i := range items {
		it := items[i]
		r.items[it.ID] = &it
	}
	return r
}

func (r *stubPendingRepo) List(_ context.Context) ([]model.PendingItem, error) {
	out := make([]model.PendingItem, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPendingRepo) FindByID(_ context.Context, id string) (*model.PendingItem, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *stubPendingRepo) Create(_ context.Context, item *model.PendingItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *stubPendingRepo) Update(_ context.Context, item *model.PendingItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *stubPendingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubPendingRepo) Upsert(_ context.Context, items []model.PendingItem) error {
	for i := range items {
		it := items[i]
		r.items[it.ID] = &it
	}
	return nil
}

type stubCategoryRepo struct {
	cats map[uuid.UUID]*model.Category
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func newStubCategoryRepo(names ...string) *stubCategoryRepo {
	r := &stubCategoryRepo{cats: make(map[uuid.UUID]*model.Category)}
	for _, n := range names {
		id := uuid.New()
		r.cats[id] = &model.Category{ID: id, Name: n}
	}
	return r
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.cats))
	for _, c := range r.cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.cats {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	r.cats[c.ID] = &copied
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cats[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.cats, id)
	return nil
}
