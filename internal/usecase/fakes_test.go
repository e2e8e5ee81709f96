package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"velora-backend/internal/domain"
)

// In-memory fakes for the repository interfaces. The fake transaction
// manager snapshots the stores it knows about and restores them when the
// body fails, mirroring a database rollback.

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range r.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetNewest(ctx context.Context, limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, product *domain.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, productID string, quantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < quantity {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, p.Name)
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) RestoreStock(ctx context.Context, productID string, quantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += quantity
	return nil
}

func (r *fakeProductRepo) ApplyRatingDelta(ctx context.Context, productID string, sumDelta float64, countDelta int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.RatingSum += sumDelta
	p.RatingCount += countDelta
	if p.RatingCount > 0 {
		p.Rating = p.RatingSum / float64(p.RatingCount)
	} else {
		p.Rating = 0
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	cp := *order
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) GetSalesFacts(ctx context.Context) ([]domain.SalesFact, error) {
	facts := []domain.SalesFact{}
	for _, o := range r.orders {
		facts = append(facts, domain.SalesFact{CreatedAt: o.CreatedAt, Total: o.Total})
	}
	return facts, nil
}

type fakeCartRepo struct {
	carts map[string]*domain.Cart // by user ID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (r *fakeCartRepo) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Items = append([]domain.CartItem{}, c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Create(ctx context.Context, cart *domain.Cart) error {
	cp := *cart
	r.carts[cart.UserID] = &cp
	return nil
}

func (r *fakeCartRepo) byCartID(cartID string) *domain.Cart {
	for _, c := range r.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (r *fakeCartRepo) UpsertItem(ctx context.Context, cartID, productID, size string, quantity int) error {
	c := r.byCartID(cartID)
	if c == nil {
		return domain.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items[i].Quantity += quantity
			return nil
		}
	}
	c.Items = append(c.Items, domain.CartItem{
		ID:        fmt.Sprintf("item-%d", len(c.Items)+1),
		CartID:    cartID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
	})
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID, size string) error {
	c := r.byCartID(cartID)
	if c == nil {
		return domain.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeCartRepo) Clear(ctx context.Context, cartID string) error {
	c := r.byCartID(cartID)
	if c == nil {
		return domain.ErrNotFound
	}
	c.Items = nil
	return nil
}

type fakeUserRepo struct {
	users     map[string]*domain.User
	addresses map[string][]domain.Address // by user ID
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*domain.User{}, addresses: map[string][]domain.Address{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	cp.Addresses = append([]domain.Address{}, r.addresses[id]...)
	return &cp, nil
}

func (r *fakeUserRepo) GetAll(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	out := []*domain.User{}
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, int64(len(r.users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) AddAddress(ctx context.Context, addr *domain.Address) error {
	r.addresses[addr.UserID] = append(r.addresses[addr.UserID], *addr)
	return nil
}

func (r *fakeUserRepo) UpdateAddress(ctx context.Context, addr *domain.Address) error {
	list := r.addresses[addr.UserID]
	for i := range list {
		if list[i].ID == addr.ID {
			list[i] = *addr
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeUserRepo) GetAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return append([]domain.Address{}, r.addresses[userID]...), nil
}

func (r *fakeUserRepo) DeleteAddress(ctx context.Context, id, userID string) error {
	list := r.addresses[userID]
	for i := range list {
		if list[i].ID == id {
			r.addresses[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeUserRepo) ClearDefaultAddress(ctx context.Context, userID string) error {
	list := r.addresses[userID]
	for i := range list {
		list[i].IsDefault = false
	}
	return nil
}

type fakeReturnRepo struct {
	returns map[string]*domain.ReturnRequest
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: map[string]*domain.ReturnRequest{}}
}

func (r *fakeReturnRepo) Create(ctx context.Context, ret *domain.ReturnRequest) error {
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) GetByID(ctx context.Context, id string) (*domain.ReturnRequest, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ret
	return &cp, nil
}

func (r *fakeReturnRepo) GetByUserID(ctx context.Context, userID string) ([]domain.ReturnRequest, error) {
	out := []domain.ReturnRequest{}
	for _, ret := range r.returns {
		if ret.UserID == userID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) GetAll(ctx context.Context) ([]domain.ReturnRequest, error) {
	out := []domain.ReturnRequest{}
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, nil
}

func (r *fakeReturnRepo) UpdateStatus(ctx context.Context, id, status, adminNotes string) error {
	ret, ok := r.returns[id]
	if !ok {
		return domain.ErrNotFound
	}
	ret.Status = status
	if adminNotes != "" {
		ret.AdminNotes = adminNotes
	}
	return nil
}

type fakeReviewRepo struct {
	reviews map[string]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*domain.Review{}}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	for _, rv := range r.reviews {
		if rv.ProductID == review.ProductID && rv.UserID == review.UserID {
			return domain.ErrDuplicate
		}
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error) {
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeReviewRepo) GetByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

// fakeTxManager snapshots the stores it knows about before running the
// body and restores them on failure.
type fakeTxManager struct {
	products *fakeProductRepo
	orders   *fakeOrderRepo
	returns  *fakeReturnRepo
	slides   *fakeSlideRepo
}

func snapshot[T any](store map[string]*T) map[string]T {
	snap := map[string]T{}
	for id, v := range store {
		snap[id] = *v
	}
	return snap
}

func restore[T any](snap map[string]T) map[string]*T {
	store := map[string]*T{}
	for id := range snap {
		v := snap[id]
		store[id] = &v
	}
	return store
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var productSnap map[string]domain.Product
	if m.products != nil {
		productSnap = snapshot(m.products.products)
	}
	var orderSnap map[string]domain.Order
	if m.orders != nil {
		orderSnap = snapshot(m.orders.orders)
	}
	var returnSnap map[string]domain.ReturnRequest
	if m.returns != nil {
		returnSnap = snapshot(m.returns.returns)
	}
	var slideSnap map[string]domain.HeroSlide
	if m.slides != nil {
		slideSnap = snapshot(m.slides.slides)
	}

	if err := fn(ctx); err != nil {
		if productSnap != nil {
			m.products.products = restore(productSnap)
		}
		if orderSnap != nil {
			m.orders.orders = restore(orderSnap)
		}
		if returnSnap != nil {
			m.returns.returns = restore(returnSnap)
		}
		if slideSnap != nil {
			m.slides.slides = restore(slideSnap)
		}
		return err
	}
	return nil
}

type fakeCache struct {
	items map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]interface{}{}}
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) {
	c.items[key] = value
}

func (c *fakeCache) Delete(key string) {
	delete(c.items, key)
}

func (c *fakeCache) Flush() {
	c.items = map[string]interface{}{}
}
