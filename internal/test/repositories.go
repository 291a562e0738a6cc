package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users    map[string]*model.User
	ByID     map[int64]*model.User
	Profiles map[int64]*model.Profile
	Next     int64
	Err      error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:    make(map[string]*model.User),
		ByID:     make(map[int64]*model.User),
		Profiles: make(map[int64]*model.Profile),
		Next:     1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, username, firstName, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if s.Profiles == nil {
		s.Profiles = make(map[int64]*model.Profile)
	}
	if _, exists := s.Users[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Username: username, FirstName: firstName, PasswordHash: passwordHash}
	s.Next++
	s.Users[username] = user
	s.ByID[user.ID] = user
	s.Profiles[user.ID] = &model.Profile{UserID: user.ID}
	return user, nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdatePassword stores a new hash for the user.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// GetProfile returns the stored profile or not found.
func (s *UserRepositoryStub) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if profile, ok := s.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile upserts the profile.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, profile model.Profile) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Profiles == nil {
		s.Profiles = make(map[int64]*model.Profile)
	}
	stored := profile
	s.Profiles[profile.UserID] = &stored
	return nil
}

// ProductRepositoryStub serves a fixed product collection.
type ProductRepositoryStub struct {
	Products      []model.Product
	OnSale        []model.SaleProduct
	DetailFn      func(context.Context, int64) (*model.ProductDetail, error)
	RatingUpdates map[int64]float64
	ListCalls     int
	Err           error
}

// ListAll returns the configured collection.
func (s *ProductRepositoryStub) ListAll(ctx context.Context) ([]model.Product, error) {
	s.ListCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products, nil
}

// ListByIDs returns the subset of the collection with matching identifiers.
func (s *ProductRepositoryStub) ListByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]model.Product, 0, len(ids))
	for _, p := range s.Products {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID finds a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetDetail builds a detail view from the collection or delegates to override.
func (s *ProductRepositoryStub) GetDetail(ctx context.Context, id int64) (*model.ProductDetail, error) {
	if s.DetailFn != nil {
		return s.DetailFn(ctx, id)
	}
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ProductDetail{Product: *product}, nil
}

// ListOnSale returns the configured sale items.
func (s *ProductRepositoryStub) ListOnSale(ctx context.Context) ([]model.SaleProduct, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.OnSale, nil
}

// UpdateRating records rating writes.
func (s *ProductRepositoryStub) UpdateRating(ctx context.Context, id int64, rating float64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.RatingUpdates == nil {
		s.RatingUpdates = make(map[int64]float64)
	}
	s.RatingUpdates[id] = rating
	return nil
}

// CategoryRepositoryStub returns a fixed category list.
type CategoryRepositoryStub struct {
	Categories []model.Category
	Err        error
}

// ListAll returns configured categories.
func (s *CategoryRepositoryStub) ListAll(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Categories, nil
}

// TagRepositoryStub returns a fixed tag list.
type TagRepositoryStub struct {
	Tags []model.Tag
	Err  error
}

// ListAll returns configured tags.
func (s *TagRepositoryStub) ListAll(ctx context.Context) ([]model.Tag, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Tags, nil
}

// ReviewRepositoryStub allows tests to customize review behaviour.
type ReviewRepositoryStub struct {
	CreateFn  func(context.Context, model.Review) (*model.Review, error)
	ListFn    func(context.Context, int64) ([]model.Review, error)
	AverageFn func(context.Context, int64) (float64, error)

	Created []model.Review
	Reviews []model.Review
	Average float64
}

// Create tracks invocations and returns configured responses.
func (s *ReviewRepositoryStub) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, review)
	}
	stored := review
	stored.ID = int64(len(s.Created) + 1)
	s.Created = append(s.Created, stored)
	return &stored, nil
}

// ListByProduct returns reviews for a product.
func (s *ReviewRepositoryStub) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, productID)
	}
	return s.Reviews, nil
}

// AverageRate returns the configured mean rate.
func (s *ReviewRepositoryStub) AverageRate(ctx context.Context, productID int64) (float64, error) {
	if s.AverageFn != nil {
		return s.AverageFn(ctx, productID)
	}
	return s.Average, nil
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, int64, decimal.Decimal, []int64) (*model.Order, error)
	GetByIDFn       func(context.Context, int64) (*model.Order, error)
	ListByUserFn    func(context.Context, int64) ([]model.Order, error)
	AcceptFn        func(context.Context, int64, model.AcceptanceDetails) error
	CreatePaymentFn func(context.Context, model.Payment) error

	Orders   []model.Order
	Accepted []model.AcceptanceDetails
	Payments []model.Payment
}

// Create returns the configured response or a draft order.
func (s *OrderRepositoryStub) Create(ctx context.Context, userID int64, totalCost decimal.Decimal, productIDs []int64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, totalCost, productIDs)
	}
	order := model.Order{
		ID:         int64(len(s.Orders) + 1),
		UserID:     userID,
		TotalCost:  totalCost,
		Status:     model.OrderStatusInProcess,
		ProductIDs: productIDs,
	}
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Accept records acceptance invocations.
func (s *OrderRepositoryStub) Accept(ctx context.Context, orderID int64, details model.AcceptanceDetails) error {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, orderID, details)
	}
	s.Accepted = append(s.Accepted, details)
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = model.OrderStatusAccepted
		}
	}
	return nil
}

// CreatePayment records payment invocations.
func (s *OrderRepositoryStub) CreatePayment(ctx context.Context, payment model.Payment) error {
	if s.CreatePaymentFn != nil {
		return s.CreatePaymentFn(ctx, payment)
	}
	s.Payments = append(s.Payments, payment)
	for i := range s.Orders {
		if s.Orders[i].ID == payment.OrderID {
			s.Orders[i].Status = model.OrderStatusPayed
		}
	}
	return nil
}
