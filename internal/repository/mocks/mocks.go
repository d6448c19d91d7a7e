// Package mocks はrepositoryのtestifyモック。usecase/handler/middlewareのテストで使う。
package mocks

import (
	"context"
	"time"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// UserRepository
// =====================

type UserRepo struct{ mock.Mock }

func (m *UserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepo) IncrementTokenVersion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Category / MenuItem
// =====================

type CategoryRepo struct{ mock.Mock }

func (m *CategoryRepo) List(ctx context.Context, onlyActive bool) ([]model.Category, error) {
	args := m.Called(ctx, onlyActive)
	out, _ := args.Get(0).([]model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepo) FindByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepo) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepo) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepo) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MenuItemRepo struct{ mock.Mock }

func (m *MenuItemRepo) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).([]model.MenuItem)
	return out, args.Error(1)
}

func (m *MenuItemRepo) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MenuItemRepo) FindByName(ctx context.Context, name string) (model.MenuItem, error) {
	args := m.Called(ctx, name)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MenuItemRepo) Create(ctx context.Context, it model.MenuItem) (model.MenuItem, error) {
	args := m.Called(ctx, it)
	created, _ := args.Get(0).(model.MenuItem)
	return created, args.Error(1)
}

func (m *MenuItemRepo) Update(ctx context.Context, it model.MenuItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MenuItemRepo) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MenuItemRepo) SoftDeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

type CatalogReader struct{ mock.Mock }

func (m *CatalogReader) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Category)
	return out, args.Error(1)
}

func (m *CatalogReader) ListAvailableMenuItems(ctx context.Context, categoryID string) ([]model.MenuItem, error) {
	args := m.Called(ctx, categoryID)
	out, _ := args.Get(0).([]model.MenuItem)
	return out, args.Error(1)
}

type CatalogInvalidator struct{ mock.Mock }

func (m *CatalogInvalidator) InvalidateCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// =====================
// Transaction / Sequence
// =====================

type TransactionRepo struct{ mock.Mock }

func (m *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TransactionRepo) FindByID(ctx context.Context, id string) (model.Transaction, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(model.Transaction)
	return t, args.Error(1)
}

func (m *TransactionRepo) List(ctx context.Context, f repo.TransactionListFilter) ([]model.Transaction, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.Transaction)
	return out, args.Error(1)
}

type TransactionItemRepo struct{ mock.Mock }

func (m *TransactionItemRepo) CreateBulk(ctx context.Context, transactionID string, items []model.TransactionItem) error {
	args := m.Called(ctx, transactionID, items)
	return args.Error(0)
}

type SequenceRepo struct{ mock.Mock }

func (m *SequenceRepo) Next(ctx context.Context, day string) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

// =====================
// AuditLog / Dashboard
// =====================

type AuditLogRepo struct{ mock.Mock }

func (m *AuditLogRepo) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepo) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]model.AuditLog)
	return out, args.Error(1)
}

type DashboardRepo struct{ mock.Mock }

func (m *DashboardRepo) SalesSummary(ctx context.Context, from, to time.Time) (repo.SalesSummary, error) {
	args := m.Called(ctx, from, to)
	s, _ := args.Get(0).(repo.SalesSummary)
	return s, args.Error(1)
}

func (m *DashboardRepo) TopItem(ctx context.Context, from, to time.Time) (repo.TopItem, bool, error) {
	args := m.Called(ctx, from, to)
	it, _ := args.Get(0).(repo.TopItem)
	return it, args.Bool(1), args.Error(2)
}

var (
	_ repo.UserRepository            = (*UserRepo)(nil)
	_ repo.CategoryRepository        = (*CategoryRepo)(nil)
	_ repo.MenuItemRepository        = (*MenuItemRepo)(nil)
	_ repo.CatalogReader             = (*CatalogReader)(nil)
	_ repo.CatalogInvalidator        = (*CatalogInvalidator)(nil)
	_ repo.TransactionRepository     = (*TransactionRepo)(nil)
	_ repo.TransactionItemRepository = (*TransactionItemRepo)(nil)
	_ repo.SequenceRepository        = (*SequenceRepo)(nil)
	_ repo.AuditLogRepository        = (*AuditLogRepo)(nil)
	_ repo.DashboardRepository       = (*DashboardRepo)(nil)
)
