package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"
	"cafepos/internal/validator"

	"go.uber.org/zap"
)

type CategoryInput struct {
	Name        string
	Description string
	Icon        string
	IsActive    *bool // nilなら有効
}

type MenuItemInput struct {
	CategoryID  string
	Name        string
	Description string
	Price       string
	ImageURL    string
	IsAvailable *bool // nilなら販売中
}

// CatalogUsecase はカテゴリとメニューの参照・管理。
type CatalogUsecase struct {
	categories  repo.CategoryRepository
	menuItems   repo.MenuItemRepository
	reader      repo.CatalogReader
	invalidator repo.CatalogInvalidator
	tx          repo.TransactionManager
	idGen       IDGenerator
	clock       Clock
	log         *zap.Logger
}

// DI
func NewCatalogUsecase(
	categories repo.CategoryRepository,
	menuItems repo.MenuItemRepository,
	reader repo.CatalogReader,
	invalidator repo.CatalogInvalidator,
	tx repo.TransactionManager,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
) *CatalogUsecase {
	return &CatalogUsecase{
		categories:  categories,
		menuItems:   menuItems,
		reader:      reader,
		invalidator: invalidator,
		tx:          tx,
		idGen:       idGen,
		clock:       clock,
		log:         log,
	}
}

// レジ向け：有効なカテゴリ
func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.reader.ListActiveCategories(ctx)
	if err != nil {
		u.log.Error("failed to list categories", zap.Error(err))
		return nil, errDB
	}
	return cats, nil
}

// レジ向け：販売中のメニュー。categoryIDが空なら全部。
func (u *CatalogUsecase) ListMenuItems(ctx context.Context, categoryID string) ([]model.MenuItem, error) {
	if categoryID != "" && !validator.IsUUID(categoryID) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	items, err := u.reader.ListAvailableMenuItems(ctx, categoryID)
	if err != nil {
		u.log.Error("failed to list menu items", zap.Error(err))
		return nil, errDB
	}
	return items, nil
}

// 管理画面向け：無効・販売停止も含む
func (u *CatalogUsecase) AdminListCategories(ctx context.Context, actor Actor) ([]model.Category, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return nil, err
	}
	cats, err := u.categories.List(ctx, false)
	if err != nil {
		return nil, errDB
	}
	return cats, nil
}

func (u *CatalogUsecase) AdminListMenuItems(ctx context.Context, actor Actor) ([]model.MenuItem, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return nil, err
	}
	items, err := u.menuItems.List(ctx, repo.MenuItemListQuery{})
	if err != nil {
		return nil, errDB
	}
	return items, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, actor Actor, in CategoryInput) (model.Category, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return model.Category{}, err
	}
	if err := fieldsError(validator.Category(in.Name, in.Description, in.Icon)); err != nil {
		return model.Category{}, err
	}

	c := model.Category{
		ID:          u.idGen.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        iconOrDefault(in.Icon),
		IsActive:    boolOr(in.IsActive, true),
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureCategoryNameFree(ctx, r.Categories(), c.Name, ""); err != nil {
			return err
		}
		created, err := r.Categories().Create(ctx, c)
		if err != nil {
			return err
		}
		c = created
		return u.audit(ctx, r, actor, model.AuditActionCreate, model.AuditResourceCategory, c.ID, nil, c)
	})
	if err != nil {
		return model.Category{}, u.txError("create category", err)
	}

	u.invalidate(ctx)
	return c, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, actor Actor, id string, in CategoryInput) (model.Category, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return model.Category{}, err
	}
	if !validator.IsUUID(id) {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err := fieldsError(validator.Category(in.Name, in.Description, in.Icon)); err != nil {
		return model.Category{}, err
	}

	var after model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := ensureCategoryNameFree(ctx, r.Categories(), in.Name, id); err != nil {
			return err
		}

		after = before
		after.Name = strings.TrimSpace(in.Name)
		after.Description = in.Description
		after.Icon = iconOrDefault(in.Icon)
		after.IsActive = boolOr(in.IsActive, before.IsActive)

		if err := r.Categories().Update(ctx, after); err != nil {
			return err
		}
		return u.audit(ctx, r, actor, model.AuditActionUpdate, model.AuditResourceCategory, id, before, after)
	})
	if err != nil {
		return model.Category{}, u.txError("update category", err)
	}

	u.invalidate(ctx)
	return after, nil
}

// DeleteCategory はカテゴリと配下のメニューを同じTxで論理削除する。
func (u *CatalogUsecase) DeleteCategory(ctx context.Context, actor Actor, id string) error {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return err
	}
	if !validator.IsUUID(id) {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := r.MenuItems().SoftDeleteByCategory(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Categories().SoftDelete(ctx, id); err != nil {
			return err
		}
		return u.audit(ctx, r, actor, model.AuditActionDelete, model.AuditResourceCategory, id, before,
			map[string]int64{"menu_items_deleted": n})
	})
	if err != nil {
		return u.txError("delete category", err)
	}

	u.invalidate(ctx)
	return nil
}

func (u *CatalogUsecase) CreateMenuItem(ctx context.Context, actor Actor, in MenuItemInput) (model.MenuItem, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return model.MenuItem{}, err
	}
	price, fields := validator.MenuItem(in.Name, in.CategoryID, in.Price, in.Description, in.ImageURL)
	if err := fieldsError(fields); err != nil {
		return model.MenuItem{}, err
	}

	m := model.MenuItem{
		ID:          u.idGen.NewID(),
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       price,
		ImageURL:    in.ImageURL,
		IsAvailable: boolOr(in.IsAvailable, true),
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureCategoryExists(ctx, r.Categories(), m.CategoryID); err != nil {
			return err
		}
		if err := ensureMenuItemNameFree(ctx, r.MenuItems(), m.Name, ""); err != nil {
			return err
		}
		created, err := r.MenuItems().Create(ctx, m)
		if err != nil {
			return err
		}
		m = created
		return u.audit(ctx, r, actor, model.AuditActionCreate, model.AuditResourceMenuItem, m.ID, nil, m)
	})
	if err != nil {
		return model.MenuItem{}, u.txError("create menu item", err)
	}

	u.invalidate(ctx)
	return m, nil
}

func (u *CatalogUsecase) UpdateMenuItem(ctx context.Context, actor Actor, id string, in MenuItemInput) (model.MenuItem, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return model.MenuItem{}, err
	}
	if !validator.IsUUID(id) {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}
	price, fields := validator.MenuItem(in.Name, in.CategoryID, in.Price, in.Description, in.ImageURL)
	if err := fieldsError(fields); err != nil {
		return model.MenuItem{}, err
	}

	var after model.MenuItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.MenuItems().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := ensureCategoryExists(ctx, r.Categories(), in.CategoryID); err != nil {
			return err
		}
		if err := ensureMenuItemNameFree(ctx, r.MenuItems(), in.Name, id); err != nil {
			return err
		}

		before.Category = nil
		after = before
		after.CategoryID = in.CategoryID
		after.Name = strings.TrimSpace(in.Name)
		after.Description = in.Description
		after.Price = price
		after.ImageURL = in.ImageURL
		after.IsAvailable = boolOr(in.IsAvailable, before.IsAvailable)

		if err := r.MenuItems().Update(ctx, after); err != nil {
			return err
		}
		return u.audit(ctx, r, actor, model.AuditActionUpdate, model.AuditResourceMenuItem, id, before, after)
	})
	if err != nil {
		return model.MenuItem{}, u.txError("update menu item", err)
	}

	u.invalidate(ctx)
	return after, nil
}

func (u *CatalogUsecase) DeleteMenuItem(ctx context.Context, actor Actor, id string) error {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return err
	}
	if !validator.IsUUID(id) {
		return NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.MenuItems().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.MenuItems().SoftDelete(ctx, id); err != nil {
			return err
		}
		before.Category = nil
		return u.audit(ctx, r, actor, model.AuditActionDelete, model.AuditResourceMenuItem, id, before, nil)
	})
	if err != nil {
		return u.txError("delete menu item", err)
	}

	u.invalidate(ctx)
	return nil
}

// 監査ログを作成
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す
func (u *CatalogUsecase) audit(ctx context.Context, r repo.TxRepos, actor Actor, action model.AuditAction, res model.AuditResourceType, id string, before, after any) error {
	return r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		Action:       action,
		ResourceType: res,
		ResourceID:   id,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    u.clock.Now(),
	})
}

// キャッシュ削除の失敗は書き込み結果に影響させない（TTLで消える）
func (u *CatalogUsecase) invalidate(ctx context.Context) {
	if err := u.invalidator.InvalidateCatalog(ctx); err != nil {
		u.log.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

// Tx内のエラーをHTTPErrorへ
func (u *CatalogUsecase) txError(op string, err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return errNotFound
	case errors.Is(err, repo.ErrDuplicate):
		return NewHTTPError(http.StatusConflict, "name already exists")
	}
	u.log.Error("failed to "+op, zap.Error(err))
	return errDB
}

func ensureCategoryNameFree(ctx context.Context, categories repo.CategoryRepository, name, selfID string) error {
	existing, err := categories.FindByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return NewHTTPError(http.StatusConflict, "category name already exists")
	}
	return nil
}

func ensureMenuItemNameFree(ctx context.Context, items repo.MenuItemRepository, name, selfID string) error {
	existing, err := items.FindByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return NewHTTPError(http.StatusConflict, "menu item name already exists")
	}
	return nil
}

func ensureCategoryExists(ctx context.Context, categories repo.CategoryRepository, id string) error {
	_, err := categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewValidationError(map[string]string{"category_id": "not found"})
	}
	return err
}

func iconOrDefault(icon string) string {
	if strings.TrimSpace(icon) == "" {
		return model.DefaultCategoryIcon
	}
	return strings.TrimSpace(icon)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
