package services

import (
	"context"
	"encoding/json"
	"errors"
	"fiber-admin/metrics"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/utils/cache"
	"fiber-admin/utils/xerrors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

const menuCacheNamespace = "menu_tree"

// MenuCache dipenuhi oleh *cache.Cache (redis). Nil berarti tanpa cache.
type MenuCache interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}

type MenuInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Path     string `json:"path" validate:"required,max=255"`
	Icon     string `json:"icon" validate:"max=100"`
	Sequence int    `json:"sequence" validate:"min=0"`
	ParentID *uint  `json:"parent_id"`
	System   string `json:"system" validate:"max=50"`
	IsActive *bool  `json:"is_active"`
}

type MenuService struct {
	repo     *repositories.MenuRepository
	cache    MenuCache
	ttl      time.Duration
	log      *zap.Logger
	validate *validator.Validate
}

func NewMenuService(repo *repositories.MenuRepository, cache MenuCache, ttl time.Duration, log *zap.Logger) *MenuService {
	return &MenuService{repo: repo, cache: cache, ttl: ttl, log: log, validate: validator.New()}
}

// GetMenuTree returns the active menu forest of one system.
func (s *MenuService) GetMenuTree(ctx context.Context, system string) ([]models.MenuNode, error) {
	if tree, ok := s.cached(ctx, system); ok {
		return tree, nil
	}

	menus, err := s.repo.GetActive(ctx, system)
	if err != nil {
		return nil, err
	}
	records := make([]models.MenuRecord, 0, len(menus))
	for _, m := range menus {
		records = append(records, m.Record())
	}
	tree, err := BuildMenuTree(records)
	if err != nil {
		s.log.Error("menu tree build failed", zap.String("system", system), zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if b, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, menuCacheNamespace, system, b, s.ttl); err != nil {
				s.log.Warn("menu cache set failed", zap.Error(err))
			}
		}
	}
	return tree, nil
}

func (s *MenuService) cached(ctx context.Context, system string) ([]models.MenuNode, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, err := s.cache.Get(ctx, menuCacheNamespace, system)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			metrics.RecordMenuCache("miss")
		} else {
			metrics.RecordMenuCache("error")
			s.log.Warn("menu cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var tree []models.MenuNode
	if err := json.Unmarshal(b, &tree); err != nil {
		metrics.RecordMenuCache("error")
		return nil, false
	}
	metrics.RecordMenuCache("hit")
	return tree, true
}

func (s *MenuService) invalidate(ctx context.Context, systems ...string) {
	if s.cache == nil {
		return
	}
	for _, system := range systems {
		if err := s.cache.Delete(ctx, menuCacheNamespace, system); err != nil {
			s.log.Warn("menu cache invalidate failed", zap.String("system", system), zap.Error(err))
		}
	}
}

func (s *MenuService) GetAll(ctx context.Context) ([]models.Menu, error) {
	return s.repo.GetAll(ctx)
}

func (s *MenuService) GetByID(ctx context.Context, id uint) (*models.Menu, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, input MenuInput, defaultSystem string, actor int) (*models.Menu, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	menu := models.Menu{
		Name:      strings.TrimSpace(input.Name),
		Path:      strings.TrimSpace(input.Path),
		Icon:      input.Icon,
		Sequence:  input.Sequence,
		ParentID:  normalizeParent(input.ParentID),
		System:    input.System,
		IsActive:  true,
		CreatedBy: actor,
	}
	if menu.System == "" {
		menu.System = defaultSystem
	}
	if input.IsActive != nil {
		menu.IsActive = *input.IsActive
	}
	if err := s.checkParent(ctx, 0, menu.ParentID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &menu); err != nil {
		return nil, err
	}
	s.invalidate(ctx, menu.System)
	return &menu, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, input MenuInput, actor int) (*models.Menu, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSystem := menu.System
	parent := normalizeParent(input.ParentID)
	if err := s.checkParent(ctx, id, parent); err != nil {
		return nil, err
	}

	menu.Name = strings.TrimSpace(input.Name)
	menu.Path = strings.TrimSpace(input.Path)
	menu.Icon = input.Icon
	menu.Sequence = input.Sequence
	menu.ParentID = parent
	if input.System != "" {
		menu.System = input.System
	}
	if input.IsActive != nil {
		menu.IsActive = *input.IsActive
	}
	menu.UpdatedBy = actor
	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldSystem, menu.System)
	return menu, nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, menu.System)
	return nil
}

// Import mengganti menu per system dengan baris legacy.
func (s *MenuService) Import(ctx context.Context, raw []RawMenu) (int, error) {
	menus, err := MapMenus(raw)
	if err != nil {
		return 0, err
	}

	bySystem := map[string][]models.Menu{}
	var order []string
	for _, m := range menus {
		if _, ok := bySystem[m.System]; !ok {
			order = append(order, m.System)
		}
		bySystem[m.System] = append(bySystem[m.System], m)
	}
	for _, system := range order {
		if err := s.repo.ReplaceSystem(ctx, system, bySystem[system]); err != nil {
			return 0, fmt.Errorf("import menus for %s: %w", system, err)
		}
		s.log.Info("menus imported", zap.String("system", system), zap.Int("count", len(bySystem[system])))
	}
	s.invalidate(ctx, order...)
	return len(menus), nil
}

// checkParent memastikan parent ada dan tidak membuat cycle.
func (s *MenuService) checkParent(ctx context.Context, id uint, parent *uint) error {
	if parent == nil {
		return nil
	}
	if *parent == id {
		return xerrors.Validation("menu cannot be its own parent")
	}
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	parents := make(map[uint]*uint, len(all))
	for _, m := range all {
		parents[m.ID] = m.ParentID
	}
	if _, ok := parents[*parent]; !ok {
		return xerrors.Validation(fmt.Sprintf("parent menu %d does not exist", *parent))
	}
	if id == 0 {
		return nil
	}
	seen := map[uint]bool{}
	for cur := parent; cur != nil; cur = parents[*cur] {
		if *cur == id {
			return fmt.Errorf("%w: menu %d under %d", xerrors.ErrMenuCycle, id, *parent)
		}
		if seen[*cur] {
			break
		}
		seen[*cur] = true
	}
	return nil
}

func normalizeParent(p *uint) *uint {
	if p == nil || *p == 0 {
		return nil
	}
	v := *p
	return &v
}
