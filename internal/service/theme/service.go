package theme

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"lms-theme-renderer/internal/cache"
	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/layout"
	"lms-theme-renderer/internal/menu"
	"lms-theme-renderer/internal/metric"
	"lms-theme-renderer/internal/render"
	"lms-theme-renderer/internal/settings"
	"lms-theme-renderer/pkg/logger"
)

const categoriesDropdownName = "Course categories"

// Store is the persisted side of a theme.
type Store interface {
	Settings(ctx context.Context, themeID string) (map[string]string, error)
	UpsertSetting(ctx context.Context, themeID, name, value string) error
	AreaFiles(ctx context.Context, contextID int64, component, area string) ([]domain.StoredFile, error)
}

type CategoryTree interface {
	Tree(ctx context.Context) ([]*domain.Category, error)
}

type ModuleStore interface {
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	ListByCourse(ctx context.Context, courseID int64) ([]domain.CourseModule, error)
}

type SettingsCache interface {
	Settings(ctx context.Context, themeKey string) (map[string]string, error)
	StoreSettings(ctx context.Context, themeKey string, values map[string]string) error
	InvalidateSettings(ctx context.Context, themeKey string) error
}

// Fragment is a rendered region along with the data it was rendered from.
type Fragment struct {
	HTML template.HTML `json:"html"`
	Data any           `json:"data,omitempty"`
}

type Deps struct {
	Store      Store
	Categories CategoryTree
	Modules    ModuleStore
	Cache      SettingsCache
	Renderer   *render.Renderer
	Metrics    *metric.Renderer
	Logger     logrus.FieldLogger
	FileURL    string
	SiteName   string
}

type Service struct {
	store      Store
	categories CategoryTree
	modules    ModuleStore
	cache      SettingsCache
	renderer   *render.Renderer
	metrics    *metric.Renderer
	logger     logrus.FieldLogger
	fileURL    string
	siteName   string
}

func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	if deps.Metrics == nil {
		deps.Metrics = metric.Noop()
	}
	return &Service{
		store:      deps.Store,
		categories: deps.Categories,
		modules:    deps.Modules,
		cache:      deps.Cache,
		renderer:   deps.Renderer,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		fileURL:    deps.FileURL,
		siteName:   deps.SiteName,
	}
}

// Settings returns the theme's settings, served from the cache when possible.
func (s *Service) Settings(ctx context.Context, t *domain.Theme) (settings.Settings, error) {
	log := s.logger.WithField("theme", t.Key)
	if s.cache != nil {
		values, err := s.cache.Settings(ctx, t.Key)
		switch {
		case err == nil:
			return settings.New(values)
		case !errors.Is(err, cache.ErrMiss):
			log.WithError(err).Warn("settings cache read failed")
		}
	}

	values, err := s.store.Settings(ctx, t.ID)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.StoreSettings(ctx, t.Key, values); err != nil {
			log.WithError(err).Warn("settings cache write failed")
		}
	}
	return settings.New(values)
}

// UpdateSetting persists one setting and drops the cached snapshot.
func (s *Service) UpdateSetting(ctx context.Context, t *domain.Theme, name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: empty setting name", domain.ErrInvalidSetting)
	}
	if err := s.store.UpsertSetting(ctx, t.ID, name, value); err != nil {
		return fmt.Errorf("store setting %s: %w", name, err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSettings(ctx, t.Key); err != nil {
			s.logger.WithError(err).WithField("theme", t.Key).Warn("settings cache invalidation failed")
		}
	}
	return nil
}

// HeaderCategories renders the category dropdown of the page header.
// A disabled menu or a corrupt category tree yields an empty fragment.
func (s *Service) HeaderCategories(ctx context.Context, t *domain.Theme) (Fragment, error) {
	var (
		snapshot settings.Settings
		roots    []*domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.Settings(gctx, t)
		return err
	})
	g.Go(func() error {
		var err error
		roots, err = s.categories.Tree(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Fragment{}, err
	}

	policy := domain.ParseVisibilityPolicy(snapshot.Get("menuheadercateg"))
	s.metrics.MenuBuilds.Increment(string(policy))
	if policy == domain.PolicyDisabled {
		return Fragment{Data: []domain.MenuItem{}}, nil
	}

	items, err := menu.BuildMenu(roots, policy)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptCategoryTree) {
			s.metrics.CorruptTrees.Increment()
			s.logger.WithError(err).WithField("theme", t.Key).Warn("header categories skipped")
			return Fragment{Data: []domain.MenuItem{}}, nil
		}
		return Fragment{}, err
	}

	html, err := s.renderer.Render(render.HeaderDropdown, struct {
		DropdownName string
		Items        []domain.MenuItem
	}{DropdownName: categoriesDropdownName, Items: items})
	if err != nil {
		return Fragment{}, err
	}
	s.metrics.Renders.Increment("header_categories")
	return Fragment{HTML: html, Data: items}, nil
}

func (s *Service) Footer(ctx context.Context, t *domain.Theme, lang string) (Fragment, error) {
	snapshot, err := s.Settings(ctx, t)
	if err != nil {
		return Fragment{}, err
	}
	footer := layout.FooterColumns(snapshot, lang)
	html, err := s.renderer.Render(render.FooterCustomContent, footer)
	if err != nil {
		return Fragment{}, err
	}
	s.metrics.Renders.Increment("footer")
	return Fragment{HTML: html, Data: footer}, nil
}

func (s *Service) BlockRegions(ctx context.Context, t *domain.Theme, editing bool) (Fragment, error) {
	snapshot, err := s.Settings(ctx, t)
	if err != nil {
		return Fragment{}, err
	}
	regions := layout.FrontPageBlockRegions(snapshot, editing)
	html, err := s.renderer.Render(render.BlockRegions, regions)
	if err != nil {
		return Fragment{}, err
	}
	s.metrics.Renders.Increment("block_regions")
	return Fragment{HTML: html, Data: regions}, nil
}

func (s *Service) Assets(ctx context.Context, t *domain.Theme) (layout.Assets, error) {
	snapshot, err := s.Settings(ctx, t)
	if err != nil {
		return layout.Assets{}, err
	}
	return layout.BuildAssets(snapshot, s.urls(t)), nil
}

func (s *Service) LoginPage(ctx context.Context, t *domain.Theme) (layout.LoginPage, error) {
	snapshot, err := s.Settings(ctx, t)
	if err != nil {
		return layout.LoginPage{}, err
	}
	return layout.BuildLoginPage(snapshot, s.siteName, layout.BuildAssets(snapshot, s.urls(t))), nil
}

// Header returns cover image and heading data for a course page.
func (s *Service) Header(ctx context.Context, t *domain.Theme, page domain.Page, courseID int64, canEdit bool) (layout.Header, error) {
	snapshot, err := s.Settings(ctx, t)
	if err != nil {
		return layout.Header{}, err
	}
	files, err := s.store.AreaFiles(ctx, courseID, themeComponent(t), "coverimage")
	if err != nil {
		return layout.Header{}, fmt.Errorf("cover image files: %w", err)
	}
	return layout.BuildHeader(page, courseID, files, snapshot, s.urls(t), canEdit), nil
}

// ActivityNavigation renders previous/next links for a module page.
// The fragment is empty when the theme hides the navigation or the page has none.
func (s *Service) ActivityNavigation(ctx context.Context, t *domain.Theme, page domain.Page, courseID, cmID int64) (Fragment, error) {
	snapshot, err := s.Settings(ctx, t)
	if err != nil {
		return Fragment{}, err
	}
	if !snapshot.Bool("showactivitynavigation") {
		return Fragment{}, nil
	}
	modules, err := s.modules.ListByCourse(ctx, courseID)
	if err != nil {
		return Fragment{}, fmt.Errorf("list modules: %w", err)
	}
	nav, ok := layout.BuildActivityNavigation(page, modules, cmID)
	if !ok {
		return Fragment{}, nil
	}
	html, err := s.renderer.Render(render.ActivityNavigation, nav)
	if err != nil {
		return Fragment{}, err
	}
	s.metrics.Renders.Increment("activity_navigation")
	return Fragment{HTML: html, Data: nav}, nil
}

// CompletionFooter renders the completion footer with a link to the next visible module.
// Themes that keep the platform's own completion display get an empty fragment.
func (s *Service) CompletionFooter(ctx context.Context, t *domain.Theme, page domain.Page, courseID, cmID int64) (Fragment, error) {
	var (
		snapshot settings.Settings
		course   *domain.Course
		modules  []domain.CourseModule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.Settings(gctx, t)
		return err
	})
	g.Go(func() error {
		var err error
		course, err = s.modules.GetCourse(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		modules, err = s.modules.ListByCourse(gctx, courseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Fragment{}, err
	}

	var cm *domain.CourseModule
	for i := range modules {
		if modules[i].ID == cmID {
			cm = &modules[i]
			break
		}
	}
	if !layout.CompletionFooterApplies(page, *course, cm) || snapshot.Bool("moodleactivitycompletion") {
		return Fragment{}, nil
	}

	data := layout.CompletionFooter{ModuleID: cm.ID, CompletionState: "tracked"}
	if next, ok := layout.NextVisibleModule(modules, cm.ID); ok {
		data.NextModName = settings.FormatValue(next.Name, settings.FormatString)
		data.NextModURL = next.URL
	}
	html, err := s.renderer.Render(render.CompletionFooter, data)
	if err != nil {
		return Fragment{}, err
	}
	s.metrics.Renders.Increment("completion_footer")
	return Fragment{HTML: html, Data: data}, nil
}

func (s *Service) urls(t *domain.Theme) layout.URLBuilder {
	return layout.URLBuilder{Base: s.fileURL, ThemeKey: t.Key}
}

func themeComponent(t *domain.Theme) string {
	return "theme_" + t.Key
}
