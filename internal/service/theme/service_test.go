package theme

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"lms-theme-renderer/internal/cache"
	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/layout"
	"lms-theme-renderer/internal/render"
)

type stubStore struct {
	mu           sync.Mutex
	settings     map[string]string
	settingsErr  error
	settingsHits int
	files        []domain.StoredFile
	upserts      map[string]string
}

func (s *stubStore) Settings(_ context.Context, _ string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settingsHits++
	return s.settings, s.settingsErr
}

func (s *stubStore) UpsertSetting(_ context.Context, _, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upserts == nil {
		s.upserts = map[string]string{}
	}
	s.upserts[name] = value
	return nil
}

func (s *stubStore) AreaFiles(_ context.Context, _ int64, _, _ string) ([]domain.StoredFile, error) {
	return s.files, nil
}

type stubTree struct {
	roots []*domain.Category
	err   error
}

func (s *stubTree) Tree(_ context.Context) ([]*domain.Category, error) {
	return s.roots, s.err
}

type stubModules struct {
	course  *domain.Course
	modules []domain.CourseModule
}

func (s *stubModules) GetCourse(_ context.Context, _ int64) (*domain.Course, error) {
	if s.course == nil {
		return nil, domain.ErrNotFound
	}
	return s.course, nil
}

func (s *stubModules) ListByCourse(_ context.Context, _ int64) ([]domain.CourseModule, error) {
	return s.modules, nil
}

type memoryCache struct {
	mu          sync.Mutex
	values      map[string]map[string]string
	invalidated []string
}

func (m *memoryCache) Settings(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *memoryCache) StoreSettings(_ context.Context, key string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]map[string]string{}
	}
	m.values[key] = values
	return nil
}

func (m *memoryCache) InvalidateSettings(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.invalidated = append(m.invalidated, key)
	return nil
}

var testTheme = &domain.Theme{ID: "theme-id", Key: "classic"}

func parent(id int64) *int64 { return &id }

func categoryForest() []*domain.Category {
	b := &domain.Category{ID: 2, ParentID: parent(1), Name: "B", URL: "/c/2", Visible: false}
	c := &domain.Category{ID: 3, ParentID: parent(1), Name: "C", URL: "/c/3", Visible: true}
	a := &domain.Category{ID: 1, Name: "A", URL: "/c/1", Visible: true, Children: []*domain.Category{b, c}}
	d := &domain.Category{ID: 4, Name: "D", URL: "/c/4", Visible: false}
	return []*domain.Category{a, d}
}

func newService(t *testing.T, store *stubStore, tree CategoryTree, mods ModuleStore, c SettingsCache) *Service {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	return New(Deps{
		Store:      store,
		Categories: tree,
		Modules:    mods,
		Cache:      c,
		Renderer:   r,
		FileURL:    "https://files.example.org",
		SiteName:   "Academy",
	})
}

func TestHeaderCategories_ExcludeHidden(t *testing.T) {
	store := &stubStore{settings: map[string]string{"menuheadercateg": "excludehidden"}}
	svc := newService(t, store, &stubTree{roots: categoryForest()}, &stubModules{}, nil)

	frag, err := svc.HeaderCategories(context.Background(), testTheme)
	require.NoError(t, err)
	require.Equal(t, []domain.MenuItem{
		{Name: "A", URL: "/c/1", Submenu: []domain.MenuItem{{Name: "C", URL: "/c/3"}}},
	}, frag.Data)
	require.Contains(t, string(frag.HTML), `<a href="/c/3">C</a>`)
	require.NotContains(t, string(frag.HTML), ">D<")
}

func TestHeaderCategories_DisabledByDefault(t *testing.T) {
	svc := newService(t, &stubStore{}, &stubTree{roots: categoryForest()}, &stubModules{}, nil)

	frag, err := svc.HeaderCategories(context.Background(), testTheme)
	require.NoError(t, err)
	require.Empty(t, frag.HTML)
	require.Equal(t, []domain.MenuItem{}, frag.Data)
}

func TestHeaderCategories_CorruptTreeRendersNothing(t *testing.T) {
	a := &domain.Category{ID: 1, Name: "A", Visible: true}
	a.Children = []*domain.Category{{ID: 1, ParentID: parent(1), Name: "A again", Visible: true}}
	store := &stubStore{settings: map[string]string{"menuheadercateg": "all"}}
	svc := newService(t, store, &stubTree{roots: []*domain.Category{a}}, &stubModules{}, nil)

	frag, err := svc.HeaderCategories(context.Background(), testTheme)
	require.NoError(t, err)
	require.Empty(t, frag.HTML)
}

func TestHeaderCategories_TreeError(t *testing.T) {
	store := &stubStore{settings: map[string]string{"menuheadercateg": "all"}}
	svc := newService(t, store, &stubTree{err: errors.New("db down")}, &stubModules{}, nil)

	_, err := svc.HeaderCategories(context.Background(), testTheme)
	require.Error(t, err)
}

func TestSettings_CachedAfterFirstLoad(t *testing.T) {
	store := &stubStore{settings: map[string]string{"googlefont": "Lato"}}
	mc := &memoryCache{}
	svc := newService(t, store, &stubTree{}, &stubModules{}, mc)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s, err := svc.Settings(ctx, testTheme)
		require.NoError(t, err)
		require.Equal(t, "Lato", s.Get("googlefont"))
	}
	require.Equal(t, 1, store.settingsHits)

	require.NoError(t, svc.UpdateSetting(ctx, testTheme, "googlefont", "Inter"))
	require.Equal(t, []string{"classic"}, mc.invalidated)
	require.Equal(t, "Inter", store.upserts["googlefont"])

	_, err := svc.Settings(ctx, testTheme)
	require.NoError(t, err)
	require.Equal(t, 2, store.settingsHits)
}

func TestUpdateSetting_RejectsEmptyName(t *testing.T) {
	svc := newService(t, &stubStore{}, &stubTree{}, &stubModules{}, nil)
	err := svc.UpdateSetting(context.Background(), testTheme, "", "x")
	require.ErrorIs(t, err, domain.ErrInvalidSetting)
}

func TestFooterAndBlocks(t *testing.T) {
	store := &stubStore{settings: map[string]string{
		"footertext1": "Help|/help",
		"blockrow1":   "4-8-0-0",
	}}
	svc := newService(t, store, &stubTree{}, &stubModules{}, nil)
	ctx := context.Background()

	footer, err := svc.Footer(ctx, testTheme, "en")
	require.NoError(t, err)
	require.Equal(t, 12, footer.Data.(layout.Footer).GridCount)
	require.Contains(t, string(footer.HTML), `<a href="/help">Help</a>`)

	blocks, err := svc.BlockRegions(ctx, testTheme, false)
	require.NoError(t, err)
	require.Equal(t, []string{"theme-front-a", "theme-front-b"}, blocks.Data.(layout.BlockRegions).RegionNames())
}

func TestAssetsAndLogin(t *testing.T) {
	store := &stubStore{settings: map[string]string{"favicon": "/fav.png", "logintextboxtop": "<p>Hi</p>"}}
	svc := newService(t, store, &stubTree{}, &stubModules{}, nil)
	ctx := context.Background()

	assets, err := svc.Assets(ctx, testTheme)
	require.NoError(t, err)
	require.Equal(t, "https://files.example.org/pluginfile.php/1/theme_classic/favicon/0/fav.png", assets.Favicon)
	require.Equal(t, "Verdana", assets.GoogleFont)
	require.True(t, assets.ShowActivityNavigation, "default settings show activity navigation")

	login, err := svc.LoginPage(ctx, testTheme)
	require.NoError(t, err)
	require.Equal(t, "Academy", login.SiteName)
	require.Equal(t, "<p>Hi</p>", login.TextBoxTop)
}

func TestHeader_UsesCoverFiles(t *testing.T) {
	store := &stubStore{files: []domain.StoredFile{{ContextID: 9, Component: "theme_classic", FileArea: "coverimage", FilePath: "/", FileName: "c.png"}}}
	svc := newService(t, store, &stubTree{}, &stubModules{}, nil)

	h, err := svc.Header(context.Background(), testTheme, domain.Page{Layout: "course"}, 9, false)
	require.NoError(t, err)
	require.Equal(t, "https://files.example.org/pluginfile.php/9/theme_classic/coverimage/0/c.png", h.URLCoverImage)
	require.True(t, h.CoverImageData.CoverExist)
}

func modulesFixture() *stubModules {
	return &stubModules{
		course: &domain.Course{ID: 1, EnableCompletion: true},
		modules: []domain.CourseModule{
			{ID: 10, Name: "Intro", URL: "/mod/page/view.php?id=10", Visible: true, UserVisible: true, Completion: 1},
			{ID: 11, Name: "Quiz", URL: "/mod/quiz/view.php?id=11", Visible: true, UserVisible: true},
		},
	}
}

func TestActivityNavigation(t *testing.T) {
	store := &stubStore{settings: map[string]string{"showactivitynavigation": "1"}}
	svc := newService(t, store, &stubTree{}, modulesFixture(), nil)

	frag, err := svc.ActivityNavigation(context.Background(), testTheme, domain.Page{Layout: "incourse"}, 1, 10)
	require.NoError(t, err)
	nav := frag.Data.(layout.ActivityNavigation)
	require.Nil(t, nav.Prev)
	require.Equal(t, "Quiz", nav.Next.Name)

	store.settings = map[string]string{"showactivitynavigation": "0"}
	frag, err = svc.ActivityNavigation(context.Background(), testTheme, domain.Page{Layout: "incourse"}, 1, 10)
	require.NoError(t, err)
	require.Empty(t, frag.HTML)
}

func TestCompletionFooter(t *testing.T) {
	store := &stubStore{}
	svc := newService(t, store, &stubTree{}, modulesFixture(), nil)
	page := domain.Page{Layout: "incourse", PageType: "mod-page-view"}

	frag, err := svc.CompletionFooter(context.Background(), testTheme, page, 1, 10)
	require.NoError(t, err)
	data := frag.Data.(layout.CompletionFooter)
	require.Equal(t, "Quiz", data.NextModName)
	require.Contains(t, string(frag.HTML), `href="/mod/quiz/view.php?id=11"`)

	frag, err = svc.CompletionFooter(context.Background(), testTheme, page, 1, 11)
	require.NoError(t, err)
	require.Empty(t, frag.HTML, "module without completion tracking")

	store.settings = map[string]string{"moodleactivitycompletion": "1"}
	frag, err = svc.CompletionFooter(context.Background(), testTheme, page, 1, 10)
	require.NoError(t, err)
	require.Empty(t, frag.HTML, "platform completion display takes over")
}

func TestCompletionFooter_MissingCourse(t *testing.T) {
	svc := newService(t, &stubStore{}, &stubTree{}, &stubModules{}, nil)
	_, err := svc.CompletionFooter(context.Background(), testTheme, domain.Page{}, 1, 10)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
