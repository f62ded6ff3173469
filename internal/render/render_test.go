package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/layout"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestRender_HeaderDropdownNestsSubmenus(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Render(HeaderDropdown, struct {
		DropdownName string
		Items        []domain.MenuItem
	}{
		DropdownName: "Categories",
		Items: []domain.MenuItem{
			{Name: "Science & Maths", URL: "/course/index.php?categoryid=1", Submenu: []domain.MenuItem{
				{Name: "Physics", URL: "/course/index.php?categoryid=2", Submenu: []domain.MenuItem{
					{Name: "Optics", URL: "/course/index.php?categoryid=3"},
				}},
			}},
			{Name: "Arts", URL: "/course/index.php?categoryid=4"},
		},
	})
	require.NoError(t, err)

	html := string(out)
	require.Contains(t, html, ">Categories</a>")
	require.Contains(t, html, "Science &amp; Maths")
	require.Contains(t, html, `href="/course/index.php?categoryid=3"`)
	require.Equal(t, 3, strings.Count(html, `<ul class="dropdown-menu">`))
	require.Equal(t, 2, strings.Count(html, "dropdown-submenu"))
}

func TestRender_HeaderDropdownItemsAlone(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Render(HeaderDropdownItems, []domain.MenuItem{{Name: "Only", URL: "/only"}})
	require.NoError(t, err)
	require.Contains(t, string(out), `<a href="/only">Only</a>`)
	require.NotContains(t, string(out), "dropdown-submenu")
}

func TestRender_Footer(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Render(FooterCustomContent, layout.Footer{
		GridCount: 6,
		Columns: []layout.FooterColumn{
			{Text: "<p>About us</p>", ClassText: "footertext1", Heading: "<b>About</b>", ClassHeading: "footerheading1", List: []layout.Link{{Text: "About us"}}},
			{Text: "x", ClassText: "footertext2", List: []layout.Link{{Text: "Docs", URL: "/docs"}}},
		},
	})
	require.NoError(t, err)
	html := string(out)
	require.Equal(t, 2, strings.Count(html, `class="col-md-6"`))
	require.Contains(t, html, "<b>About</b>")
	require.Contains(t, html, `<a href="/docs">Docs</a>`)
}

func TestRender_BlockRegionsEditing(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Render(BlockRegions, layout.BlockRegions{
		Editing: true,
		Rows: []layout.BlockRow{
			{ID: 1, Columns: []layout.BlockColumn{{Width: 8, Region: "theme-front-a"}, {Width: 4, Region: "theme-front-b"}}},
		},
	})
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, `id="front-page-row-1"`)
	require.Contains(t, html, `class="col-md-8 block-region-editing" data-region="theme-front-a"`)
	require.Contains(t, html, `<span class="block-region-name">theme-front-b</span>`)
}

func TestRender_ActivityNavigationAndCompletion(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Render(ActivityNavigation, layout.ActivityNavigation{
		Next:         &layout.ActivityLink{URL: "/mod/page/view.php?id=2", Name: "Next one"},
		ActivityList: []layout.ActivityLink{{URL: "/mod/page/view.php?forceview=1&id=2", Name: "Next one"}},
	})
	require.NoError(t, err)
	require.Contains(t, string(out), `id="next-activity-link"`)
	require.NotContains(t, string(out), `id="prev-activity-link"`)

	out, err = r.Render(CompletionFooter, layout.CompletionFooter{ModuleID: 5, CompletionState: "tracked", NextModName: "Quiz", NextModURL: "/mod/quiz/view.php?id=6"})
	require.NoError(t, err)
	require.Contains(t, string(out), `data-cmid="5"`)
	require.Contains(t, string(out), `href="/mod/quiz/view.php?id=6"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newRenderer(t)
	_, err := r.Render("missing", nil)
	require.Error(t, err)
}
