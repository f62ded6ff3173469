package layout

import (
	"net/url"
	"strings"

	"lms-theme-renderer/internal/domain"
)

const quizAttemptBodyID = "page-mod-quiz-attempt"

// ActivityLink is one entry of the activity jump menu.
type ActivityLink struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type ActivityNavigation struct {
	Prev         *ActivityLink  `json:"prev,omitempty"`
	Next         *ActivityLink  `json:"next,omitempty"`
	ActivityList []ActivityLink `json:"activityList"`
}

// BuildActivityNavigation returns previous/next links around the current
// module. It returns false when the page should show no navigation.
func BuildActivityNavigation(page domain.Page, modules []domain.CourseModule, currentID int64) (ActivityNavigation, bool) {
	if (page.Layout != "incourse" && page.Layout != "frametop") || page.BodyID == quizAttemptBodyID {
		return ActivityNavigation{}, false
	}

	var current *domain.CourseModule
	for i := range modules {
		if modules[i].ID == currentID {
			current = &modules[i]
			break
		}
	}
	if current == nil || current.Stealth {
		return ActivityNavigation{}, false
	}

	var (
		mods     []domain.CourseModule
		position = -1
		list     = []ActivityLink{}
	)
	for _, m := range modules {
		if !m.UserVisible || m.Stealth || m.URL == "" {
			continue
		}
		if m.ID == currentID {
			position = len(mods)
			mods = append(mods, m)
			continue
		}
		mods = append(mods, m)

		name := m.Name
		if !m.Visible {
			name += " (hidden)"
		}
		list = append(list, ActivityLink{URL: forceViewURL(m.URL), Name: name})
	}

	if len(mods) <= 1 || position < 0 {
		return ActivityNavigation{}, false
	}

	nav := ActivityNavigation{ActivityList: list}
	if position > 0 {
		nav.Prev = moduleLink(mods[position-1])
	}
	if position < len(mods)-1 {
		nav.Next = moduleLink(mods[position+1])
	}
	return nav, true
}

// NextVisibleModule returns the first module after currentID the user can see.
func NextVisibleModule(modules []domain.CourseModule, currentID int64) (domain.CourseModule, bool) {
	found := false
	for _, m := range modules {
		if !found {
			found = m.ID == currentID
			continue
		}
		if m.UserVisible {
			return m, true
		}
	}
	return domain.CourseModule{}, false
}

// CompletionFooterApplies reports whether the completion footer belongs on the page.
// Only module view pages (pagetype "mod-<name>-<page>", not index pages) qualify.
func CompletionFooterApplies(page domain.Page, course domain.Course, cm *domain.CourseModule) bool {
	if !course.EnableCompletion || cm == nil || !cm.TracksCompletion() {
		return false
	}
	if page.Layout == "admin" || page.PageType == "course-editsection" || page.BodyID == quizAttemptBodyID {
		return false
	}
	parts := strings.Split(page.PageType, "-")
	if parts[0] != "mod" {
		return false
	}
	if len(parts) > 2 && parts[2] == "index" {
		return false
	}
	return true
}

func moduleLink(m domain.CourseModule) *ActivityLink {
	return &ActivityLink{URL: m.URL, Name: m.Name}
}

func forceViewURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("forceview", "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// CompletionFooter is the data of the footer shown on tracked module pages.
type CompletionFooter struct {
	ModuleID        int64  `json:"moduleId"`
	CompletionState string `json:"completionState"`
	NextModName     string `json:"nextModName,omitempty"`
	NextModURL      string `json:"nextModUrl,omitempty"`
}
