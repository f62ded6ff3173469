package domain

// Course holds the course fields the theme needs.
type Course struct {
	ID               int64  `json:"id"`
	CategoryID       int64  `json:"categoryId"`
	FullName         string `json:"fullName"`
	ShortName        string `json:"shortName"`
	EnableCompletion bool   `json:"enableCompletion"`
}

// CourseModule is an activity placed in a course, in course display order.
type CourseModule struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"courseId"`
	Name        string `json:"name"`
	ModName     string `json:"modName"`
	Position    int    `json:"position"`
	Visible     bool   `json:"visible"`
	UserVisible bool   `json:"userVisible"`
	Stealth     bool   `json:"stealth"`
	URL         string `json:"url,omitempty"`
	Completion  int    `json:"completion"`
}

// TracksCompletion reports whether completion tracking is enabled for the module.
func (m CourseModule) TracksCompletion() bool {
	return m.Completion > 0
}

// Page describes the page being rendered, as passed by the host platform.
type Page struct {
	Layout   string `json:"layout"`
	PageType string `json:"pageType"`
	BodyID   string `json:"bodyId"`
}
