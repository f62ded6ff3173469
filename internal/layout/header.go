package layout

import (
	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/settings"
)

type CoverImageData struct {
	CourseID           int64  `json:"id"`
	Filename           string `json:"filename,omitempty"`
	WithGradient       bool   `json:"withGradient"`
	CoverExist         bool   `json:"coverExist"`
	DisplayAsThumbnail bool   `json:"displayAsThumbnail"`
	SeeMenu            bool   `json:"seeMenu"`
}

// Header is the theme's contribution to the course page header.
type Header struct {
	URLCoverImage  string          `json:"urlCoverImage,omitempty"`
	CoverImageData *CoverImageData `json:"coverImageData,omitempty"`
	HeadingClass   string          `json:"headingClass"`
	CatalogTitle   string          `json:"catalogTitle,omitempty"`
}

// BuildHeader picks the cover image and heading style for a page.
// coverFiles are the files of the course's cover image area, first one wins.
func BuildHeader(page domain.Page, courseID int64, coverFiles []domain.StoredFile, s settings.Settings, urls URLBuilder, canEdit bool) Header {
	var h Header
	var cover *domain.StoredFile
	if len(coverFiles) > 0 {
		cover = &coverFiles[0]
		h.URLCoverImage = urls.PluginFile(*cover)
	}

	if page.Layout == "course" || (page.Layout == "incourse" && s.Bool("displaycoverallpage")) {
		data := &CoverImageData{
			CourseID:     courseID,
			WithGradient: s.Bool("gradientcovercolor"),
			CoverExist:   cover != nil,
			SeeMenu:      canEdit,
		}
		if cover != nil {
			data.Filename = cover.FileName
			data.DisplayAsThumbnail = s.Bool("displayasthumbnail")
		}
		h.CoverImageData = data
	}

	h.HeadingClass = "h2"
	if page.Layout == "incourse" || page.Layout == "course" {
		h.HeadingClass = "h2 themecourseheader"
	}
	if page.Layout == "coursecategory" && s.Bool("enablecatalog") {
		if title, ok := s.Format("titlecatalog", settings.FormatString); ok && title != "" {
			h.CatalogTitle = title
		}
	}
	return h
}
