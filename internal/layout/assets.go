package layout

import (
	"fmt"
	"strings"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/settings"
)

const (
	defaultGoogleFont = "Verdana"
	systemContextID   = 1
)

// Assets carries the theme-wide values used by every page layout.
type Assets struct {
	SiteLogo               string   `json:"siteLogo,omitempty"`
	NavbarPicture          string   `json:"navbarPicture,omitempty"`
	Favicon                string   `json:"favicon"`
	GoogleFont             string   `json:"googleFont"`
	CarouselEnabled        bool     `json:"carouselEnabled"`
	ShowActivityNavigation bool     `json:"showActivityNavigation"`
	RemovedPrimaryNavItems []string `json:"removedPrimaryNavItems"`
}

// URLBuilder produces file URLs relative to the platform's file host.
type URLBuilder struct {
	Base     string
	ThemeKey string
}

// SettingFile returns the URL of a file uploaded through a theme setting.
// Stored setting values are file paths such as "/logo.png".
func (b URLBuilder) SettingFile(s settings.Settings, setting string) string {
	if s.Empty(setting) {
		return ""
	}
	path := s.Get(setting)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s/pluginfile.php/%d/theme_%s/%s/0%s", b.Base, systemContextID, b.ThemeKey, setting, path)
}

// PluginFile returns the URL serving a stored file.
func (b URLBuilder) PluginFile(f domain.StoredFile) string {
	path := f.FilePath
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s/pluginfile.php/%d/%s/%s/%d%s%s", b.Base, f.ContextID, f.Component, f.FileArea, f.ItemID, path, f.FileName)
}

// BuildAssets collects logo, favicon and font values with their fallbacks.
func BuildAssets(s settings.Settings, urls URLBuilder) Assets {
	a := Assets{
		SiteLogo:               urls.SettingFile(s, "sitelogo"),
		NavbarPicture:          urls.SettingFile(s, "navbarpicture"),
		Favicon:                urls.SettingFile(s, "favicon"),
		GoogleFont:             defaultGoogleFont,
		CarouselEnabled:        s.Get("enablecarousel") == "1",
		ShowActivityNavigation: s.Bool("showactivitynavigation"),
		RemovedPrimaryNavItems: []string{},
	}
	if a.Favicon == "" {
		a.Favicon = urls.Base + "/favicon.ico"
	}
	if font := strings.TrimSpace(s.Get("googlefont")); font != "" {
		a.GoogleFont = font
	}
	for _, item := range s.CSV("removedprimarynavitems") {
		if item = strings.TrimSpace(item); item != "" {
			a.RemovedPrimaryNavItems = append(a.RemovedPrimaryNavItems, item)
		}
	}
	return a
}
