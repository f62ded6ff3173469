package layout

import "lms-theme-renderer/internal/settings"

// LoginPage is the theme data for the login form and its side panels.
type LoginPage struct {
	SiteName           string   `json:"siteName"`
	HideSiteName       bool     `json:"hideSiteName"`
	LogoURL            string   `json:"logoUrl,omitempty"`
	TextBoxTop         string   `json:"loginTextBoxTop,omitempty"`
	TextBoxBottom      string   `json:"loginTextBoxBottom,omitempty"`
	RightBlockHTML     string   `json:"rightBlockLoginHtmlContent,omitempty"`
	LeftBlockHTML      string   `json:"leftBlockLoginHtmlContent,omitempty"`
	RemovedPrimaryNavs []string `json:"removedPrimaryNavItems"`
}

func BuildLoginPage(s settings.Settings, siteName string, assets Assets) LoginPage {
	p := LoginPage{
		SiteName:           settings.FormatValue(siteName, settings.FormatString),
		HideSiteName:       s.Bool("hidesitename"),
		LogoURL:            assets.SiteLogo,
		RemovedPrimaryNavs: assets.RemovedPrimaryNavItems,
	}
	p.TextBoxTop, _ = s.Format("logintextboxtop", settings.FormatHTML)
	p.TextBoxBottom, _ = s.Format("logintextboxbottom", settings.FormatHTML)
	p.RightBlockHTML, _ = s.Format("rightblockloginhtmlcontent", settings.FormatHTML)
	p.LeftBlockHTML, _ = s.Format("leftblockloginhtmlcontent", settings.FormatHTML)
	return p
}
