package models

// SocialNetwork names a supported social link
type SocialNetwork string

const (
	SocialFacebook  SocialNetwork = "Facebook"
	SocialTwitter   SocialNetwork = "Twitter"
	SocialInstagram SocialNetwork = "Instagram"
	SocialYouTube   SocialNetwork = "YouTube"
	SocialLinkedIn  SocialNetwork = "LinkedIn"
)

// ValidSocialNetworks defines allowed social link names
var ValidSocialNetworks = map[SocialNetwork]bool{
	SocialFacebook:  true,
	SocialTwitter:   true,
	SocialInstagram: true,
	SocialYouTube:   true,
	SocialLinkedIn:  true,
}

// SocialLink is a header link to a social profile
type SocialLink struct {
	ID   int64         `json:"id"`
	Name SocialNetwork `json:"name"`
	URL  string        `json:"url"`
}

// GeneralSettings holds site identity
type GeneralSettings struct {
	SiteTitle string `json:"siteTitle"`
	Tagline   string `json:"tagline"`
	LogoURL   string `json:"logoUrl"`
}

// HeaderSettings holds the top bar and social links
type HeaderSettings struct {
	ShowTopBar  bool         `json:"showTopBar"`
	AwardText   string       `json:"awardText"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

// FooterSettings holds the footer copy; {year} is substituted on render
type FooterSettings struct {
	CopyrightText string `json:"copyrightText"`
}

// HomepageSettings holds the window sizes of the homepage layout
type HomepageSettings struct {
	SliderArticlesCount   int `json:"sliderArticlesCount"`
	TrendingArticlesCount int `json:"trendingArticlesCount"`
	LatestArticlesCount   int `json:"latestArticlesCount"`
}

// StylingSettings holds brand colours
type StylingSettings struct {
	PrimaryColor  string `json:"primaryColor"`
	BreakingColor string `json:"breakingColor"`
}

// ThemeSettings is the admin-editable site configuration.
// Every group is always fully populated.
type ThemeSettings struct {
	General  GeneralSettings  `json:"general"`
	Header   HeaderSettings   `json:"header"`
	Footer   FooterSettings   `json:"footer"`
	Homepage HomepageSettings `json:"homepage"`
	Styling  StylingSettings  `json:"styling"`
}

// DefaultThemeSettings returns the factory configuration
func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{
		General: GeneralSettings{
			SiteTitle: "Wamuzi News KE",
			Tagline:   "Your Trusted Source for News",
			LogoURL:   "",
		},
		Header: HeaderSettings{
			ShowTopBar: true,
			AwardText:  "Digitally Fit Awards Gold Winner 2023",
			SocialLinks: []SocialLink{
				{ID: 1, Name: SocialFacebook, URL: "#"},
				{ID: 2, Name: SocialTwitter, URL: "#"},
				{ID: 3, Name: SocialInstagram, URL: "#"},
				{ID: 4, Name: SocialYouTube, URL: "#"},
			},
		},
		Footer: FooterSettings{
			CopyrightText: "© {year} Wamuzi News KE. All Rights Reserved.",
		},
		Homepage: HomepageSettings{
			SliderArticlesCount:   4,
			TrendingArticlesCount: 5,
			LatestArticlesCount:   5,
		},
		Styling: StylingSettings{
			PrimaryColor:  "#0052CC",
			BreakingColor: "#EF4444",
		},
	}
}

// Partial updates. A nil group or nil field leaves the current value alone.

// GeneralPatch overrides fields of GeneralSettings
type GeneralPatch struct {
	SiteTitle *string `json:"siteTitle,omitempty"`
	Tagline   *string `json:"tagline,omitempty"`
	LogoURL   *string `json:"logoUrl,omitempty"`
}

// HeaderPatch overrides fields of HeaderSettings
type HeaderPatch struct {
	ShowTopBar  *bool         `json:"showTopBar,omitempty"`
	AwardText   *string       `json:"awardText,omitempty"`
	SocialLinks *[]SocialLink `json:"socialLinks,omitempty"`
}

// FooterPatch overrides fields of FooterSettings
type FooterPatch struct {
	CopyrightText *string `json:"copyrightText,omitempty"`
}

// HomepagePatch overrides fields of HomepageSettings
type HomepagePatch struct {
	SliderArticlesCount   *int `json:"sliderArticlesCount,omitempty"`
	TrendingArticlesCount *int `json:"trendingArticlesCount,omitempty"`
	LatestArticlesCount   *int `json:"latestArticlesCount,omitempty"`
}

// StylingPatch overrides fields of StylingSettings
type StylingPatch struct {
	PrimaryColor  *string `json:"primaryColor,omitempty"`
	BreakingColor *string `json:"breakingColor,omitempty"`
}

// ThemeSettingsPatch is a partial update of ThemeSettings
type ThemeSettingsPatch struct {
	General  *GeneralPatch  `json:"general,omitempty"`
	Header   *HeaderPatch   `json:"header,omitempty"`
	Footer   *FooterPatch   `json:"footer,omitempty"`
	Homepage *HomepagePatch `json:"homepage,omitempty"`
	Styling  *StylingPatch  `json:"styling,omitempty"`
}

// Apply merges patch into a copy of s, group by group and field by field.
// Applying the same patch twice yields the same result as applying it once.
func (s ThemeSettings) Apply(patch ThemeSettingsPatch) ThemeSettings {
	out := s
	out.Header.SocialLinks = cloneLinks(s.Header.SocialLinks)

	if p := patch.General; p != nil {
		setString(&out.General.SiteTitle, p.SiteTitle)
		setString(&out.General.Tagline, p.Tagline)
		setString(&out.General.LogoURL, p.LogoURL)
	}
	if p := patch.Header; p != nil {
		if p.ShowTopBar != nil {
			out.Header.ShowTopBar = *p.ShowTopBar
		}
		setString(&out.Header.AwardText, p.AwardText)
		if p.SocialLinks != nil {
			out.Header.SocialLinks = cloneLinks(*p.SocialLinks)
		}
	}
	if p := patch.Footer; p != nil {
		setString(&out.Footer.CopyrightText, p.CopyrightText)
	}
	if p := patch.Homepage; p != nil {
		setInt(&out.Homepage.SliderArticlesCount, p.SliderArticlesCount)
		setInt(&out.Homepage.TrendingArticlesCount, p.TrendingArticlesCount)
		setInt(&out.Homepage.LatestArticlesCount, p.LatestArticlesCount)
	}
	if p := patch.Styling; p != nil {
		setString(&out.Styling.PrimaryColor, p.PrimaryColor)
		setString(&out.Styling.BreakingColor, p.BreakingColor)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func cloneLinks(links []SocialLink) []SocialLink {
	out := make([]SocialLink, len(links))
	copy(out, links)
	return out
}

// Clone returns a deep copy of s
func (s ThemeSettings) Clone() ThemeSettings {
	return s.Apply(ThemeSettingsPatch{})
}
