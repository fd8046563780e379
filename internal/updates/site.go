package updates

import "github.com/huangsam/siteagent/internal/contract"

// StaticSite is a SiteContext fixed at startup from configuration.
type StaticSite struct {
	Multisite  bool
	SiteID     int
	MainSiteID int
}

var _ contract.SiteContext = &StaticSite{} // Compile-time check

// NewStaticSite builds the site context from the validated config.
func NewStaticSite(cfg *contract.Config) *StaticSite {
	return &StaticSite{
		Multisite:  cfg.Multisite,
		SiteID:     cfg.SiteID,
		MainSiteID: cfg.MainSiteID,
	}
}

// IsPrimarySite is true for single-site installs and for the network's main site.
func (s *StaticSite) IsPrimarySite() bool {
	return !s.Multisite || s.SiteID == s.MainSiteID
}
