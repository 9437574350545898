package config

import (
	"net/url"
	"strings"

	"github.com/nao1215/wcagaudit/internal/model"
)

// SiteConfig holds the credentials for one host.
type SiteConfig struct {
	// Username is the login name used on this host.
	Username string `yaml:"username,omitempty"`

	// Password is the login password used on this host.
	Password string `yaml:"password,omitempty"`
}

// Defaults are fallback values for command line options.
type Defaults struct {
	Inspector         string       `yaml:"inspector,omitempty"`
	Client            string       `yaml:"client,omitempty"`
	Model             string       `yaml:"model,omitempty"`
	Store             StoreBackend `yaml:"store,omitempty"`
	DataDir           string       `yaml:"dataDir,omitempty"`
	DatabaseURL       string       `yaml:"databaseURL,omitempty"`
	RequestsPerMinute *int         `yaml:"requestsPerMinute,omitempty"`
}

// File represents the structure of the .wcagaudit configuration file.
type File struct {
	// Defaults are applied to options not given on the command line.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Sites maps host names (e.g. "example.nl") to their credentials.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`
}

// GetSiteConfig returns the credentials for the host of rawURL.
// Hosts are matched case-insensitively without port; "www." is tried as a
// fallback in both directions.
func (cf *File) GetSiteConfig(rawURL string) (SiteConfig, bool) {
	host := hostOf(rawURL)
	if host == "" || len(cf.Sites) == 0 {
		return SiteConfig{}, false
	}

	candidates := []string{host}
	if trimmed, ok := strings.CutPrefix(host, "www."); ok {
		candidates = append(candidates, trimmed)
	} else {
		candidates = append(candidates, "www."+host)
	}

	for _, c := range candidates {
		for key, site := range cf.Sites {
			if strings.EqualFold(strings.TrimSpace(key), c) {
				return site, true
			}
		}
	}
	return SiteConfig{}, false
}

// ApplyCredentials returns a copy of list where targets without credentials
// get the credentials configured for their host.
func (cf *File) ApplyCredentials(list []model.Target) []model.Target {
	out := model.CloneTargets(list)
	if cf == nil {
		return out
	}
	for i, t := range out {
		if t.HasCredentials() {
			continue
		}
		if site, ok := cf.GetSiteConfig(t.URL); ok {
			out[i].Username = site.Username
			out[i].Password = site.Password
		}
	}
	return out
}

func hostOf(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
