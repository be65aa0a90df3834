package domain

import "net/url"

// Tab describes a single browser tab discovered over the DevTools
// protocol. Tabs are replaced wholesale on every refresh; there is no
// incremental diffing of individual fields.
type Tab struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	HasSelector bool   `json:"has_selector"`
}

// ExtractDomain returns the host part of a URL, or an empty string if
// the URL does not parse.
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
