package cli

import (
	"net/url"
	"strings"
)

type Page string

const (
	PageDashboard Page = "dashboard"
	PageAnalytics Page = "analytics"
	PageShared    Page = "shared"
)

// Route is a client-side location. Token is set only for PageShared.
type Route struct {
	Page  Page
	Token string
}

func (r Route) Path() string {
	switch r.Page {
	case PageAnalytics:
		return "/analytics"
	case PageShared:
		return "/shared/" + url.PathEscape(r.Token)
	default:
		return "/"
	}
}

// ParseRoute maps "/", "/analytics" and "/shared/:token" to a Route. A full
// share link is accepted as well; only its path is used.
func ParseRoute(s string) (Route, bool) {
	s = strings.TrimSpace(s)
	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		s = u.EscapedPath()
	}
	if s == "" {
		s = "/"
	}
	if len(s) > 1 {
		s = strings.TrimRight(s, "/")
	}

	switch {
	case s == "/":
		return Route{Page: PageDashboard}, true
	case s == "/analytics":
		return Route{Page: PageAnalytics}, true
	case strings.HasPrefix(s, "/shared/"):
		raw := strings.TrimPrefix(s, "/shared/")
		if raw == "" || strings.Contains(raw, "/") {
			return Route{}, false
		}
		token, err := url.PathUnescape(raw)
		if err != nil || token == "" {
			return Route{}, false
		}
		return Route{Page: PageShared, Token: token}, true
	}
	return Route{}, false
}
