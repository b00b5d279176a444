package dash

import (
	"regexp"
	"strings"

	"gitlab.com/nubitek/gatepulse/widgets"
)

// FooterLink is a navigation link lifted from the gateway's footer
// partial.
type FooterLink struct {
	Label string
	Href  string
}

var (
	footerAnchorRE = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a>`)
	footerTagRE    = regexp.MustCompile(`(?s)<[^>]*>`)
	footerSpaceRE  = regexp.MustCompile(`\s+`)
)

// parseFooterLinks extracts anchor tags from the footer partial. Markup
// nested inside an anchor is stripped from its label. Anchors with an
// empty label or href are dropped.
func parseFooterLinks(html string) []FooterLink {
	matches := footerAnchorRE.FindAllStringSubmatch(html, -1)
	links := make([]FooterLink, 0, len(matches))
	for _, m := range matches {
		href := strings.TrimSpace(m[1])
		label := footerTagRE.ReplaceAllString(m[2], "")
		label = strings.TrimSpace(footerSpaceRE.ReplaceAllString(label, " "))
		if href == "" || label == "" {
			continue
		}
		links = append(links, FooterLink{Label: label, Href: href})
	}
	return links
}

// fallbackFooterLinks returns the static navigation set used whenever the
// footer partial cannot be fetched or yields no anchors.
func fallbackFooterLinks() []FooterLink {
	return []FooterLink{
		{Label: "Panel", Href: "/panel"},
		{Label: "Devices", Href: "/devices"},
		{Label: "Support", Href: "/support"},
	}
}

// renderFooterLinks renders the navigation line. Relative hrefs are
// resolved against the gateway base URL so terminal hyperlinks point at
// the right host.
func renderFooterLinks(links []FooterLink, baseURL string) string {
	if len(links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		url := l.Href
		if strings.HasPrefix(url, "/") {
			url = strings.TrimRight(baseURL, "/") + url
		}
		parts = append(parts, widgets.RenderHyperlink(url, l.Label))
	}
	return strings.Join(parts, styleMuted.Render(" · "))
}
