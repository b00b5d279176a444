package dash

import (
	"strings"
	"testing"
)

func TestParseFooterLinks(t *testing.T) {
	html := `<footer>
		<nav>
			<a href="/panel" class="nav-link">Panel</a>
			<a href='/devices'>Devices</a>
			<a href="https://support.nubitek.example">Support <span>portal</span></a>
		</nav>
	</footer>`

	links := parseFooterLinks(html)
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d: %+v", len(links), links)
	}

	if links[0].Label != "Panel" || links[0].Href != "/panel" {
		t.Errorf("unexpected first link: %+v", links[0])
	}
	if links[1].Label != "Devices" || links[1].Href != "/devices" {
		t.Errorf("unexpected second link: %+v", links[1])
	}
	// Nested markup stripped, whitespace collapsed.
	if links[2].Label != "Support portal" || links[2].Href != "https://support.nubitek.example" {
		t.Errorf("unexpected third link: %+v", links[2])
	}
}

func TestParseFooterLinks_SkipsEmptyAnchors(t *testing.T) {
	html := `<a href="">no href</a><a href="/x"><img src="icon.png"></a><a href="/ok">OK</a>`
	links := parseFooterLinks(html)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d: %+v", len(links), links)
	}
	if links[0].Label != "OK" {
		t.Errorf("unexpected link: %+v", links[0])
	}
}

func TestParseFooterLinks_NoAnchors(t *testing.T) {
	if links := parseFooterLinks("<footer><p>plain text</p></footer>"); len(links) != 0 {
		t.Errorf("expected no links, got %+v", links)
	}
}

func TestFallbackFooterLinks(t *testing.T) {
	links := fallbackFooterLinks()
	if len(links) != 3 {
		t.Fatalf("expected 3 fallback links, got %d", len(links))
	}
	wantLabels := []string{"Panel", "Devices", "Support"}
	for i, want := range wantLabels {
		if links[i].Label != want {
			t.Errorf("expected fallback label %q, got %q", want, links[i].Label)
		}
	}
}

func TestRenderFooterLinks_ResolvesRelativeHrefs(t *testing.T) {
	links := []FooterLink{{Label: "Panel", Href: "/panel"}}
	out := renderFooterLinks(links, "http://gw.local:5000")

	if !strings.Contains(out, "http://gw.local:5000/panel") {
		t.Errorf("expected resolved URL in OSC 8 sequence, got %q", out)
	}
	if !strings.Contains(out, "Panel") {
		t.Errorf("expected label in output, got %q", out)
	}
}

func TestRenderFooterLinks_Empty(t *testing.T) {
	if out := renderFooterLinks(nil, "http://gw.local"); out != "" {
		t.Errorf("expected empty output for no links, got %q", out)
	}
}
