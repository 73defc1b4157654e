// Package components renders the landing page as gomponents nodes.
package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
)

// PageData is everything the landing page needs for one render.
type PageData struct {
	SiteName     string
	Title        string
	Description  string
	CanonicalURL string
	Form         waitlist.FormState
	FormAction   string
	Scrolled     bool
	WASM         bool
	Year         int
}

func (d PageData) withDefaults() PageData {
	if d.SiteName == "" {
		d.SiteName = "BuddyBreak"
	}
	if d.Title == "" {
		d.Title = d.SiteName + " · Voyagez enfin avec vos amis"
	}
	if d.Description == "" {
		d.Description = "Transformez l'organisation chaotique de voyages entre amis en une expérience fluide et collaborative."
	}
	if d.Form == nil {
		d.Form = waitlist.InitialState()
	}
	if d.FormAction == "" {
		d.FormAction = "/waitlist"
	}
	return d
}

// Page is the whole landing page document.
func Page(data PageData) g.Node {
	data = data.withDefaults()
	return Layout(data,
		SiteHeader(data.SiteName, data.Scrolled),
		Main(
			Class("min-h-screen bg-white"),
			HeroSection(data.SiteName, WaitlistPanel(data.Form, data.FormAction)),
			FeaturesSection(data.SiteName),
			StepsSection(),
			CTASection(),
		),
		SiteFooter(data.SiteName, data.Year),
	)
}

// Layout wraps content in the HTML document shell.
func Layout(data PageData, content ...g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("fr"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(data.Title)),
				Meta(Name("description"), Content(data.Description)),
				Meta(g.Attr("property", "og:title"), Content(data.Title)),
				Meta(g.Attr("property", "og:description"), Content(data.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Meta(g.Attr("property", "og:image"), Content("/static/images/hero.svg")),
				g.If(data.CanonicalURL != "", Link(Rel("canonical"), Href(data.CanonicalURL))),
				Link(Rel("icon"), Href("/static/images/favicon.svg")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
				Script(Src("https://code.iconify.design/1/1.0.7/iconify.min.js")),
			),
			Body(
				Class("bg-white text-gray-900"),
				g.Group(content),
				g.If(data.WASM, g.Group([]g.Node{
					Script(Src("/static/wasm_exec.js")),
					Script(Src("/static/boot.js"), g.Attr("defer")),
				})),
			),
		),
	})
}
