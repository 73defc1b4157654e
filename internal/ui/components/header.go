package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Header chrome classes. The browser client swaps them as the scroll flag flips.
const (
	HeaderID            = "site-header"
	HeaderBaseClass     = "fixed top-0 left-0 right-0 z-50 transition-all duration-300"
	HeaderScrolledClass = "bg-white/90 backdrop-blur-md shadow-md py-4"
	HeaderTopClass      = "bg-transparent py-6"
)

// HeaderClass returns the full class list for the header in the given scroll state.
func HeaderClass(scrolled bool) string {
	if scrolled {
		return HeaderBaseClass + " " + HeaderScrolledClass
	}
	return HeaderBaseClass + " " + HeaderTopClass
}

// SiteHeader is the fixed navigation bar.
func SiteHeader(siteName string, scrolled bool) g.Node {
	return Nav(
		ID(HeaderID),
		Class(HeaderClass(scrolled)),
		g.Attr("data-scrolled", strconv.FormatBool(scrolled)),
		Div(
			Class("container mx-auto px-6 flex justify-between items-center"),
			A(
				Href("/"),
				Class("text-2xl font-bold bg-gradient-to-r from-orange-500 to-orange-600 bg-clip-text text-transparent"),
				g.Text(siteName),
			),
			A(
				Href("#waitlist"),
				g.Attr("data-scroll-top", "true"),
				Class("bg-gradient-to-r from-orange-500 to-orange-600 text-white px-6 py-2 rounded-full hover:shadow-lg hover:scale-105 transition-all duration-300"),
				g.Text("Join Waitlist"),
			),
		),
	)
}
