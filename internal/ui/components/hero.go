package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HeroSection holds the headline and the waitlist panel.
func HeroSection(siteName string, panel g.Node) g.Node {
	return Section(
		ID("waitlist"),
		Class("relative pt-32 pb-24 bg-gradient-to-br from-orange-50 via-white to-orange-100 overflow-hidden"),
		Div(Class("absolute top-20 -left-20 w-72 h-72 bg-orange-200 rounded-full blur-3xl opacity-30")),
		Div(Class("absolute bottom-10 right-0 w-96 h-96 bg-orange-300 rounded-full blur-3xl opacity-20")),
		Div(
			Class("container mx-auto px-6 relative"),
			Div(
				Class("grid md:grid-cols-2 gap-12 items-center"),
				Div(
					Class("space-y-8"),
					H1(
						Class("text-4xl md:text-6xl font-bold text-gray-900 leading-tight"),
						g.Text("Du rêve à la réalité : "),
						Span(Class("text-orange-500"), g.Text("Voyagez enfin")),
						g.Text(" avec vos amis !"),
					),
					P(
						Class("text-xl text-gray-600"),
						g.Text("Transformez l'organisation chaotique de voyages entre amis en une expérience fluide et collaborative."),
					),
					Div(
						Class("relative bg-white/70 backdrop-blur-lg rounded-2xl shadow-2xl p-8 border border-orange-100"),
						Div(
							Class("flex items-center space-x-3 mb-6"),
							Icon("lucide--piggy-bank w-6 h-6 text-orange-500", ""),
							P(Class("text-sm font-medium text-orange-600"), g.Text("Accès premium offert aux premiers inscrits")),
						),
						panel,
					),
				),
				Div(
					Class("relative hidden md:block"),
					Img(
						Src("/static/images/hero.svg"),
						Alt("Organisation de voyage entre amis avec "+siteName),
						Width("500"),
						Height("400"),
						Class("relative rounded-2xl shadow-2xl"),
					),
				),
			),
		),
	)
}
