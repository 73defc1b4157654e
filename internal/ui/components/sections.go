package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type Feature struct {
	Icon   string
	Figure string
	Label  string
	Detail string
}

type tripStep struct {
	Title  string
	Detail string
}

var features = []Feature{
	{"lucide--users", "85%", "de voyages concrétisés", "Notre processus démocratique garantit l'engagement de chacun"},
	{"lucide--piggy-bank", "30%", "d'économies en moyenne", "Bons plans exclusifs et tarifs négociés pour les étudiants"},
	{"lucide--plane", "2000+", "voyages planifiés", "Rejoignez la communauté BuddyBreak en pleine croissance"},
}

var steps = []tripStep{
	{"Créer un voyage", "Invitez vos amis et proposez vos idées de destinations"},
	{"Votez ensemble", "Dates, destination, activités... Chaque voix compte !"},
	{"Réservez facilement", "Bénéficiez de nos bons plans exclusifs étudiants"},
	{"Profitez", "Créez des souvenirs inoubliables avec vos amis"},
}

func FeaturesSection(siteName string) g.Node {
	return Section(
		ID("features"),
		Class("py-24 relative bg-white"),
		H2(
			Class("text-3xl md:text-4xl font-bold text-center mb-16"),
			g.Text("Pourquoi choisir "+siteName+" ?"),
		),
		Div(
			Class("container mx-auto px-6 grid md:grid-cols-3 gap-8"),
			g.Group(g.Map(features, func(f Feature) g.Node {
				return Div(
					Class("group bg-gradient-to-br from-orange-50 to-white rounded-xl shadow-xl p-8 border border-orange-100 hover:shadow-2xl transition-all duration-500 transform hover:scale-105 text-center"),
					Div(
						Class("bg-white w-16 h-16 rounded-full flex items-center justify-center mb-6 shadow-lg mx-auto"),
						Icon(f.Icon+" w-8 h-8 text-orange-500", ""),
					),
					H3(Class("text-4xl font-bold text-orange-500 mb-2"), g.Text(f.Figure)),
					P(Class("text-lg font-semibold text-gray-800 mb-2"), g.Text(f.Label)),
					P(Class("text-gray-600"), g.Text(f.Detail)),
				)
			})),
		),
	)
}

func StepsSection() g.Node {
	return Section(
		ID("steps"),
		Class("py-24 relative bg-gradient-to-b from-orange-50 to-white"),
		Div(
			Class("container mx-auto px-6"),
			Div(
				Class("text-center mb-16"),
				H2(Class("text-3xl md:text-4xl font-bold mb-4"), g.Text("Comment ça marche ?")),
				P(Class("text-xl text-gray-600"), g.Text("Un processus simple et intuitif pour concrétiser vos voyages entre amis")),
			),
			Div(
				Class("grid md:grid-cols-4 gap-8"),
				g.Group(stepNodes()),
			),
		),
	)
}

func stepNodes() []g.Node {
	nodes := make([]g.Node, 0, len(steps))
	for i, s := range steps {
		nodes = append(nodes, Div(
			Class("relative text-center"),
			Div(
				Class("w-12 h-12 mx-auto mb-6 rounded-full bg-gradient-to-r from-orange-500 to-orange-600 text-white text-xl font-bold flex items-center justify-center shadow-lg"),
				g.Text(strconv.Itoa(i+1)),
			),
			H3(Class("text-xl font-semibold mb-2"), g.Text(s.Title)),
			P(Class("text-gray-600"), g.Text(s.Detail)),
		))
	}
	return nodes
}

func CTASection() g.Node {
	return Section(
		ID("cta"),
		Class("py-24 relative overflow-hidden"),
		Div(Class("absolute inset-0 bg-gradient-to-r from-orange-400 to-orange-600")),
		Div(
			Class("container mx-auto px-6 relative text-center text-white"),
			H2(Class("text-3xl md:text-4xl font-bold mb-8"), g.Text("Prêt à révolutionner vos voyages entre amis ?")),
			A(
				Href("#waitlist"),
				g.Attr("data-scroll-top", "true"),
				Class("group bg-white text-orange-500 px-8 py-4 rounded-xl font-semibold hover:bg-gray-50 transition-all duration-300 inline-flex items-center space-x-3 shadow-xl"),
				Span(g.Text("Rejoindre la liste d'attente")),
				Icon("lucide--arrow-right w-5 h-5", ""),
			),
			Div(
				Class("mt-8 flex items-center justify-center space-x-4 text-orange-50"),
				Counter("lucide--users", "2000+ en attente"),
				Div(Class("w-1 h-1 bg-orange-200 rounded-full")),
				Counter("lucide--clock", "Lancement prochain"),
			),
		),
	)
}

func SiteFooter(siteName string, year int) g.Node {
	return Footer(
		Class("py-8 bg-white border-t border-orange-100 text-center text-sm text-gray-500"),
		g.Text("© "+strconv.Itoa(year)+" "+siteName),
	)
}
