package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
)

// DOM ids the browser client binds to.
const (
	WaitlistPanelID = "waitlist-panel"
	WaitlistFormID  = "waitlist-form"
	EmailInputID    = "email"
)

// Confirmation copy.
const (
	ConfirmationTitle       = "Merci de votre inscription !"
	ConfirmationDescription = "Nous vous contacterons dès que BuddyBreak sera disponible."
	DuplicateDescription    = "Vous êtes déjà sur la liste : nous vous contacterons dès que BuddyBreak sera disponible."
)

// WaitlistPanel renders the form while editing and the acknowledgment once submitted.
func WaitlistPanel(state waitlist.FormState, action string) g.Node {
	var body g.Node
	stateName := "editing"
	switch s := state.(type) {
	case waitlist.Submitted:
		stateName = "submitted"
		desc := ConfirmationDescription
		if s.AlreadyRegistered {
			desc = DuplicateDescription
		}
		body = Confirmation(ConfirmationTitle, desc)
	case waitlist.Editing:
		body = WaitlistForm(s, action)
	default:
		body = WaitlistForm(waitlist.Editing{}, action)
	}
	return Div(
		ID(WaitlistPanelID),
		g.Attr("data-state", stateName),
		body,
	)
}

// WaitlistForm is the email capture form.
func WaitlistForm(state waitlist.Editing, action string) g.Node {
	return Form(
		ID(WaitlistFormID),
		Action(action),
		Method("post"),
		Class("space-y-5 relative"),
		Div(
			Class("space-y-2.5"),
			Label(
				g.Attr("for", EmailInputID),
				Class("block text-sm font-medium text-gray-700"),
				g.Text("Rejoignez la liste d'attente"),
			),
			Div(
				Class("relative group"),
				Div(
					Class("absolute left-4 top-1/2 -translate-y-1/2 text-gray-400 group-hover:text-orange-500 transition-colors"),
					Icon("lucide--mail h-5 w-5", ""),
				),
				Input(
					ID(EmailInputID),
					Name("email"),
					Type("email"),
					Value(state.Email),
					Placeholder("Votre email"),
					g.Attr("autocomplete", "email"),
					g.Attr("required"),
					Class("w-full pl-12 pr-4 py-3.5 bg-white/80 backdrop-blur-sm border-2 border-gray-200 rounded-xl focus:ring-2 focus:ring-orange-500 focus:border-orange-500 transition-all duration-200 hover:border-orange-300 hover:shadow-md placeholder-gray-400 text-gray-900"),
				),
			),
			g.If(state.Notice != "", P(
				Class("waitlist-notice text-sm text-red-600"),
				g.Attr("role", "alert"),
				g.Text(state.Notice),
			)),
		),
		Button(
			Type("submit"),
			Class("w-full bg-gradient-to-r from-orange-500 via-orange-600 to-orange-500 text-white py-4 rounded-xl font-semibold transition-all duration-500 flex items-center justify-center space-x-3"),
			Span(g.Text("M'inscrire à la liste d'attente")),
			Icon("lucide--arrow-right w-5 h-5 animate-pulse", ""),
		),
		Div(
			Class("pt-4 flex items-center justify-center space-x-4 text-sm text-gray-500"),
			Counter("lucide--users", "2000+ inscrits"),
			Div(Class("w-1 h-1 bg-gray-300 rounded-full")),
			Counter("lucide--clock", "Lancement imminent"),
		),
	)
}

// Confirmation is the static acknowledgment shown after a signup.
func Confirmation(title, description string) g.Node {
	return Div(
		Class("waitlist-confirmation relative overflow-hidden bg-gradient-to-r from-green-50 to-emerald-50 rounded-2xl p-6 border border-green-100"),
		g.Attr("role", "status"),
		Div(Class("absolute top-0 left-0 w-2 h-full bg-green-500")),
		Div(
			Class("flex items-start space-x-4"),
			Div(
				Class("flex-shrink-0 w-10 h-10 bg-green-100 rounded-full flex items-center justify-center"),
				Icon("lucide--check w-6 h-6 text-green-600", ""),
			),
			Div(
				H3(Class("font-semibold text-green-800 text-lg"), g.Text(title)),
				P(Class("text-green-700 mt-1 text-sm"), g.Text(description)),
			),
		),
	)
}
