//go:build js && wasm

package wasm

import (
	"context"
	"syscall/js"
	"time"

	"github.com/Its-donkey/BuddyBreak/internal/scroll"
	"github.com/Its-donkey/BuddyBreak/internal/ui/components"
	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
)

// APIEndpoint is where the browser sink posts signups.
const APIEndpoint = "/api/waitlist"

const submitTimeout = 8 * time.Second

var (
	// Document references the global browser document for DOM interactions.
	Document js.Value
	// FormHandlers stores bound js.Func callbacks so they can be released later.
	FormHandlers []js.Func
)

// app is the per-page state of the browser client.
type app struct {
	controller   *waitlist.Controller
	observer     *scroll.Observer
	subscription *scroll.Subscription
	submitting   bool
}

func newApp() *app {
	return &app{
		controller: waitlist.NewController(
			waitlist.HTTPSink{Endpoint: APIEndpoint},
			waitlist.WithSource(waitlist.SourceWASM),
		),
	}
}

func logConsole(level string, args ...any) {
	console := js.Global().Get("console")
	if console.Truthy() {
		console.Call(level, args...)
	}
}

func (a *app) initWaitlist() {
	// The server may have rendered a confirmation already (joined=1).
	panel := Document.Call("getElementById", components.WaitlistPanelID)
	if panel.Truthy() && panel.Call("getAttribute", "data-state").String() == "submitted" {
		return
	}
	if input := Document.Call("getElementById", components.EmailInputID); input.Truthy() {
		a.controller.OnEmailChange(input.Get("value").String())
	}
	a.bindForm()
}

// bindForm attaches input and submit listeners to the current form element.
func (a *app) bindForm() {
	releaseFormHandlers()

	form := Document.Call("getElementById", components.WaitlistFormID)
	input := Document.Call("getElementById", components.EmailInputID)
	if !form.Truthy() || !input.Truthy() {
		return
	}

	onInput := js.FuncOf(func(this js.Value, args []js.Value) any {
		a.controller.OnEmailChange(input.Get("value").String())
		return nil
	})
	onSubmit := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		if a.submitting {
			return nil
		}
		a.submitting = true
		go a.submit()
		return nil
	})
	input.Call("addEventListener", "input", onInput)
	form.Call("addEventListener", "submit", onSubmit)
	FormHandlers = append(FormHandlers, onInput, onSubmit)
}

func (a *app) submit() {
	defer func() { a.submitting = false }()

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	if err := a.controller.OnSubmit(ctx); err != nil {
		logConsole("warn", "waitlist submission failed", err.Error())
	}
	a.renderPanel()
}

// renderPanel swaps the panel markup for the controller's current state.
func (a *app) renderPanel() {
	panel := Document.Call("getElementById", components.WaitlistPanelID)
	if !panel.Truthy() {
		logConsole("error", "waitlist panel missing")
		return
	}
	html, err := components.RenderString(components.WaitlistPanel(a.controller.State(), "/waitlist"))
	if err != nil {
		logConsole("error", "render waitlist panel", err.Error())
		return
	}
	panel.Set("outerHTML", html)

	if a.controller.Submitted() {
		releaseFormHandlers()
		return
	}
	a.bindForm()
	if input := Document.Call("getElementById", components.EmailInputID); input.Truthy() {
		input.Call("focus")
	}
}

func releaseFormHandlers() {
	for _, fn := range FormHandlers {
		fn.Release()
	}
	FormHandlers = nil
}

func (a *app) initHeader(window js.Value) {
	header := Document.Call("getElementById", components.HeaderID)
	if !header.Truthy() {
		return
	}
	a.observer = scroll.NewObserver(func(scrolled bool) {
		header.Set("className", components.HeaderClass(scrolled))
		header.Call("setAttribute", "data-scrolled", boolAttr(scrolled))
	})
	src := windowScroll{window: window}
	a.subscription = a.observer.Attach(src)
	// Pick up a restored scroll position before the first event fires.
	a.observer.OnScroll(src.offset())
	header.Set("className", components.HeaderClass(a.observer.Scrolled()))
}

// bindScrollTop makes the waitlist anchors glide back to the top of the page.
func bindScrollTop(window js.Value) []js.Func {
	links := Document.Call("querySelectorAll", "[data-scroll-top]")
	var funcs []js.Func
	for i := 0; i < links.Length(); i++ {
		fn := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			window.Call("scrollTo", map[string]any{"top": 0, "behavior": "smooth"})
			return nil
		})
		links.Index(i).Call("addEventListener", "click", fn)
		funcs = append(funcs, fn)
	}
	return funcs
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
