//go:build js && wasm

// Package wasm is the browser client: it drives the waitlist form without page
// reloads and keeps the header style in step with the scroll position.
package wasm

import "syscall/js"

// RunApp binds the server-rendered landing page and blocks until the page is hidden.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	Document = window.Get("document")

	a := newApp()
	a.initWaitlist()
	a.initHeader(window)
	scrollTop := bindScrollTop(window)

	var onHide js.Func
	onHide = js.FuncOf(func(this js.Value, args []js.Value) any {
		if a.subscription != nil {
			a.subscription.Release()
		}
		releaseFormHandlers()
		for _, fn := range scrollTop {
			fn.Release()
		}
		window.Call("removeEventListener", "pagehide", onHide)
		onHide.Release()
		close(done)
		return nil
	})
	window.Call("addEventListener", "pagehide", onHide)

	<-done
}
