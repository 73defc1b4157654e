//go:build js && wasm

package wasm

import "syscall/js"

// windowScroll is a scroll.Source backed by the window's scroll events.
type windowScroll struct {
	window js.Value
}

func (w windowScroll) offset() float64 {
	y := w.window.Get("scrollY")
	if y.Type() != js.TypeNumber {
		return 0
	}
	return y.Float()
}

// Subscribe adds a passive scroll listener. The returned function removes it and
// releases the callback.
func (w windowScroll) Subscribe(handler func(offset float64)) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler(w.offset())
		return nil
	})
	opts := map[string]any{"passive": true}
	w.window.Call("addEventListener", "scroll", fn, opts)
	return func() {
		w.window.Call("removeEventListener", "scroll", fn, opts)
		fn.Release()
	}
}
