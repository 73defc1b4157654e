//go:build js && wasm

package main

import "github.com/Its-donkey/BuddyBreak/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
