//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("ResastNewParser", js.FuncOf(newParser))
	js.Global().Set("ResastParse", js.FuncOf(parse))
	js.Global().Set("ResastParseBatch", js.FuncOf(parseBatch))
	js.Global().Set("ResastCloseParser", js.FuncOf(closeParser))
	js.Global().Set("ResastGetBuiltinPatterns", js.FuncOf(getBuiltinPatterns))

	// Keep WASM running
	<-make(chan struct{})
}
