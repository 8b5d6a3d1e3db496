//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	js.Global().Set("HTML5LintNew", js.FuncOf(newLinter))
	js.Global().Set("HTML5Lint", js.FuncOf(lint))
	js.Global().Set("HTML5LintBatch", js.FuncOf(lintBatch))
	js.Global().Set("HTML5LintClose", js.FuncOf(closeLinter))
	js.Global().Set("HTML5LintChecks", js.FuncOf(checks))

	// Keep WASM running
	<-make(chan struct{})
}
