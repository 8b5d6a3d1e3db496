//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/html5lint/pkg/logs"
	"github.com/praetorian-inc/html5lint/pkg/scanner"
)

var (
	linters   = make(map[int]*scanner.Core)
	lintersMu sync.RWMutex
	nextID    int
)

// errorResult is what every export returns on failure.
func errorResult(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

// newLinter creates a linter with the given checks disabled.
// JS: HTML5LintNew(disableJSON) -> {handle} or {error}
func newLinter(this js.Value, args []js.Value) interface{} {
	disableJSON := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		disableJSON = args[0].String()
	}

	// stderr ends up on the browser console.
	logger, err := logs.New(logs.Options{})
	if err != nil {
		return errorResult("failed to create logger: " + err.Error())
	}
	core, err := scanner.NewCore(disableJSON, logger)
	if err != nil {
		return errorResult("failed to create linter: " + err.Error())
	}

	lintersMu.Lock()
	id := nextID
	nextID++
	linters[id] = core
	lintersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

func lookup(handle int) (*scanner.Core, bool) {
	lintersMu.RLock()
	defer lintersMu.RUnlock()
	core, ok := linters[handle]
	return core, ok
}

// lint lints a single document.
// JS: HTML5Lint(handle, content, source) -> JSON result or {error}
func lint(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and content arguments required")
	}

	core, ok := lookup(args[0].Int())
	if !ok {
		return errorResult("invalid linter handle")
	}
	source := ""
	if len(args) > 2 {
		source = args[2].String()
	}

	result, err := core.Lint(args[1].String(), source)
	if err != nil {
		return errorResult("lint failed: " + err.Error())
	}
	return marshal(result)
}

// lintBatch lints several documents.
// JS: HTML5LintBatch(handle, itemsJSON) -> JSON batch result or {error}
func lintBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and itemsJSON arguments required")
	}

	core, ok := lookup(args[0].Int())
	if !ok {
		return errorResult("invalid linter handle")
	}

	var items []scanner.ContentItem
	if err := json.Unmarshal([]byte(args[1].String()), &items); err != nil {
		return errorResult("failed to parse items JSON: " + err.Error())
	}

	result, err := core.LintBatch(items)
	if err != nil {
		return errorResult("batch lint failed: " + err.Error())
	}
	return marshal(result)
}

// closeLinter releases a linter.
// JS: HTML5LintClose(handle)
func closeLinter(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("handle argument required")
	}

	handle := args[0].Int()
	lintersMu.Lock()
	core, ok := linters[handle]
	delete(linters, handle)
	lintersMu.Unlock()

	if !ok {
		return errorResult("invalid linter handle")
	}
	core.Close()
	return nil
}

// checks returns the check catalogue.
// JS: HTML5LintChecks() -> JSON array of checks
func checks(this js.Value, args []js.Value) interface{} {
	all, err := scanner.Checks()
	if err != nil {
		return errorResult("failed to load checks: " + err.Error())
	}
	return marshal(all)
}

func marshal(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return string(data)
}
