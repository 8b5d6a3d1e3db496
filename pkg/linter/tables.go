package linter

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var (
	voidElements = set("br", "hr", "img", "input", "link", "meta",
		"area", "base", "col", "command", "embed", "keygen", "param",
		"source", "track", "wbr")

	optionalClosingTags = set("html", "head", "body", "p", "dt", "dd", "li",
		"option", "thead", "th", "tbody", "tr", "td", "tfoot", "colgroup")

	optionalOpeningTags = set("body", "head", "html", "tbody")

	blockTags = set("address", "article", "aside", "audio", "blockquote",
		"canvas", "dd", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header",
		"hgroup", "hr", "noscript", "ol", "output", "p", "pre", "section",
		"table", "tfoot", "ul", "video")

	listTags = set("ol", "ul", "li", "dl", "dt", "dd")

	tableTags = set("table", "caption", "colgroup", "col", "tbody", "thead",
		"tfoot", "tr", "td", "th")

	// newlineTags must start on a line of their own.
	newlineTags = union(blockTags, listTags, tableTags)

	booleanAttributes = set("allowfullscreen", "async", "autofocus",
		"autoplay", "checked", "compact", "controls", "declare", "default",
		"defaultchecked", "defaultmuted", "defaultselected", "defer",
		"disabled", "draggable", "enabled", "formnovalidate", "hidden",
		"indeterminate", "inert", "ismap", "itemscope", "loop", "multiple",
		"muted", "nohref", "noresize", "noshade", "novalidate", "nowrap",
		"open", "pauseonexit", "readonly", "required", "reversed", "scoped",
		"seamless", "selected", "sortable", "spellcheck", "translate",
		"truespeed", "typemustmatch", "visible")

	allowedEntities = set("lt", "gt", "amp", "quot", "nbsp", "ensp", "emsp", "thinsp")

	allowedHTTPEquiv = set("refresh", "default-style", "x-ua-compatible", "")
)

func union(sets ...map[string]bool) map[string]bool {
	m := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			m[k] = true
		}
	}
	return m
}
