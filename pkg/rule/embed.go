package rule

import "embed"

// builtinChecksFS embeds the check catalogue, one record per message kind.
//
//go:embed checks/*.yml
var builtinChecksFS embed.FS

// builtinRulesetsFS embeds the built-in rulesets.
//
//go:embed rulesets/*.yml
var builtinRulesetsFS embed.FS
