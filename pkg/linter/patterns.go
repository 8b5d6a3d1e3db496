package linter

import "github.com/dlclark/regexp2"

// Patterns use .NET semantics: "$" also matches before a final "\n", and
// named groups are numbered after unnamed ones, so groups are looked up by
// name.
var (
	trailingWhitespace = regexp2.MustCompile(`([\t ]+)[\r\n]`, regexp2.None)
	tabs               = regexp2.MustCompile(`\t+`, regexp2.None)

	httpProtocol = regexp2.MustCompile(`^(http[s]?:)`, regexp2.None)
	idName       = regexp2.MustCompile(`^[a-z0-9-]*$`, regexp2.None)
	className    = regexp2.MustCompile(`^[a-z0-9 -]*$`, regexp2.None)
	voidZero     = regexp2.MustCompile(`^javascript:\s*void\s*\(\s*0\s*\)\s*;?$`, regexp2.IgnoreCase)

	// selfClosing captures what a self-closed tag carries before its ">".
	selfClosing = regexp2.MustCompile(`([\t ]*/)>$`, regexp2.None)

	tagWhitespace = regexp2.MustCompile(
		`^</?(?<start>\s*)\w+(?<rest>.*?)(?:(?<slash>\s*)/|(?<end>\s*))>`,
		regexp2.Singleline)
	attributeWhitespace = regexp2.MustCompile(
		`([\n\r]\s*|\s)(?<before_attr>\s*)\w+((?<after_attr>\s*)=(?<before_value>\s*))?`,
		regexp2.None)
)

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// each calls fn for every match of re in s.
func each(re *regexp2.Regexp, s string, fn func(m *regexp2.Match)) {
	m, err := re.FindStringMatch(s)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		fn(m)
	}
}
