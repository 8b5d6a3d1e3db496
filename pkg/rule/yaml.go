package rule

// yamlCheck is the on-disk form of a catalogue entry.
type yamlCheck struct {
	Name             string   `yaml:"name"`
	Summary          string   `yaml:"summary"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
	References       []string `yaml:"references,omitempty"`
}

// yamlChecksFile is a catalogue file: a "checks" array at the top level.
type yamlChecksFile struct {
	Checks []yamlCheck `yaml:"checks"`
}

type yamlRuleset struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	CheckNames  []string `yaml:"include_checks"`
}

type yamlRulesetsFile struct {
	Rulesets []yamlRuleset `yaml:"rulesets"`
}
