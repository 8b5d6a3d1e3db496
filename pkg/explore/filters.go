package explore

import "github.com/praetorian-inc/html5lint/pkg/types"

// severityFilter restricts the messages shown to one severity.
type severityFilter int

const (
	filterAll severityFilter = iota
	filterError
	filterWarning
	filterInfo
	filterCount // sentinel
)

func (f severityFilter) next() severityFilter {
	return (f + 1) % filterCount
}

func (f severityFilter) severity() types.Severity {
	switch f {
	case filterWarning:
		return types.SeverityWarning
	case filterInfo:
		return types.SeverityInfo
	}
	return types.SeverityError
}

func (f severityFilter) label() string {
	if f == filterAll {
		return "All"
	}
	return f.severity().String()
}

func (f severityFilter) matches(m types.Message) bool {
	return f == filterAll || m.Severity == f.severity()
}

// visibleMessages returns the messages of doc that pass f.
func (f severityFilter) visibleMessages(doc *documentRow) []types.Message {
	if doc == nil {
		return nil
	}
	if f == filterAll {
		return doc.Messages
	}
	var out []types.Message
	for _, m := range doc.Messages {
		if f.matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// visibleDocuments returns the documents with at least one message passing
// f. Every document is visible without a filter.
func (f severityFilter) visibleDocuments(docs []*documentRow) []*documentRow {
	if f == filterAll {
		return docs
	}
	var out []*documentRow
	for _, d := range docs {
		if d.count(f) > 0 {
			out = append(out, d)
		}
	}
	return out
}
