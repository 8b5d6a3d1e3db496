package rule

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"tabs", []string{"tabs"}},
		{"tabs, doctype", []string{"tabs", "doctype"}},
		{" tabs ,, doctype ,", []string{"tabs", "doctype"}},
	}
	for _, tt := range tests {
		if got := ParsePatterns(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePatterns(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseNames(t *testing.T) {
	kinds, err := ParseNames("tabs,,indentation")
	if err != nil {
		t.Fatalf("ParseNames failed: %v", err)
	}
	want := []types.Kind{types.KindTab, types.KindIndentation}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("got %v, want %v", kinds, want)
	}

	kinds, err = ParseNames("")
	if err != nil || len(kinds) != 0 {
		t.Errorf("expected no kinds and no error, got %v, %v", kinds, err)
	}
}

func TestParseNames_ListsEveryUnknownName(t *testing.T) {
	_, err := ParseNames("tabs,foo,bar")
	if !errors.Is(err, ErrUnknownCheck) {
		t.Fatalf("expected ErrUnknownCheck, got %v", err)
	}
	if !strings.Contains(err.Error(), "foo, bar") {
		t.Errorf("expected both names in %q", err)
	}
}

func TestKindSet(t *testing.T) {
	set := KindSet([]types.Kind{types.KindTab})
	if !set[types.KindTab] || set[types.KindIndentation] {
		t.Errorf("unexpected set %v", set)
	}
}

func testChecks() []*types.Check {
	var checks []*types.Check
	for _, k := range []types.Kind{types.KindTab, types.KindTrailingWhitespace, types.KindIndentation, types.KindDocumentType} {
		checks = append(checks, &types.Check{Name: k.Name(), Kind: k})
	}
	return checks
}

func names(checks []*types.Check) []string {
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = c.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		config FilterConfig
		want   []string
	}{
		{"empty", FilterConfig{}, []string{"tabs", "trailing_whitespace", "indentation", "doctype"}},
		{"include", FilterConfig{Include: []string{"^t"}}, []string{"tabs", "trailing_whitespace"}},
		{"exclude", FilterConfig{Exclude: []string{"whitespace$", "^doc"}}, []string{"tabs", "indentation"}},
		{"include then exclude", FilterConfig{Include: []string{"^t"}, Exclude: []string{"tabs"}}, []string{"trailing_whitespace"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(testChecks(), tt.config)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("got %q, want %q", names(got), tt.want)
			}
		})
	}
}

func TestFilter_InvalidRegex(t *testing.T) {
	if _, err := Filter(testChecks(), FilterConfig{Include: []string{"[invalid"}}); err == nil {
		t.Error("expected error for invalid include regex")
	}
	if _, err := Filter(testChecks(), FilterConfig{Exclude: []string{"(unclosed"}}); err == nil {
		t.Error("expected error for invalid exclude regex")
	}
}

func TestFilter_NilChecks(t *testing.T) {
	got, err := Filter(nil, FilterConfig{Include: []string{"x"}})
	if err != nil || got != nil {
		t.Errorf("expected nil, nil; got %v, %v", got, err)
	}
}

func TestDisabled(t *testing.T) {
	off := Disabled(testChecks())
	if len(off) != len(types.AllKinds())-4 {
		t.Fatalf("expected %d disabled kinds, got %d", len(types.AllKinds())-4, len(off))
	}
	for _, k := range off {
		if k == types.KindTab || k == types.KindDocumentType {
			t.Errorf("%s is enabled but reported as disabled", k)
		}
	}
}
