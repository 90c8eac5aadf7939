package store

import (
	"strings"
)

// CustomCategories is the default schema of the rule tab. The rule engine is
// header-driven, so users may add further match or "Set X" columns; this
// schema only seeds new tabs.
var CustomCategories = Schema{
	Sheet: "CentCustomCategories",
	Columns: []Column{
		{Title: "Set Category", Kind: KindString},
		{Title: "Description", Kind: KindString},
		{Title: "NZFCC.org", Kind: KindString},
		{Title: "Minimum", Kind: KindMoney},
		{Title: "Maximum", Kind: KindMoney},
		{Title: "Overwrite Existing", Kind: KindBool},
	},
}

const (
	setPrefix      = "set "
	overwriteTitle = "overwrite existing"
)

// Rule is one compiled categorization rule. Match maps lowercased match-field
// names to expected values (string values already lowercased); Set maps
// target field names (the "set " prefix stripped) to the values to assign.
// A rule with an empty Match map matches every transaction.
type Rule struct {
	Match     map[string]any
	Set       map[string]any
	Overwrite bool
}

// ParseRule compiles one rule row against the rule tab's header. Headers are
// matched case-insensitively; empty cells contribute nothing.
func ParseRule(header []string, row []any) Rule {
	rule := Rule{
		Match: make(map[string]any),
		Set:   make(map[string]any),
	}

	for i, title := range header {
		name := strings.ToLower(strings.TrimSpace(title))
		if name == "" || i >= len(row) || IsBlank(row[i]) {
			continue
		}
		cell := row[i]

		switch {
		case name == overwriteTitle:
			rule.Overwrite = ParseFlag(cell)
		case strings.HasPrefix(name, setPrefix):
			rule.Set[strings.TrimPrefix(name, setPrefix)] = cell
		default:
			if s, ok := cell.(string); ok {
				cell = strings.ToLower(s)
			}
			rule.Match[name] = cell
		}
	}
	return rule
}

// ParseFlag interprets a free-form flag cell as a boolean. Only an explicit
// affirmative value enables the flag; everything else, including an empty
// cell, is false.
func ParseFlag(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "y", "true", "1":
			return true
		}
		return false
	case float64:
		return x != 0
	default:
		return false
	}
}
