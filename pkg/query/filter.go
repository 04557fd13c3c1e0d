package query

import (
	"errors"
	"fmt"
	"strings"
)

// Filter string grammar:
//
//	filter    := group ("," group)*          -- groups are OR-ed
//	group     := condition (";" condition)*  -- conditions AND-ed
//	condition := field "_" operator "_" value
//
// Example: "author_contains_tolkien,title_contains_tolkien" matches rows whose
// author OR title contains "tolkien".
const (
	groupSeparator     = ","
	conditionSeparator = ";"
	fieldSeparator     = "_"
)

// Sentinel errors for filter parsing.
var (
	// ErrUnknownOperator is returned when an operator code does not match any
	// recognized token.
	ErrUnknownOperator = errors.New("unknown filter operator")

	// ErrMalformedCondition is returned when a condition is not of the form
	// field_operator_value.
	ErrMalformedCondition = errors.New("malformed filter condition")
)

// Group is a set of AND-ed conditions.
type Group []Condition

// ParseFilter parses a filter string into its OR-groups. An empty filter
// yields no groups, which callers treat as "match all".
func ParseFilter(filter string) ([]Group, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}

	var groups []Group
	for _, rawGroup := range strings.Split(filter, groupSeparator) {
		var group Group
		for _, rawCond := range strings.Split(rawGroup, conditionSeparator) {
			cond, err := parseCondition(rawCond)
			if err != nil {
				return nil, err
			}
			group = append(group, cond)
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// parseCondition splits "field_operator_value" on the first two underscores.
// The value may itself contain underscores.
func parseCondition(raw string) (Condition, error) {
	parts := strings.SplitN(raw, fieldSeparator, 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Condition{}, fmt.Errorf("%w: %q", ErrMalformedCondition, raw)
	}

	field, op := parts[0], Op(parts[1])
	var value string
	if len(parts) == 3 {
		value = parts[2]
	}

	return ParseOperator(field, op, value)
}
