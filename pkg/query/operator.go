package query

import (
	"fmt"
	"strings"
)

// Op is a textual comparison operator code as it appears in filter strings.
type Op string

const (
	Equals             Op = "eq"
	NotEquals          Op = "neq"
	GreaterThan        Op = "gt"
	LessThan           Op = "lt"
	GreaterThanOrEqual Op = "gte"
	LessThanOrEqual    Op = "lte"
	Contains           Op = "contains"
	StartsWith         Op = "startswith"
	EndsWith           Op = "endswith"
	In                 Op = "in"
	IsNull             Op = "isnull"
)

// inSetSeparator splits the raw value of an "in" condition into its members.
const inSetSeparator = ","

// Condition is a single field predicate. Value holds the raw string from the
// filter grammar; typed coercion is left to the store. For In, Value is a
// []string produced by splitting the raw value.
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

// ParseOperator converts an operator code plus raw value into a Condition
// bound to field. Returns ErrUnknownOperator when the code is not recognized.
func ParseOperator(field string, op Op, raw string) (Condition, error) {
	switch op {
	case Equals, NotEquals, GreaterThan, LessThan, GreaterThanOrEqual,
		LessThanOrEqual, Contains, StartsWith, EndsWith:
		return Condition{Field: field, Op: op, Value: raw}, nil
	case In:
		return Condition{Field: field, Op: op, Value: strings.Split(raw, inSetSeparator)}, nil
	case IsNull:
		return Condition{Field: field, Op: op}, nil
	default:
		return Condition{}, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}
