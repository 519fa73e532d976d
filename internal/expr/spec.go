package expr

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// ErrBadRule indicates a malformed rule map passed to FromSpec.
var ErrBadRule = errors.New("bad selection rule")

// FromSpec compiles the declarative rule form used in configuration files
// into an Expr. A rule is a single-key map:
//
//	all: true
//	name: "*.mp3"
//	larger_than: 1048576
//	writable: true
//	not: <rule>
//	except: <rule>
//	and: [<rule>, <rule>, ...]
//	or: [<rule>, <rule>, ...]
//
// and/or require at least two operands and fold left. Unknown keys and
// multi-key maps are rejected.
func FromSpec(rule map[string]any) (Expr, error) {
	if len(rule) == 0 {
		return nil, errors.Wrap(ErrBadRule, "empty rule")
	}
	if len(rule) > 1 {
		return nil, errors.Wrapf(ErrBadRule, "rule must have exactly one key, got %d", len(rule))
	}

	for key, value := range rule {
		switch key {
		case "all":
			return All(), nil

		case "name":
			pattern, err := cast.ToStringE(value)
			if err != nil {
				return nil, errors.Wrap(ErrBadRule, "name: pattern must be a string")
			}
			return NameMatches(pattern)

		case "larger_than":
			threshold, err := cast.ToInt64E(value)
			if err != nil {
				return nil, errors.Wrapf(ErrBadRule, "larger_than: %v is not a byte count", value)
			}
			if threshold < 0 {
				return nil, errors.Wrapf(ErrBadRule, "larger_than: negative threshold %d", threshold)
			}
			return LargerThan(threshold), nil

		case "writable":
			return Writable(), nil

		case "not", "except":
			inner, err := innerRule(key, value)
			if err != nil {
				return nil, err
			}
			return Not(inner), nil

		case "and", "or":
			operands, err := operandRules(key, value)
			if err != nil {
				return nil, err
			}
			combined := operands[0]
			for _, op := range operands[1:] {
				if key == "and" {
					combined = And(combined, op)
				} else {
					combined = Or(combined, op)
				}
			}
			return combined, nil

		default:
			return nil, errors.Wrapf(ErrBadRule, "unknown rule %q", key)
		}
	}

	// Unreachable: the map has exactly one key.
	return nil, ErrBadRule
}

// innerRule compiles the single nested rule of a not/except node.
func innerRule(key string, value any) (Expr, error) {
	m, err := cast.ToStringMapE(value)
	if err != nil {
		return nil, errors.Wrapf(ErrBadRule, "%s: operand must be a rule map", key)
	}
	inner, err := FromSpec(m)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", key)
	}
	return inner, nil
}

// operandRules compiles the operand list of an and/or node.
func operandRules(key string, value any) ([]Expr, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrBadRule, "%s: operands must be a list of rules", key)
	}
	if len(items) < 2 {
		return nil, errors.Wrapf(ErrBadRule, "%s: needs at least two operands, got %d", key, len(items))
	}

	operands := make([]Expr, 0, len(items))
	for i, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, errors.Wrapf(ErrBadRule, "%s: operand %d is not a rule map", key, i)
		}
		e, err := FromSpec(m)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s operand %d", key, i)
		}
		operands = append(operands, e)
	}
	return operands, nil
}
