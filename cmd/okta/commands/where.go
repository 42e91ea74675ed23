package commands

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

const hoursPerDay = 24

// wherePredicate is a compiled --where expression. It is evaluated against the wire
// form of an entity, so fields use Okta's names: status, profile.login, created.
type wherePredicate struct {
	expression string
	program    *vm.Program
}

// compileWhere compiles expression. An empty expression yields a nil predicate that
// matches everything.
func compileWhere(expression string) (*wherePredicate, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil //nolint:nilnil
	}

	program, err := expr.Compile(expression,
		expr.Env(whereHelpers()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling --where expression: %w", err)
	}

	return &wherePredicate{expression: expression, program: program}, nil
}

// Match reports whether the entity fields satisfy the predicate.
func (p *wherePredicate) Match(fields map[string]any) (bool, error) {
	if p == nil {
		return true, nil
	}

	env := whereHelpers()
	maps.Copy(env, fields)

	result, err := expr.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating --where %q: %w", p.expression, err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, constants.ErrInvalidWhereClause
	}

	return matched, nil
}

// filterWhere keeps the items whose encoded form matches where.
func filterWhere[T any](items []*T, where *wherePredicate, encode func(*T) map[string]any) ([]*T, error) {
	if where == nil {
		return items, nil
	}

	kept := make([]*T, 0, len(items))

	for _, item := range items {
		ok, err := where.Match(encode(item))
		if err != nil {
			return nil, err
		}

		if ok {
			kept = append(kept, item)
		}
	}

	return kept, nil
}

// whereHelpers are the functions available to --where expressions. Timestamps in
// the entity are wire strings, so the date helpers take strings.
func whereHelpers() map[string]any {
	return map[string]any{
		"parseTime": parseWireTime,
		"daysSince": func(value string) int {
			t := parseWireTime(value)
			if t.IsZero() {
				return -1
			}

			return int(time.Since(t).Hours() / hoursPerDay)
		},
		"daysAgo": func(days int) string {
			return time.Now().UTC().AddDate(0, 0, -days).Format(codec.TimeLayout)
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"hasText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
	}
}

func parseWireTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}

	return t
}
