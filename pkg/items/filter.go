package items

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression evaluated against each item.
// Expressions see the flattened item, so `id > 2 && name == "a"` works.
// Fields an item lacks evaluate to nil.
type Filter struct {
	expression string
	program    *vm.Program
}

// CompileFilter compiles expression. A blank expression returns a nil
// Filter, which matches every item.
func CompileFilter(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, &ValidationError{
			Field:   "filter",
			Message: fmt.Sprintf("invalid filter expression: %v", err),
		}
	}
	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expression
}

// Match reports whether item satisfies the filter.
func (f *Filter) Match(item *Item) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, item.ToJSON())
	if err != nil {
		return false, &ValidationError{
			Field:   "filter",
			Message: fmt.Sprintf("filter failed on item %d: %v", item.ID, err),
		}
	}
	matched, ok := out.(bool)
	if !ok {
		return false, &ValidationError{
			Field:   "filter",
			Message: fmt.Sprintf("filter must evaluate to a boolean, got %T", out),
		}
	}
	return matched, nil
}

// Find returns the items matching f in creation order.
// A nil filter behaves exactly like List.
func (s *Store) Find(f *Filter) ([]Item, error) {
	if f == nil {
		return s.List(), nil
	}

	start := time.Now()

	s.mu.RLock()
	result := make([]Item, 0)
	var matchErr error
	for _, itemID := range s.order {
		item := s.items[itemID]
		ok, err := f.Match(item)
		if err != nil {
			matchErr = err
			break
		}
		if ok {
			result = append(result, item.Clone())
		}
	}
	s.mu.RUnlock()

	if matchErr != nil {
		s.observer.OnError("list", matchErr)
		return nil, matchErr
	}
	s.observer.OnList(len(result), time.Since(start))
	return result, nil
}
