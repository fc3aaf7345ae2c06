// Package query selects pairs of a tree with expr-lang predicates.
//
// A predicate sees one pair at a time through these variables:
//
//	field   the field
//	value   the leaf text, or the space notation of a tree
//	tree    whether the value is a tree
//	len     the number of pairs of a tree value
//	index   the position of the pair
//	path    the space path of the value from its root
//
// and these functions, resolved against the value:
//
//	get(path)      text of the leaf at a space path, "" when there is none
//	has(path)      whether the space path resolves
//	num(s)         s as a number, 0 when it is not one
//	getenv(name)   an environment variable
//
// For example
//
//	tree && num(get("age")) >= 21 && has("email")
package query

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrQuery = errors.New("query error")

type Predicate struct {
	src string
	prg *vm.Program
}

// Compile compiles src, which must evaluate to a bool.
func Compile(src string) (*Predicate, error) {
	prg, err := expr.Compile(src, expr.Env(env("", ir.New(), 0)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &Predicate{src: src, prg: prg}, nil
}

func (p *Predicate) String() string { return p.src }

// Match evaluates the predicate on the pair field, v at index i.
func (p *Predicate) Match(field string, v *ir.Node, i int) (bool, error) {
	res, err := vm.Run(p.prg, env(field, v, i))
	if err != nil {
		return false, fmt.Errorf("%w: %s at %q: %w", ErrQuery, p.src, field, err)
	}
	b, _ := res.(bool)
	return b, nil
}

// Filter returns the pairs of y the predicate matches. The values are
// shared with y.
func (p *Predicate) Filter(y *ir.Node) (*ir.Node, error) {
	var err error
	res := y.Filter(func(field string, v *ir.Node, i int) bool {
		if err != nil {
			return false
		}
		ok, mErr := p.Match(field, v, i)
		if mErr != nil {
			err = mErr
			return false
		}
		return ok
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func env(field string, v *ir.Node, i int) map[string]any {
	value := v.String
	if v.IsTree() {
		value = encode.MustString(v)
	}
	return map[string]any{
		"field": field,
		"value": value,
		"tree":  v.IsTree(),
		"len":   v.Len(),
		"index": i,
		"path":  v.Path(),
		"get": func(path string) string {
			s, _ := v.GetString(path)
			return s
		},
		"has": func(path string) bool {
			return v.Get(path) != nil
		},
		"num": func(s string) float64 {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0
			}
			return f
		},
		"getenv": os.Getenv,
	}
}
