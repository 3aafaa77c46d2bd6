// Copyright 2026 The Phoenix Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package tree

import (
	"strings"

	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// ResolveArgs validates the supplied child expressions against the
// definition's argument descriptors and returns the resolved argument list:
// omitted trailing arguments are padded with typed NULLs, unbound arguments
// are replaced by declared defaults, and placeholder metadata is recorded in
// semaCtx as a side effect. The returned list has exactly one entry per
// declared argument.
//
// Children the caller supplied beyond the declared arity are not validated
// here; arity is the grammar's concern.
func (def *FunctionDefinition) ResolveArgs(
	children []TypedExpr, semaCtx *SemaContext,
) ([]TypedExpr, error) {
	supplied := len(children)
	if len(def.Args) > supplied {
		// Pad the omitted trailing positions with NULLs typed to the
		// argument's first allowed type, so that downstream stages see a
		// full-arity child list.
		padded := make([]TypedExpr, supplied, len(def.Args))
		copy(padded, children)
		for i := supplied; i < len(def.Args); i++ {
			var typ *types.T
			if len(def.Args[i].AllowedTypes) > 0 {
				typ = def.Args[i].AllowedTypes[0]
			}
			padded = append(padded, NewNullLiteral(typ))
		}
		children = padded
	} else if supplied > len(def.Args) {
		supplied = len(def.Args)
	}

	for i := range def.Args {
		arg := &def.Args[i]
		child := children[i]
		placeholder, _ := child.(*Placeholder)

		// An unbound child is one whose type is not resolved (explicit
		// NULL, unresolved placeholder) or whose position the caller left
		// off entirely. Typed validation does not apply to it: either the
		// default replaces it (and was validated when the registry was
		// built), or the placeholder gets its metadata inferred, or an
		// unresolved placeholder is left for a later stage to report.
		typ := child.ResolvedType()
		if typ == nil || typ == types.Unknown || i >= supplied {
			if arg.Default != nil {
				children[i] = arg.Default
				if placeholder != nil {
					if err := semaCtx.Placeholders.SetValue(
						placeholder.Idx, arg.Default.Value, arg.Default.ResolvedType(),
					); err != nil {
						return nil, err
					}
				}
			} else if placeholder != nil && len(arg.AllowedTypes) > 0 {
				// No default; hint the placeholder with the first allowed
				// type, as a null-valued inference.
				if err := semaCtx.Placeholders.SetType(
					placeholder.Idx, arg.AllowedTypes[0],
				); err != nil {
					return nil, err
				}
			}
			continue
		}

		if len(arg.AllowedTypes) > 0 {
			var matched *types.T
			for _, t := range arg.AllowedTypes {
				if exprCoercibleTo(child, t) {
					matched = t
					break
				}
			}
			if matched == nil {
				return nil, newArgTypeMismatchError(
					def.Name, i, formatTypes(arg.AllowedTypes), typ.String())
			}
			// A literal admitted under a different type is retyped so that
			// evaluation converts the value.
			if lit, ok := child.(*Literal); ok && lit.ResolvedType() != matched {
				child = NewTypedLiteral(lit.Value, matched)
				children[i] = child
			}
		}
		if arg.Constant {
			if _, ok := asLiteral(child); !ok {
				return nil, newArgTypeMismatchError(def.Name, i, "constant", child.String())
			}
		}
		if len(arg.AllowedValues) > 0 {
			lit, ok := asLiteral(child)
			if !ok {
				return nil, newArgTypeMismatchError(def.Name, i, "constant", child.String())
			}
			value := lit.ValueString()
			if _, ok := arg.AllowedValues[strings.ToUpper(value)]; !ok {
				return nil, newArgTypeMismatchError(
					def.Name, i, formatValues(arg.AllowedValues), value)
			}
		}
	}
	return children, nil
}

// Instantiate invokes the definition's bound constructor on a resolved
// argument list. Errors already classified by the compiler propagate
// unchanged; any other failure is wrapped as an internal compilation error
// so callers see a uniform surface.
func (def *FunctionDefinition) Instantiate(children []TypedExpr) (FunctionExpression, error) {
	fe, err := def.ctor.construct(def, children)
	if err != nil {
		if pgerror.IsSQLError(err) {
			return nil, err
		}
		return nil, pgerror.Wrapf(err, pgcode.Internal,
			"could not instantiate %s()", def.Name)
	}
	return fe, nil
}

func newArgTypeMismatchError(fnName string, idx int, expected, actual string) error {
	return pgerror.Newf(pgcode.DatatypeMismatch,
		"expected %s, got %s (%s argument %d)", expected, actual, fnName, idx+1)
}

// asLiteral views a constant expression as a literal: a *Literal as itself,
// a bare datum wrapped at its natural type. Matches what IsConstant counts
// as constant, FuncExpr aside.
func asLiteral(expr TypedExpr) (*Literal, bool) {
	switch e := expr.(type) {
	case *Literal:
		return e, true
	case Datum:
		return NewTypedLiteral(e, nil), true
	}
	return nil, false
}

// exprCoercibleTo reports whether the expression may be used where type t is
// expected, consulting the value when the expression is a literal.
func exprCoercibleTo(expr TypedExpr, t *types.T) bool {
	if lit, ok := asLiteral(expr); ok {
		return lit.CoercibleTo(t)
	}
	return types.CoercibleTo(expr.ResolvedType(), t)
}
