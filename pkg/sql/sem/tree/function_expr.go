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
	"context"
	"strings"
)

// FunctionExpression is a compiled, evaluable function call. It has no
// knowledge of the definition that produced it.
type FunctionExpression interface {
	TypedExpr
	// Children returns the resolved argument expressions, in order.
	Children() []TypedExpr
}

// AggregateFunc accumulates the result of an aggregate function across
// input rows.
type AggregateFunc interface {
	// Add accumulates the passed datum into the AggregateFunc.
	Add(ctx context.Context, value Datum) error
	// Result returns the current value of the accumulation.
	Result() (Datum, error)
}

// AggregateExpr is implemented by the compiled function expressions in the
// aggregate family. Membership in this family is what makes a function
// definition an aggregate.
type AggregateExpr interface {
	FunctionExpression
	// NewAggregateFunc returns a fresh accumulator for one aggregation
	// group.
	NewAggregateFunc() AggregateFunc
}

// FuncExpr is the parsed representation of a function invocation, before
// argument resolution.
type FuncExpr struct {
	// Name is the normalized function name.
	Name string
	// Exprs holds the compiled child expressions actually supplied by the
	// caller; a child may be an unbound *Placeholder.
	Exprs []TypedExpr

	def        *FunctionDefinition
	isConstant bool
}

// NewFuncExpr constructs a call node for the named function, resolving the
// name against the built-in registry.
func NewFuncExpr(name string, exprs []TypedExpr) (*FuncExpr, error) {
	def, err := ResolveFunction(name)
	if err != nil {
		return nil, err
	}
	isConstant := true
	for _, e := range exprs {
		if !IsConstant(e) {
			isConstant = false
			break
		}
	}
	return &FuncExpr{
		Name:       def.Name,
		Exprs:      exprs,
		def:        def,
		isConstant: isConstant,
	}, nil
}

// Def returns the resolved function definition.
func (f *FuncExpr) Def() *FunctionDefinition { return f.def }

// IsConstant reports whether every supplied argument is constant.
func (f *FuncExpr) IsConstant() bool { return f.isConstant }

func (f *FuncExpr) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, e := range f.Exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// TypeCheck resolves the call's arguments against the definition and builds
// the compiled function expression.
func (f *FuncExpr) TypeCheck(semaCtx *SemaContext) (FunctionExpression, error) {
	resolved, err := f.def.ResolveArgs(f.Exprs, semaCtx)
	if err != nil {
		return nil, err
	}
	return f.def.Instantiate(resolved)
}
