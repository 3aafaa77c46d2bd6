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

// Package tree contains the expression model of the compiler: datums,
// literals, placeholders and function calls, together with the built-in
// function descriptors and the argument resolution that turns a parsed call
// into a compiled function expression.
package tree

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// Expr represents an expression node.
type Expr interface {
	fmt.Stringer
}

// TypedExpr represents a type-resolved expression node. ResolvedType may
// return nil for an expression whose type is not yet known, e.g. an unbound
// placeholder.
type TypedExpr interface {
	Expr
	ResolvedType() *types.T
	Eval(ctx *EvalContext) (Datum, error)
}

// EvalContext holds the state an expression evaluation needs. A fresh
// context is created per statement execution.
type EvalContext struct {
	// Row holds the current input row for IndexedVar references.
	Row []Datum
	// Loc is the session time zone; nil means UTC.
	Loc *time.Location
}

func (ctx *EvalContext) location() *time.Location {
	if ctx != nil && ctx.Loc != nil {
		return ctx.Loc
	}
	return time.UTC
}

// IndexedVar is a reference to a column of the current input row, identified
// by ordinal position.
type IndexedVar struct {
	Idx int
	typ *types.T
}

// NewTypedOrdinalReference returns an IndexedVar of the given type.
func NewTypedOrdinalReference(idx int, typ *types.T) *IndexedVar {
	return &IndexedVar{Idx: idx, typ: typ}
}

// ResolvedType implements the TypedExpr interface.
func (v *IndexedVar) ResolvedType() *types.T { return v.typ }

// Eval implements the TypedExpr interface.
func (v *IndexedVar) Eval(ctx *EvalContext) (Datum, error) {
	if ctx == nil || v.Idx >= len(ctx.Row) {
		return nil, errors.AssertionFailedf("no value for variable @%d", v.Idx+1)
	}
	return ctx.Row[v.Idx], nil
}

func (v *IndexedVar) String() string { return fmt.Sprintf("@%d", v.Idx+1) }

// IsConstant reports whether the expression is composed of constants only
// and can be evaluated at compile time.
func IsConstant(expr Expr) bool {
	switch e := expr.(type) {
	case Datum:
		return true
	case *Literal:
		return true
	case *FuncExpr:
		return e.IsConstant()
	default:
		return false
	}
}

// NormalizeName brings a function or identifier name to its canonical
// lower-case form.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}
