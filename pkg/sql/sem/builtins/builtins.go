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

package builtins

import (
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/sem/tree"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

func initScalarBuiltins() {
	registerBuiltin("round", builtinDefinition{
		args: []argDecl{
			{Types: []*types.T{types.Decimal, types.Timestamp}},
			{Types: []*types.T{types.Int}, Default: "0"},
		},
		proto:    (*roundDecimalExpr)(nil),
		nodeCtor: newRoundCallNode,
	})
	registerBuiltin("trunc", builtinDefinition{
		args: []argDecl{
			{Types: []*types.T{types.Timestamp}},
			{Enumeration: "TimeUnit"},
		},
		proto: (*truncExpr)(nil),
		ctor:  newTruncExpr,
	})
	registerBuiltin("substr", builtinDefinition{
		args: []argDecl{
			{Types: []*types.T{types.String}},
			{Types: []*types.T{types.Int}},
			{Types: []*types.T{types.Int}, Default: "2147483647"},
		},
		proto: (*substrExpr)(nil),
		ctor:  newSubstrExpr,
	})
	registerBuiltin("lpad", builtinDefinition{
		args: []argDecl{
			{Types: []*types.T{types.String}},
			{Types: []*types.T{types.Int}},
			{Types: []*types.T{types.String}, Default: "' '"},
		},
		proto: (*lpadExpr)(nil),
		ctor:  newLpadExpr,
	})
	registerBuiltin("to_char", builtinDefinition{
		args: []argDecl{
			{Types: []*types.T{types.Timestamp, types.Decimal}},
			{Types: []*types.T{types.String}, Constant: true},
		},
		proto: (*toCharExpr)(nil),
		ctor:  newToCharExpr,
	})
	registerBuiltin("lower", builtinDefinition{
		args:  []argDecl{{Types: []*types.T{types.String}}},
		proto: (*lowerExpr)(nil),
		ctor:  newLowerExpr,
	})
	registerBuiltin("upper", builtinDefinition{
		args:  []argDecl{{Types: []*types.T{types.String}}},
		proto: (*upperExpr)(nil),
		ctor:  newUpperExpr,
	})
	registerBuiltin("trim", builtinDefinition{
		args:  []argDecl{{Types: []*types.T{types.String}}},
		proto: (*trimExpr)(nil),
		ctor:  newTrimExpr,
	})
	registerBuiltin("coalesce", builtinDefinition{
		args:  []argDecl{{}, {}},
		proto: (*coalesceExpr)(nil),
		ctor:  newCoalesceExpr,
	})
}

// callExpr is the shared shape of the compiled function expression variants.
type callExpr struct {
	name     string
	children []tree.TypedExpr
	typ      *types.T
}

func makeCallExpr(name string, children []tree.TypedExpr, typ *types.T) callExpr {
	return callExpr{name: name, children: children, typ: typ}
}

// Children implements the tree.FunctionExpression interface.
func (e *callExpr) Children() []tree.TypedExpr { return e.children }

// ResolvedType implements the tree.TypedExpr interface.
func (e *callExpr) ResolvedType() *types.T { return e.typ }

func (e *callExpr) String() string {
	var sb strings.Builder
	sb.WriteString(e.name)
	sb.WriteByte('(')
	for i, c := range e.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func checkArity(name string, children []tree.TypedExpr, arity int) error {
	if len(children) != arity {
		return errors.Newf("%s: expected %d arguments, got %d", name, arity, len(children))
	}
	return nil
}

// roundCallNode is the specialized call node for round: the compiled
// expression variant depends on the type of the first argument.
type roundCallNode struct {
	def      *tree.FunctionDefinition
	children []tree.TypedExpr
}

func newRoundCallNode(
	def *tree.FunctionDefinition, children []tree.TypedExpr,
) (tree.CallSiteNode, error) {
	if err := checkArity(def.Name, children, 2); err != nil {
		return nil, err
	}
	return &roundCallNode{def: def, children: children}, nil
}

// BuildExpression implements the tree.CallSiteNode interface.
func (n *roundCallNode) BuildExpression() (tree.FunctionExpression, error) {
	if typ := n.children[0].ResolvedType(); typ == types.Timestamp || typ == types.Date {
		return &roundTimestampExpr{
			callExpr: makeCallExpr(n.def.Name, n.children, types.Timestamp),
		}, nil
	}
	return &roundDecimalExpr{
		callExpr: makeCallExpr(n.def.Name, n.children, types.Decimal),
	}, nil
}

// roundDecimalExpr rounds a decimal to a given scale, half away from zero.
type roundDecimalExpr struct {
	callExpr
}

var roundContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(25)
	ctx.Rounding = apd.RoundHalfUp
	return ctx
}()

// Eval implements the tree.TypedExpr interface.
func (e *roundDecimalExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	d, err := e.children[0].Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	scale, err := evalInt(ctx, e.children[1], 0)
	if err != nil {
		return nil, err
	}
	x, err := asDecimal(d)
	if err != nil {
		return nil, err
	}
	// The int32 conversion below must not wrap; apd rejects the rest of the
	// range itself.
	if scale < math.MinInt32 || scale > math.MaxInt32 {
		return nil, pgerror.Newf(pgcode.NumericValueOutOfRange,
			"scale %d out of range", scale)
	}
	res := &tree.DDecimal{}
	if _, err := roundContext.Quantize(&res.Decimal, x, -int32(scale)); err != nil {
		return nil, err
	}
	return res, nil
}

// roundTimestampExpr rounds a timestamp to the nearest day.
type roundTimestampExpr struct {
	callExpr
}

// Eval implements the tree.TypedExpr interface.
func (e *roundTimestampExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	d, err := e.children[0].Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	t, err := asTimestamp(d)
	if err != nil {
		return nil, err
	}
	return &tree.DTimestamp{Time: t.Round(24 * time.Hour)}, nil
}

// truncExpr truncates a timestamp to a time unit.
type truncExpr struct {
	callExpr
	unit TimeUnit
}

func newTruncExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("trunc", children, 2); err != nil {
		return nil, err
	}
	unitName, err := constantString(children[1])
	if err != nil {
		return nil, err
	}
	unit, err := TimeUnitFromString(unitName)
	if err != nil {
		return nil, err
	}
	return &truncExpr{
		callExpr: makeCallExpr("trunc", children, types.Timestamp),
		unit:     unit,
	}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *truncExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	d, err := e.children[0].Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	t, err := asTimestamp(d)
	if err != nil {
		return nil, err
	}
	year, month, day := t.Date()
	loc := t.Location()
	var res time.Time
	switch e.unit {
	case Year:
		res = time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	case Month:
		res = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Day:
		res = time.Date(year, month, day, 0, 0, 0, 0, loc)
	case Hour:
		res = time.Date(year, month, day, t.Hour(), 0, 0, 0, loc)
	case Minute:
		res = time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, loc)
	case Second:
		res = time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), 0, loc)
	}
	return &tree.DTimestamp{Time: res}, nil
}

// substrExpr extracts a 1-indexed substring.
type substrExpr struct {
	callExpr
}

func newSubstrExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("substr", children, 3); err != nil {
		return nil, err
	}
	return &substrExpr{callExpr: makeCallExpr("substr", children, types.String)}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *substrExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	d, err := e.children[0].Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	s, err := asString(d)
	if err != nil {
		return nil, err
	}
	pos, err := evalInt(ctx, e.children[1], 1)
	if err != nil {
		return nil, err
	}
	length, err := evalInt(ctx, e.children[2], int64(len(s)))
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	start := pos - 1
	if start < 0 {
		start = 0
	}
	if start >= int64(len(runes)) || length <= 0 {
		return tree.NewDString(""), nil
	}
	end := start + length
	if end > int64(len(runes)) {
		end = int64(len(runes))
	}
	return tree.NewDString(string(runes[start:end])), nil
}

// lpadExpr pads a string on the left to a given length.
type lpadExpr struct {
	callExpr
}

func newLpadExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("lpad", children, 3); err != nil {
		return nil, err
	}
	return &lpadExpr{callExpr: makeCallExpr("lpad", children, types.String)}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *lpadExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	d, err := e.children[0].Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	s, err := asString(d)
	if err != nil {
		return nil, err
	}
	length, err := evalInt(ctx, e.children[1], 0)
	if err != nil {
		return nil, err
	}
	fillDatum, err := e.children[2].Eval(ctx)
	if err != nil {
		return nil, err
	}
	fill, err := asString(fillDatum)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return tree.NewDString(""), nil
	}
	runes := []rune(s)
	if int64(len(runes)) >= length {
		return tree.NewDString(string(runes[:length])), nil
	}
	if fill == "" {
		return tree.NewDString(s), nil
	}
	var sb strings.Builder
	fillRunes := []rune(fill)
	for i := int64(0); i < length-int64(len(runes)); i++ {
		sb.WriteRune(fillRunes[i%int64(len(fillRunes))])
	}
	sb.WriteString(s)
	return tree.NewDString(sb.String()), nil
}

// toCharExpr formats a timestamp or decimal using a constant format string.
type toCharExpr struct {
	callExpr
	layout string
}

// toCharReplacer translates the SQL format tokens to a Go time layout.
var toCharReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"HH24", "15",
	"MM", "01",
	"DD", "02",
	"MI", "04",
	"SS", "05",
)

func newToCharExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("to_char", children, 2); err != nil {
		return nil, err
	}
	format, err := constantString(children[1])
	if err != nil {
		return nil, err
	}
	return &toCharExpr{
		callExpr: makeCallExpr("to_char", children, types.String),
		layout:   toCharReplacer.Replace(format),
	}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *toCharExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	d, err := e.children[0].Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	switch v := d.(type) {
	case *tree.DTimestamp:
		return tree.NewDString(v.Format(e.layout)), nil
	case tree.DDate:
		return tree.NewDString(v.Time().Format(e.layout)), nil
	default:
		dec, err := asDecimal(d)
		if err != nil {
			return nil, err
		}
		return tree.NewDString(dec.String()), nil
	}
}

// lowerExpr lower-cases a string.
type lowerExpr struct {
	callExpr
}

func newLowerExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("lower", children, 1); err != nil {
		return nil, err
	}
	return &lowerExpr{callExpr: makeCallExpr("lower", children, types.String)}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *lowerExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	return evalStringFunc(ctx, e.children[0], strings.ToLower)
}

// upperExpr upper-cases a string.
type upperExpr struct {
	callExpr
}

func newUpperExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("upper", children, 1); err != nil {
		return nil, err
	}
	return &upperExpr{callExpr: makeCallExpr("upper", children, types.String)}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *upperExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	return evalStringFunc(ctx, e.children[0], strings.ToUpper)
}

// trimExpr trims surrounding whitespace from a string.
type trimExpr struct {
	callExpr
}

func newTrimExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("trim", children, 1); err != nil {
		return nil, err
	}
	return &trimExpr{callExpr: makeCallExpr("trim", children, types.String)}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *trimExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	return evalStringFunc(ctx, e.children[0], strings.TrimSpace)
}

// coalesceExpr returns its first non-NULL argument.
type coalesceExpr struct {
	callExpr
}

func newCoalesceExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("coalesce", children, 2); err != nil {
		return nil, err
	}
	typ := types.Unknown
	for _, c := range children {
		if t := c.ResolvedType(); t != nil && t != types.Unknown {
			typ = t
			break
		}
	}
	return &coalesceExpr{callExpr: makeCallExpr("coalesce", children, typ)}, nil
}

// Eval implements the tree.TypedExpr interface.
func (e *coalesceExpr) Eval(ctx *tree.EvalContext) (tree.Datum, error) {
	for _, c := range e.children {
		d, err := c.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if d != tree.DNull {
			return d, nil
		}
	}
	return tree.DNull, nil
}

func evalStringFunc(
	ctx *tree.EvalContext, child tree.TypedExpr, f func(string) string,
) (tree.Datum, error) {
	d, err := child.Eval(ctx)
	if err != nil || d == tree.DNull {
		return d, err
	}
	s, err := asString(d)
	if err != nil {
		return nil, err
	}
	return tree.NewDString(f(s)), nil
}

// evalInt evaluates an int-typed child, substituting ifNull for NULL.
func evalInt(ctx *tree.EvalContext, child tree.TypedExpr, ifNull int64) (int64, error) {
	d, err := child.Eval(ctx)
	if err != nil {
		return 0, err
	}
	if d == tree.DNull {
		return ifNull, nil
	}
	i, ok := d.(tree.DInt)
	if !ok {
		return 0, errors.AssertionFailedf("expected int, got %s", d.ResolvedType())
	}
	return int64(i), nil
}

func asString(d tree.Datum) (string, error) {
	s, ok := d.(*tree.DString)
	if !ok {
		return "", errors.AssertionFailedf("expected string, got %s", d.ResolvedType())
	}
	return string(*s), nil
}

func asDecimal(d tree.Datum) (*apd.Decimal, error) {
	switch v := d.(type) {
	case *tree.DDecimal:
		return &v.Decimal, nil
	case tree.DInt:
		var dec apd.Decimal
		dec.SetInt64(int64(v))
		return &dec, nil
	case tree.DFloat:
		var dec apd.Decimal
		if _, err := dec.SetFloat64(float64(v)); err != nil {
			return nil, err
		}
		return &dec, nil
	}
	return nil, errors.AssertionFailedf("expected decimal, got %s", d.ResolvedType())
}

func asTimestamp(d tree.Datum) (time.Time, error) {
	switch v := d.(type) {
	case *tree.DTimestamp:
		return v.Time, nil
	case tree.DDate:
		return v.Time(), nil
	}
	return time.Time{}, errors.AssertionFailedf("expected timestamp, got %s", d.ResolvedType())
}

// constantString extracts the raw string value of a constant argument.
func constantString(child tree.TypedExpr) (string, error) {
	lit, ok := child.(*tree.Literal)
	if !ok {
		return "", errors.Newf("expected a constant, got %s", child)
	}
	return lit.ValueString(), nil
}
