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
	"context"
	"sort"
	"testing"
	"time"

	"github.com/manukranthk/phoenix/pkg/sql/parser"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/sem/tree"
	"github.com/manukranthk/phoenix/pkg/sql/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(t *testing.T, s string) *tree.Literal {
	t.Helper()
	l, err := parser.ParseLiteral(s)
	require.NoError(t, err)
	return l
}

func tsLit(t *testing.T, s string) *tree.Literal {
	t.Helper()
	d, err := tree.ParseDTimestamp(s, nil)
	require.NoError(t, err)
	return tree.NewTypedLiteral(d, types.Timestamp)
}

// compile resolves and instantiates a call against the registry the way the
// compiler does.
func compile(t *testing.T, name string, exprs ...tree.TypedExpr) tree.FunctionExpression {
	t.Helper()
	fn, err := tree.NewFuncExpr(name, exprs)
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(0)
	fe, err := fn.TypeCheck(&semaCtx)
	require.NoError(t, err)
	return fe
}

func evalString(t *testing.T, fe tree.FunctionExpression) string {
	t.Helper()
	d, err := fe.Eval(&tree.EvalContext{})
	require.NoError(t, err)
	return d.String()
}

func TestRegistry(t *testing.T) {
	require.True(t, sort.StringsAreSorted(AllBuiltinNames))
	require.Len(t, AllBuiltinNames, len(tree.FunDefs))

	// Lookup is case-insensitive.
	def, err := tree.ResolveFunction("RoUnD")
	require.NoError(t, err)
	require.Equal(t, "round", def.Name)
	require.False(t, def.IsAggregate())

	_, err = tree.ResolveFunction("no_such_fn")
	require.Error(t, err)
	require.Equal(t, pgcode.UndefinedFunction, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "unknown function: no_such_fn()")
}

func TestRoundDefaultScale(t *testing.T) {
	fe := compile(t, "round", lit(t, "3.14159"))
	require.Len(t, fe.Children(), 2)
	require.Equal(t, "3", evalString(t, fe))
	require.Same(t, types.Decimal, fe.ResolvedType())
}

func TestRoundExplicitScale(t *testing.T) {
	fe := compile(t, "round", lit(t, "3.14159"), lit(t, "2"))
	require.Equal(t, "3.14", evalString(t, fe))

	// Half away from zero.
	fe = compile(t, "round", lit(t, "2.5"))
	require.Equal(t, "3", evalString(t, fe))
}

func TestRoundScaleOutOfRange(t *testing.T) {
	// A scale beyond int32 must error rather than wrap in the conversion.
	fe := compile(t, "round", lit(t, "2.5"), lit(t, "4294967296"))
	_, err := fe.Eval(&tree.EvalContext{})
	require.Error(t, err)
	require.Equal(t, pgcode.NumericValueOutOfRange, pgerror.GetPGCode(err))
}

func TestRoundTimestampDispatch(t *testing.T) {
	fe := compile(t, "round", tsLit(t, "2021-06-05 13:00:00"))
	require.Same(t, types.Timestamp, fe.ResolvedType())
	d, err := fe.Eval(&tree.EvalContext{})
	require.NoError(t, err)
	require.Equal(t,
		time.Date(2021, 6, 6, 0, 0, 0, 0, time.UTC), d.(*tree.DTimestamp).Time)
}

func TestRoundArgumentMismatch(t *testing.T) {
	fn, err := tree.NewFuncExpr("round", []tree.TypedExpr{lit(t, "'x'")})
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(0)
	_, err = fn.TypeCheck(&semaCtx)
	require.Error(t, err)
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(),
		"expected [decimal, timestamp], got string (round argument 1)")
}

func TestTrunc(t *testing.T) {
	ts := tsLit(t, "2021-06-05 13:45:30")
	testCases := []struct {
		unit string
		want time.Time
	}{
		{"YEAR", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"MONTH", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"day", time.Date(2021, 6, 5, 0, 0, 0, 0, time.UTC)},
		{"HOUR", time.Date(2021, 6, 5, 13, 0, 0, 0, time.UTC)},
		{"minute", time.Date(2021, 6, 5, 13, 45, 0, 0, time.UTC)},
		{"SECOND", time.Date(2021, 6, 5, 13, 45, 30, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.unit, func(t *testing.T) {
			fe := compile(t, "trunc", ts, lit(t, "'"+tc.unit+"'"))
			d, err := fe.Eval(&tree.EvalContext{})
			require.NoError(t, err)
			require.Equal(t, tc.want, d.(*tree.DTimestamp).Time)
		})
	}
}

func TestTruncRejectsUnknownUnit(t *testing.T) {
	fn, err := tree.NewFuncExpr("trunc",
		[]tree.TypedExpr{tsLit(t, "2021-06-05"), lit(t, "'fortnight'")})
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(0)
	_, err = fn.TypeCheck(&semaCtx)
	require.Error(t, err)
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(),
		"expected [DAY, HOUR, MINUTE, MONTH, SECOND, YEAR], got fortnight (trunc argument 2)")
}

func TestConstantArgument(t *testing.T) {
	col := tree.NewTypedOrdinalReference(1, types.String)
	fn, err := tree.NewFuncExpr("to_char",
		[]tree.TypedExpr{tsLit(t, "2021-06-05"), col})
	require.NoError(t, err)
	require.False(t, fn.IsConstant())
	semaCtx := tree.MakeSemaContext(0)
	_, err = fn.TypeCheck(&semaCtx)
	require.Error(t, err)
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "expected constant, got @2 (to_char argument 2)")
}

func TestToChar(t *testing.T) {
	fe := compile(t, "to_char",
		tsLit(t, "2021-06-05 13:45:30"), lit(t, "'YYYY-MM-DD HH24:MI:SS'"))
	d, err := fe.Eval(&tree.EvalContext{})
	require.NoError(t, err)
	require.Equal(t, "2021-06-05 13:45:30", string(*d.(*tree.DString)))
}

func TestStringBuiltins(t *testing.T) {
	require.Equal(t, "'abc'", evalString(t, compile(t, "lower", lit(t, "'ABC'"))))
	require.Equal(t, "'ABC'", evalString(t, compile(t, "upper", lit(t, "'abc'"))))
	require.Equal(t, "'abc'", evalString(t, compile(t, "trim", lit(t, "'  abc '"))))

	// The omitted third argument defaults to "through the end".
	require.Equal(t, "'ello'",
		evalString(t, compile(t, "substr", lit(t, "'hello'"), lit(t, "2"))))
	require.Equal(t, "'ell'",
		evalString(t, compile(t, "substr", lit(t, "'hello'"), lit(t, "2"), lit(t, "3"))))

	// The omitted fill defaults to a space.
	require.Equal(t, "'  7'",
		evalString(t, compile(t, "lpad", lit(t, "'7'"), lit(t, "3"))))
	require.Equal(t, "'007'",
		evalString(t, compile(t, "lpad", lit(t, "'7'"), lit(t, "3"), lit(t, "'0'"))))
}

func TestLpadNonPositiveLength(t *testing.T) {
	require.Equal(t, "''",
		evalString(t, compile(t, "lpad", lit(t, "'abc'"), lit(t, "0"))))
	require.Equal(t, "''",
		evalString(t, compile(t, "lpad", lit(t, "'abc'"), lit(t, "-1"))))
}

func TestLpadRejectsNonString(t *testing.T) {
	// lpad's first argument declares string only; a bool literal is not
	// admissible.
	fn, err := tree.NewFuncExpr("lpad", []tree.TypedExpr{
		tree.NewTypedLiteral(tree.DBool(true), nil), lit(t, "3"),
	})
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(0)
	_, err = fn.TypeCheck(&semaCtx)
	require.Error(t, err)
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
}

func TestCoalesce(t *testing.T) {
	require.Equal(t, "5",
		evalString(t, compile(t, "coalesce", lit(t, "NULL"), lit(t, "5"))))
	require.Equal(t, "1",
		evalString(t, compile(t, "coalesce", lit(t, "1"), lit(t, "5"))))
	require.Equal(t, "NULL",
		evalString(t, compile(t, "coalesce", lit(t, "NULL"), lit(t, "NULL"))))
}

func TestNullPropagation(t *testing.T) {
	for _, name := range []string{"lower", "upper", "trim"} {
		fe := compile(t, name, lit(t, "NULL"))
		d, err := fe.Eval(&tree.EvalContext{})
		require.NoError(t, err, name)
		require.Equal(t, tree.DNull, d, name)
	}
}

func TestPlaceholderDefaultInference(t *testing.T) {
	fn, err := tree.NewFuncExpr("round",
		[]tree.TypedExpr{lit(t, "3.14159"), &tree.Placeholder{Idx: 0}})
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(1)
	fe, err := fn.TypeCheck(&semaCtx)
	require.NoError(t, err)

	// The unbound placeholder took the declared default.
	typ, ok := semaCtx.Placeholders.Type(0)
	require.True(t, ok)
	require.Same(t, types.Int, typ)
	v, ok := semaCtx.Placeholders.Value(0)
	require.True(t, ok)
	require.Equal(t, tree.DInt(0), v)
	require.Equal(t, "3", evalString(t, fe))
}

func TestPlaceholderTypeHint(t *testing.T) {
	// substr's second argument has no default; the placeholder is hinted with
	// the argument's declared type and stays unbound.
	fn, err := tree.NewFuncExpr("substr",
		[]tree.TypedExpr{lit(t, "'hello'"), &tree.Placeholder{Idx: 0}})
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(1)
	_, err = fn.TypeCheck(&semaCtx)
	require.NoError(t, err)

	typ, ok := semaCtx.Placeholders.Type(0)
	require.True(t, ok)
	require.Same(t, types.Int, typ)
	_, ok = semaCtx.Placeholders.Value(0)
	require.False(t, ok)
}

func TestAggregateDefinitions(t *testing.T) {
	for _, name := range []string{"count", "sum", "min", "max", "first"} {
		def, err := tree.ResolveFunction(name)
		require.NoError(t, err)
		assert.True(t, def.IsAggregate(), name)
	}
}

func TestAggregateEvalRejected(t *testing.T) {
	fe := compile(t, "count", tree.NewTypedOrdinalReference(0, types.Int))
	_, err := fe.Eval(&tree.EvalContext{})
	require.Error(t, err)
	require.Equal(t, pgcode.Grouping, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "aggregate function count requires an aggregation context")
}

func accumulate(t *testing.T, fe tree.FunctionExpression, values ...tree.Datum) tree.Datum {
	t.Helper()
	agg, ok := fe.(tree.AggregateExpr)
	require.True(t, ok)
	acc := agg.NewAggregateFunc()
	ctx := context.Background()
	for _, v := range values {
		require.NoError(t, acc.Add(ctx, v))
	}
	res, err := acc.Result()
	require.NoError(t, err)
	return res
}

func TestAggregateAccumulators(t *testing.T) {
	col := tree.NewTypedOrdinalReference(0, types.Decimal)
	dec := func(s string) tree.Datum {
		d, err := tree.ParseDDecimal(s)
		require.NoError(t, err)
		return d
	}

	t.Run("count skips nulls", func(t *testing.T) {
		fe := compile(t, "count", col)
		res := accumulate(t, fe, dec("1"), tree.DNull, dec("2"))
		require.Equal(t, tree.DInt(2), res)
	})

	t.Run("sum", func(t *testing.T) {
		fe := compile(t, "sum", col)
		res := accumulate(t, fe, dec("1.5"), dec("2.25"))
		require.Equal(t, "3.75", res.String())
	})

	t.Run("sum of nothing is null", func(t *testing.T) {
		fe := compile(t, "sum", col)
		require.Equal(t, tree.DNull, accumulate(t, fe))
	})

	t.Run("min and max", func(t *testing.T) {
		intCol := tree.NewTypedOrdinalReference(0, types.Int)
		fe := compile(t, "min", intCol)
		require.Equal(t, tree.DInt(1),
			accumulate(t, fe, tree.DInt(3), tree.DInt(1), tree.DInt(2)))
		fe = compile(t, "max", intCol)
		require.Equal(t, tree.DInt(3),
			accumulate(t, fe, tree.DInt(3), tree.DInt(1), tree.DInt(2)))
	})

	t.Run("first honors sort order", func(t *testing.T) {
		strCol := tree.NewTypedOrdinalReference(0, types.String)
		fe := compile(t, "first", strCol, lit(t, "'asc'"))
		require.Equal(t, tree.NewDString("a"),
			accumulate(t, fe, tree.NewDString("b"), tree.NewDString("a")))
		fe = compile(t, "first", strCol, lit(t, "'DESC'"))
		require.Equal(t, tree.NewDString("b"),
			accumulate(t, fe, tree.NewDString("b"), tree.NewDString("a")))
	})
}

func TestFirstRejectsUnknownOrder(t *testing.T) {
	fn, err := tree.NewFuncExpr("first", []tree.TypedExpr{
		tree.NewTypedOrdinalReference(0, types.String), lit(t, "'up'"),
	})
	require.NoError(t, err)
	semaCtx := tree.MakeSemaContext(0)
	_, err = fn.TypeCheck(&semaCtx)
	require.Error(t, err)
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "expected [ASC, DESC], got up (first argument 2)")
}

func TestMakeFunctionDefinitionErrors(t *testing.T) {
	t.Run("no constructor", func(t *testing.T) {
		_, err := makeFunctionDefinition("f", builtinDefinition{
			args:  []argDecl{{}},
			proto: (*lowerExpr)(nil),
		})
		require.Error(t, err)
		require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
		require.Contains(t, err.Error(), "exactly one constructor kind must be bound")
	})

	t.Run("both constructors", func(t *testing.T) {
		_, err := makeFunctionDefinition("f", builtinDefinition{
			args:     []argDecl{{}},
			proto:    (*roundDecimalExpr)(nil),
			ctor:     newLowerExpr,
			nodeCtor: newRoundCallNode,
		})
		require.Error(t, err)
		require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
	})

	t.Run("unregistered enumeration", func(t *testing.T) {
		_, err := makeFunctionDefinition("f", builtinDefinition{
			args:  []argDecl{{Enumeration: "Nope"}},
			proto: (*lowerExpr)(nil),
			ctor:  newLowerExpr,
		})
		require.Error(t, err)
		require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
		require.Contains(t, err.Error(), `"Nope" does not resolve to a registered enumeration`)
		require.Contains(t, err.Error(), "f argument 1")
	})

	t.Run("default not coercible", func(t *testing.T) {
		_, err := makeFunctionDefinition("f", builtinDefinition{
			args:  []argDecl{{Types: []*types.T{types.Int}, Default: "'abc'"}},
			proto: (*lowerExpr)(nil),
			ctor:  newLowerExpr,
		})
		require.Error(t, err)
		require.True(t, pgerror.HasCode(err, pgcode.InvalidFunctionDefinition))
		require.Contains(t, err.Error(), `unable to coerce default value "'abc'"`)
	})

	t.Run("default does not parse", func(t *testing.T) {
		_, err := makeFunctionDefinition("f", builtinDefinition{
			args:  []argDecl{{Types: []*types.T{types.Int}, Default: "bogus!"}},
			proto: (*lowerExpr)(nil),
			ctor:  newLowerExpr,
		})
		require.Error(t, err)
		require.True(t, pgerror.HasCode(err, pgcode.InvalidFunctionDefinition))
		require.True(t, pgerror.HasCode(err, pgcode.Syntax))
	})
}

func TestMakeArgumentInfoDefaultCoercion(t *testing.T) {
	// The default is coerced to the first allowed type that accepts it, in
	// declaration order.
	info, err := makeArgumentInfo(argDecl{
		Types:   []*types.T{types.Int, types.Decimal},
		Default: "2.5",
	})
	require.NoError(t, err)
	require.Same(t, types.Decimal, info.Default.ResolvedType())

	info, err = makeArgumentInfo(argDecl{
		Types:   []*types.T{types.Int, types.Decimal},
		Default: "2",
	})
	require.NoError(t, err)
	require.Same(t, types.Int, info.Default.ResolvedType())
}
