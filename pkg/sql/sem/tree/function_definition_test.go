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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

// fakeFuncExpr is a minimal compiled expression variant for tests.
type fakeFuncExpr struct {
	children []TypedExpr
}

func (f *fakeFuncExpr) Children() []TypedExpr { return f.children }
func (f *fakeFuncExpr) ResolvedType() *types.T {
	return types.Int
}
func (f *fakeFuncExpr) Eval(_ *EvalContext) (Datum, error) { return DInt(0), nil }
func (f *fakeFuncExpr) String() string                     { return "fake()" }

// fakeAggExpr is a fake variant in the aggregate family.
type fakeAggExpr struct {
	fakeFuncExpr
}

func (f *fakeAggExpr) NewAggregateFunc() AggregateFunc { return fakeAgg{} }

type fakeAgg struct{}

func (fakeAgg) Add(_ context.Context, _ Datum) error { return nil }
func (fakeAgg) Result() (Datum, error)               { return DNull, nil }

func fakeCtor(children []TypedExpr) (FunctionExpression, error) {
	return &fakeFuncExpr{children: children}, nil
}

func intArg() ArgumentInfo {
	return ArgumentInfo{AllowedTypes: []*types.T{types.Int}}
}

func intArgWithDefault(def int64) ArgumentInfo {
	return ArgumentInfo{
		AllowedTypes: []*types.T{types.Int},
		Default:      NewTypedLiteral(DInt(def), types.Int),
	}
}

func TestRequiredArgCount(t *testing.T) {
	testCases := []struct {
		name     string
		args     []ArgumentInfo
		expected int
	}{
		{"no args", nil, 0},
		{"no defaults", []ArgumentInfo{intArg(), intArg()}, 0},
		{"trailing default", []ArgumentInfo{intArg(), intArgWithDefault(0)}, 1},
		{"two trailing defaults",
			[]ArgumentInfo{intArg(), intArgWithDefault(0), intArgWithDefault(1)}, 2},
		// A default at position 0 is not honored: there is no index left of
		// it to make required.
		{"leading default only", []ArgumentInfo{intArgWithDefault(0), intArg()}, 0},
		// A default followed by a non-default is part of the required run;
		// the later default still raises the count past it.
		{"gap", []ArgumentInfo{intArgWithDefault(0), intArg(), intArgWithDefault(1)}, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := NewFunctionDefinition(
				"f", tc.args, (*fakeFuncExpr)(nil), ExprConstructor(fakeCtor))
			require.NoError(t, err)
			require.Equal(t, tc.expected, def.RequiredArgCount)
		})
	}
}

func TestFunctionClass(t *testing.T) {
	def, err := NewFunctionDefinition(
		"f", nil, (*fakeFuncExpr)(nil), ExprConstructor(fakeCtor))
	require.NoError(t, err)
	require.False(t, def.IsAggregate())

	def, err = NewFunctionDefinition(
		"agg", nil, (*fakeAggExpr)(nil), ExprConstructor(fakeCtor))
	require.NoError(t, err)
	require.True(t, def.IsAggregate())
}

func TestNewFunctionDefinitionRequiresConstructor(t *testing.T) {
	_, err := NewFunctionDefinition("f", nil, (*fakeFuncExpr)(nil), nil)
	require.Error(t, err)
	require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
}

func TestNameNormalization(t *testing.T) {
	def, err := NewFunctionDefinition(
		"RoUnD", nil, (*fakeFuncExpr)(nil), ExprConstructor(fakeCtor))
	require.NoError(t, err)
	require.Equal(t, "round", def.Name)
}

func TestInstantiateErrorSurface(t *testing.T) {
	coded := pgerror.New(pgcode.DatatypeMismatch, "already classified")
	plain := errors.New("builder blew up")

	testCases := []struct {
		name         string
		ctorErr      error
		expectedCode pgcode.Code
	}{
		{"compiler error propagates unchanged", coded, pgcode.DatatypeMismatch},
		{"other failures wrapped as internal", plain, pgcode.Internal},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctor := ExprConstructor(func(_ []TypedExpr) (FunctionExpression, error) {
				return nil, tc.ctorErr
			})
			def, err := NewFunctionDefinition("f", nil, (*fakeFuncExpr)(nil), ctor)
			require.NoError(t, err)

			_, err = def.Instantiate(nil)
			require.Error(t, err)
			require.Equal(t, tc.expectedCode, pgerror.GetPGCode(err))
			require.True(t, errors.Is(err, tc.ctorErr))
		})
	}
}

func TestInstantiateCallNodeConstructor(t *testing.T) {
	node := fakeCallSiteNode{}
	ctor := CallNodeConstructor(
		func(_ *FunctionDefinition, children []TypedExpr) (CallSiteNode, error) {
			return node, nil
		})
	def, err := NewFunctionDefinition("f", nil, (*fakeFuncExpr)(nil), ctor)
	require.NoError(t, err)

	fe, err := def.Instantiate(nil)
	require.NoError(t, err)
	require.IsType(t, &fakeFuncExpr{}, fe)
}

type fakeCallSiteNode struct{}

func (fakeCallSiteNode) BuildExpression() (FunctionExpression, error) {
	return &fakeFuncExpr{}, nil
}

func TestResolveFunctionUnknown(t *testing.T) {
	_, err := ResolveFunction("no_such_function")
	require.Error(t, err)
	require.Equal(t, pgcode.UndefinedFunction, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "no_such_function()")
}

func TestFormatTypes(t *testing.T) {
	require.Equal(t, "[int, decimal]", formatTypes([]*types.T{types.Int, types.Decimal}))
	require.Equal(t, "[]", formatTypes(nil))
	require.Equal(t, "[ASC, DESC]",
		formatValues(map[string]struct{}{"DESC": {}, "ASC": {}}))
}
