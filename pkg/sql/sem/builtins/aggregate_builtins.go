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

	"github.com/cockroachdb/apd/v3"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/sem/tree"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

func initAggregateBuiltins() {
	registerBuiltin("count", builtinDefinition{
		args:  []argDecl{{}},
		proto: (*countExpr)(nil),
		ctor:  newCountExpr,
	})
	registerBuiltin("sum", builtinDefinition{
		args:  []argDecl{{Types: []*types.T{types.Decimal}}},
		proto: (*sumExpr)(nil),
		ctor:  newSumExpr,
	})
	registerBuiltin("min", builtinDefinition{
		args:  []argDecl{{}},
		proto: (*minMaxExpr)(nil),
		ctor:  newMinExpr,
	})
	registerBuiltin("max", builtinDefinition{
		args:  []argDecl{{}},
		proto: (*minMaxExpr)(nil),
		ctor:  newMaxExpr,
	})
	registerBuiltin("first", builtinDefinition{
		args: []argDecl{
			{},
			{Enumeration: "SortOrder"},
		},
		proto: (*firstExpr)(nil),
		ctor:  newFirstExpr,
	})
}

// aggregateExpr is the shared shape of the compiled aggregate variants. Its
// Eval rejects plain evaluation: aggregates only produce values through
// their accumulators.
type aggregateExpr struct {
	callExpr
}

// Eval implements the tree.TypedExpr interface.
func (e *aggregateExpr) Eval(_ *tree.EvalContext) (tree.Datum, error) {
	return nil, pgerror.Newf(pgcode.Grouping,
		"aggregate function %s requires an aggregation context", e.name)
}

// countExpr counts non-NULL inputs.
type countExpr struct {
	aggregateExpr
}

func newCountExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("count", children, 1); err != nil {
		return nil, err
	}
	return &countExpr{aggregateExpr{makeCallExpr("count", children, types.Int)}}, nil
}

// NewAggregateFunc implements the tree.AggregateExpr interface.
func (e *countExpr) NewAggregateFunc() tree.AggregateFunc { return &countAgg{} }

type countAgg struct {
	count int64
}

func (a *countAgg) Add(_ context.Context, value tree.Datum) error {
	if value != tree.DNull {
		a.count++
	}
	return nil
}

func (a *countAgg) Result() (tree.Datum, error) { return tree.DInt(a.count), nil }

// sumExpr sums decimal inputs.
type sumExpr struct {
	aggregateExpr
}

func newSumExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("sum", children, 1); err != nil {
		return nil, err
	}
	return &sumExpr{aggregateExpr{makeCallExpr("sum", children, types.Decimal)}}, nil
}

// NewAggregateFunc implements the tree.AggregateExpr interface.
func (e *sumExpr) NewAggregateFunc() tree.AggregateFunc { return &sumAgg{} }

type sumAgg struct {
	sum  apd.Decimal
	seen bool
}

func (a *sumAgg) Add(_ context.Context, value tree.Datum) error {
	if value == tree.DNull {
		return nil
	}
	d, err := asDecimal(value)
	if err != nil {
		return err
	}
	a.seen = true
	_, err = roundContext.Add(&a.sum, &a.sum, d)
	return err
}

func (a *sumAgg) Result() (tree.Datum, error) {
	if !a.seen {
		return tree.DNull, nil
	}
	res := &tree.DDecimal{}
	res.Set(&a.sum)
	return res, nil
}

// minMaxExpr tracks the extreme of its inputs under Datum ordering.
type minMaxExpr struct {
	aggregateExpr
	max bool
}

func newMinExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("min", children, 1); err != nil {
		return nil, err
	}
	return &minMaxExpr{aggregateExpr{makeCallExpr("min", children, childType(children[0]))}, false}, nil
}

func newMaxExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("max", children, 1); err != nil {
		return nil, err
	}
	return &minMaxExpr{aggregateExpr{makeCallExpr("max", children, childType(children[0]))}, true}, nil
}

// NewAggregateFunc implements the tree.AggregateExpr interface.
func (e *minMaxExpr) NewAggregateFunc() tree.AggregateFunc { return &extremeAgg{max: e.max} }

type extremeAgg struct {
	max    bool
	result tree.Datum
}

func (a *extremeAgg) Add(_ context.Context, value tree.Datum) error {
	if value == tree.DNull {
		return nil
	}
	if a.result == nil {
		a.result = value
		return nil
	}
	c := value.Compare(a.result)
	if (a.max && c > 0) || (!a.max && c < 0) {
		a.result = value
	}
	return nil
}

func (a *extremeAgg) Result() (tree.Datum, error) {
	if a.result == nil {
		return tree.DNull, nil
	}
	return a.result, nil
}

// firstExpr returns the first input under the declared sort order.
type firstExpr struct {
	aggregateExpr
	order SortOrder
}

func newFirstExpr(children []tree.TypedExpr) (tree.FunctionExpression, error) {
	if err := checkArity("first", children, 2); err != nil {
		return nil, err
	}
	orderName, err := constantString(children[1])
	if err != nil {
		return nil, err
	}
	order, err := SortOrderFromString(orderName)
	if err != nil {
		return nil, err
	}
	return &firstExpr{
		aggregateExpr: aggregateExpr{makeCallExpr("first", children, childType(children[0]))},
		order:         order,
	}, nil
}

// NewAggregateFunc implements the tree.AggregateExpr interface.
func (e *firstExpr) NewAggregateFunc() tree.AggregateFunc {
	return &extremeAgg{max: e.order == Descending}
}

func childType(child tree.TypedExpr) *types.T {
	if t := child.ResolvedType(); t != nil {
		return t
	}
	return types.Unknown
}
