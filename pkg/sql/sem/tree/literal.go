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
	"math"

	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// Literal is a constant expression carrying an explicit resolved type, which
// may differ from the natural type of its value: a NULL padded in for an
// omitted int argument is a Literal with value DNull and type Int, and an
// integer default declared for a decimal argument is a Literal with a DInt
// value and type Decimal. The conversion to the declared type happens at
// evaluation.
type Literal struct {
	Value Datum
	typ   *types.T
}

// NewTypedLiteral constructs a Literal of the given type. A nil type takes
// the natural type of the value.
func NewTypedLiteral(v Datum, typ *types.T) *Literal {
	if typ == nil {
		typ = v.ResolvedType()
	}
	return &Literal{Value: v, typ: typ}
}

// NewNullLiteral constructs a NULL Literal typed as typ; a nil typ produces
// an untyped NULL.
func NewNullLiteral(typ *types.T) *Literal {
	if typ == nil {
		typ = types.Unknown
	}
	return &Literal{Value: DNull, typ: typ}
}

// ResolvedType implements the TypedExpr interface.
func (l *Literal) ResolvedType() *types.T { return l.typ }

func (l *Literal) String() string { return l.Value.String() }

// ValueString returns the raw string form of the value, without SQL quoting.
// Enumeration membership is checked against the upper-cased result.
func (l *Literal) ValueString() string {
	if s, ok := l.Value.(*DString); ok {
		return string(*s)
	}
	return l.Value.String()
}

// CoercibleTo reports whether the literal may be used where type t is
// expected. Beyond the type-level rules this also admits value-dependent
// conversions, e.g. a decimal with no fractional part used as an int.
func (l *Literal) CoercibleTo(t *types.T) bool {
	if types.CoercibleTo(l.ResolvedType(), t) || l.Value == DNull {
		return true
	}
	_, err := coerceDatum(l.Value, t, nil)
	return err == nil
}

// Eval implements the TypedExpr interface: it returns the value converted to
// the literal's declared type.
func (l *Literal) Eval(ctx *EvalContext) (Datum, error) {
	return coerceDatum(l.Value, l.typ, ctx)
}

// coerceDatum converts d to type t, or errors if the conversion is not
// admissible for this value. ctx is only consulted for the session location
// and may be nil.
func coerceDatum(d Datum, t *types.T, ctx *EvalContext) (Datum, error) {
	if d == DNull || t == types.Unknown || d.ResolvedType() == t {
		return d, nil
	}
	switch v := d.(type) {
	case DInt:
		switch t {
		case types.Float:
			return DFloat(v), nil
		case types.Decimal:
			dd := &DDecimal{}
			dd.SetInt64(int64(v))
			return dd, nil
		}
	case DFloat:
		switch t {
		case types.Decimal:
			dd := &DDecimal{}
			if _, err := dd.SetFloat64(float64(v)); err != nil {
				return nil, err
			}
			return dd, nil
		case types.Int:
			if math.Trunc(float64(v)) == float64(v) &&
				float64(v) >= math.MinInt64 && float64(v) <= math.MaxInt64 {
				return DInt(v), nil
			}
		}
	case *DDecimal:
		switch t {
		case types.Float:
			f, err := v.Float64()
			if err != nil {
				return nil, err
			}
			return DFloat(f), nil
		case types.Int:
			// Only integral values convert.
			if i, err := v.Decimal.Int64(); err == nil {
				return DInt(i), nil
			}
		}
	case *DString:
		switch t {
		case types.Bytes:
			return NewDBytes(DBytes(*v)), nil
		case types.Date, types.Timestamp:
			return ParseStringAs(t, string(*v), ctx.location())
		}
	case DDate:
		if t == types.Timestamp {
			return &DTimestamp{Time: v.Time()}, nil
		}
	}
	return nil, errors.AssertionFailedf("cannot convert %s to type %s", d, t)
}
