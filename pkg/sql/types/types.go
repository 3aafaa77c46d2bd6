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

// Package types defines the closed set of SQL scalar types understood by the
// expression compiler, together with the coercibility rules between them.
package types

import (
	"github.com/lib/pq/oid"
)

// T is a SQL scalar type. The package-level variables below are the only
// instances; they are shared read-only and compared by pointer identity.
type T struct {
	name string
	oid  oid.Oid
}

var (
	// Unknown is the type of an expression whose type cannot be determined
	// yet, e.g. a literal NULL or an unbound placeholder.
	Unknown = &T{name: "unknown", oid: oid.T_unknown}
	// Bool is the type of a boolean.
	Bool = &T{name: "bool", oid: oid.T_bool}
	// Int is the type of a 64-bit signed integer.
	Int = &T{name: "int", oid: oid.T_int8}
	// Float is the type of a 64-bit floating point number.
	Float = &T{name: "float", oid: oid.T_float8}
	// Decimal is the type of an arbitrary-precision decimal.
	Decimal = &T{name: "decimal", oid: oid.T_numeric}
	// String is the type of a character string.
	String = &T{name: "string", oid: oid.T_text}
	// Bytes is the type of a byte string.
	Bytes = &T{name: "bytes", oid: oid.T_bytea}
	// Date is the type of a calendar date.
	Date = &T{name: "date", oid: oid.T_date}
	// Timestamp is the type of a date+time value.
	Timestamp = &T{name: "timestamp", oid: oid.T_timestamp}
)

// Scalar contains all concrete types, in the canonical order used when a
// "first" type must be picked from an unordered collection.
var Scalar = []*T{
	Bool,
	Int,
	Float,
	Decimal,
	String,
	Bytes,
	Date,
	Timestamp,
}

// OidToType maps Postgres object IDs to types. We export the map instead of
// a method so that other packages can iterate over the map directly.
var OidToType = map[oid.Oid]*T{
	oid.T_unknown:   Unknown,
	oid.T_bool:      Bool,
	oid.T_int8:      Int,
	oid.T_float8:    Float,
	oid.T_numeric:   Decimal,
	oid.T_text:      String,
	oid.T_bytea:     Bytes,
	oid.T_date:      Date,
	oid.T_timestamp: Timestamp,
}

func (t *T) String() string { return t.name }

// SQLName returns the type's name as used in diagnostics.
func (t *T) SQLName() string { return t.name }

// Oid returns the type's Postgres object ID.
func (t *T) Oid() oid.Oid { return t.oid }

// SafeValue implements the redact.SafeValue interface. Type names never
// contain user data.
func (t *T) SafeValue() {}

type coercionKey struct {
	from, to oid.Oid
}

// coercions enumerates the valid implicit conversions between types,
// excluding identity and conversions from Unknown, which are always valid.
// The value-sensitive refinements (e.g. an integral decimal literal used as
// an int) live with the literal model, which can see the value.
var coercions = map[coercionKey]struct{}{}

func init() {
	for _, c := range []coercionKey{
		{oid.T_int8, oid.T_float8},
		{oid.T_int8, oid.T_numeric},
		{oid.T_float8, oid.T_numeric},
		{oid.T_numeric, oid.T_float8},
		{oid.T_date, oid.T_timestamp},
		{oid.T_text, oid.T_bytea},
	} {
		coercions[c] = struct{}{}
	}
}

// CoercibleTo reports whether a value of type from may be used where a value
// of type to is expected, ignoring the value itself. Unknown coerces to
// everything: a NULL is valid at any type.
func CoercibleTo(from, to *T) bool {
	if from == to || from == Unknown {
		return true
	}
	_, ok := coercions[coercionKey{from.oid, to.oid}]
	return ok
}
