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

// Package pgcode defines the PostgreSQL 5-character SQLSTATE error codes
// used by this compiler.
package pgcode

// Code is a wrapper around a SQLSTATE string.
type Code struct {
	code string
}

// MakeCode converts a SQLSTATE string into a Code.
func MakeCode(code string) Code { return Code{code} }

// String returns the underlying SQLSTATE.
func (c Code) String() string { return c.code }

// SafeValue implements the redact.SafeValue interface.
func (c Code) SafeValue() {}

var (
	// Syntax indicates a literal or expression that failed to parse.
	Syntax = MakeCode("42601")
	// UndefinedFunction indicates a call to a function name with no
	// registered definition.
	UndefinedFunction = MakeCode("42883")
	// InvalidTextRepresentation indicates a string that does not parse as a
	// value of the requested type.
	InvalidTextRepresentation = MakeCode("22P02")
	// NumericValueOutOfRange indicates a numeric argument outside the range
	// an operation can represent.
	NumericValueOutOfRange = MakeCode("22003")
	// DatatypeMismatch indicates an argument that violates its declared
	// type, constancy or enumeration constraint.
	DatatypeMismatch = MakeCode("42804")
	// Grouping indicates an aggregate used where plain evaluation was
	// expected.
	Grouping = MakeCode("42803")
	// InvalidFunctionDefinition indicates a malformed built-in function
	// declaration, detected while the registry is built.
	InvalidFunctionDefinition = MakeCode("42P13")
	// IndeterminateDatatype indicates a placeholder whose type was inferred
	// differently at two positions.
	IndeterminateDatatype = MakeCode("42P18")
	// Internal indicates an unexpected failure; it wraps errors that do not
	// originate from the compiler itself.
	Internal = MakeCode("XX000")
	// Uncategorized is the code reported for errors that carry no code.
	Uncategorized = MakeCode("XXUUU")
)
