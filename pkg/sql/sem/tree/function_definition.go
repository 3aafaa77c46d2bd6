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
	"sort"
	"strings"

	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// ArgumentInfo describes the constraints on one declared argument of a
// built-in function. Built once at registry-build time, immutable and shared
// read-only by every call site thereafter.
type ArgumentInfo struct {
	// AllowedTypes lists the acceptable argument types in declaration
	// order; empty accepts any type.
	AllowedTypes []*types.T
	// Constant requires the argument to be a literal.
	Constant bool
	// AllowedValues, when non-empty, restricts a literal argument's
	// upper-cased string form to this set. Implies Constant and a
	// string-typed argument.
	AllowedValues map[string]struct{}
	// Default is substituted for an omitted or unbound argument. Already
	// coerced to one of AllowedTypes.
	Default *Literal
}

// FunctionClass specifies the class of the built-in function.
type FunctionClass int

const (
	// NormalClass is a regular built-in function.
	NormalClass FunctionClass = iota
	// AggregateClass is a builtin aggregate function.
	AggregateClass
)

// FunctionConstructor builds the compiled expression for a resolved call. A
// definition binds exactly one of the two concrete kinds below.
type FunctionConstructor interface {
	construct(def *FunctionDefinition, children []TypedExpr) (FunctionExpression, error)
}

// ExprConstructor builds the compiled function expression directly from the
// resolved children. This is the common case.
type ExprConstructor func(children []TypedExpr) (FunctionExpression, error)

func (c ExprConstructor) construct(
	_ *FunctionDefinition, children []TypedExpr,
) (FunctionExpression, error) {
	return c(children)
}

// CallSiteNode is a specialized call node for functions that need custom
// call-site behavior, e.g. picking an expression variant based on the
// resolved argument types. It knows how to build its own expression.
type CallSiteNode interface {
	BuildExpression() (FunctionExpression, error)
}

// CallNodeConstructor builds a CallSiteNode; the definition then obtains the
// compiled expression from the node.
type CallNodeConstructor func(def *FunctionDefinition, children []TypedExpr) (CallSiteNode, error)

func (c CallNodeConstructor) construct(
	def *FunctionDefinition, children []TypedExpr,
) (FunctionExpression, error) {
	node, err := c(def, children)
	if err != nil {
		return nil, err
	}
	return node.BuildExpression()
}

// FunctionDefinition describes one built-in function: its name, argument
// constraints and the constructor for its compiled expression variant.
// Definitions are created once when the registry is built and shared
// read-only across arbitrarily many concurrent compilations.
type FunctionDefinition struct {
	// Name is the normalized function name.
	Name string
	// Args holds the argument descriptors, in order.
	Args []ArgumentInfo
	// Class distinguishes aggregates from regular functions.
	Class FunctionClass
	// RequiredArgCount is the number of arguments a caller must supply;
	// defaults cover only a trailing run of arguments.
	RequiredArgCount int

	ctor FunctionConstructor
}

// NewFunctionDefinition builds a definition. The prototype is a typed nil of
// the function's compiled expression variant; its membership in the
// aggregate family determines the class.
func NewFunctionDefinition(
	name string, args []ArgumentInfo, prototype FunctionExpression, ctor FunctionConstructor,
) (*FunctionDefinition, error) {
	if ctor == nil {
		return nil, pgerror.Newf(pgcode.InvalidFunctionDefinition,
			"%s: no constructor bound", name)
	}
	// Defaults apply to a trailing run only: once a later argument has a
	// default, everything strictly before it stays required.
	requiredArgCount := 0
	for i := range args {
		if requiredArgCount < i && args[i].Default != nil {
			requiredArgCount = i
		}
	}
	class := NormalClass
	if _, ok := prototype.(AggregateExpr); ok {
		class = AggregateClass
	}
	return &FunctionDefinition{
		Name:             NormalizeName(name),
		Args:             args,
		Class:            class,
		RequiredArgCount: requiredArgCount,
		ctor:             ctor,
	}, nil
}

// IsAggregate reports whether the function's compiled expression variant
// belongs to the aggregate family.
func (def *FunctionDefinition) IsAggregate() bool { return def.Class == AggregateClass }

func (def *FunctionDefinition) String() string { return def.Name }

// FunDefs holds the pre-allocated FunctionDefinition instances for every
// built-in function. Initialized by builtins.init().
var FunDefs map[string]*FunctionDefinition

// ResolveFunction looks up a function name in the built-in registry.
func ResolveFunction(name string) (*FunctionDefinition, error) {
	if def, ok := FunDefs[NormalizeName(name)]; ok {
		return def, nil
	}
	return nil, pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", name)
}

// formatTypes renders an allowed-type list for diagnostics.
func formatTypes(typs []*types.T) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range typs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// formatValues renders an allowed-value set for diagnostics, sorted for
// determinism.
func formatValues(values map[string]struct{}) string {
	sorted := make([]string, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)
	return "[" + strings.Join(sorted, ", ") + "]"
}
