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
	"github.com/manukranthk/phoenix/pkg/sql/parser"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/sem/tree"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// argDecl is the raw per-argument declaration of a builtin. It is turned
// into an immutable tree.ArgumentInfo when the registry is built.
type argDecl struct {
	// Types lists the acceptable types in declaration order; empty accepts
	// any type.
	Types []*types.T
	// Constant requires the argument to be a literal.
	Constant bool
	// Default, when non-empty, is a SQL literal substituted for an omitted
	// argument.
	Default string
	// Enumeration, when non-empty, names a registered enumeration whose
	// variant names restrict the argument. It forces a constant string
	// argument and excludes Default.
	Enumeration string
}

// builtinDefinition is the raw declaration of one builtin.
type builtinDefinition struct {
	args []argDecl
	// proto is a typed nil of the function's compiled expression variant;
	// membership in the aggregate family is derived from it.
	proto tree.FunctionExpression
	// Exactly one of ctor and nodeCtor is set.
	ctor     tree.ExprConstructor
	nodeCtor tree.CallNodeConstructor
}

// enumerations maps registered enumeration names to their closed variant
// sets. Variant names are case-sensitive identifiers, upper-case by
// convention.
var enumerations = map[string][]string{}

func registerEnumeration(name string, variants []string) {
	if _, ok := enumerations[name]; ok {
		panic("duplicate enumeration: " + name)
	}
	enumerations[name] = variants
}

// makeFunctionDefinition builds the immutable definition for one declared
// builtin. Failures are configuration errors: the declaration itself is
// malformed, and the caller treats them as fatal.
func makeFunctionDefinition(
	name string, def builtinDefinition,
) (*tree.FunctionDefinition, error) {
	if (def.ctor == nil) == (def.nodeCtor == nil) {
		return nil, pgerror.Newf(pgcode.InvalidFunctionDefinition,
			"%s: exactly one constructor kind must be bound", name)
	}
	args := make([]tree.ArgumentInfo, len(def.args))
	for i, d := range def.args {
		info, err := makeArgumentInfo(d)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.InvalidFunctionDefinition,
				"%s argument %d", name, i+1)
		}
		args[i] = info
	}
	var ctor tree.FunctionConstructor
	if def.ctor != nil {
		ctor = def.ctor
	} else {
		ctor = def.nodeCtor
	}
	return tree.NewFunctionDefinition(name, args, def.proto, ctor)
}

// makeArgumentInfo resolves one raw argument declaration. An enumeration
// declaration yields a constant string argument restricted to the
// enumeration's variant names; otherwise a declared default is parsed as a
// SQL literal and coerced, in declaration order, to the first allowed type
// that accepts it.
func makeArgumentInfo(d argDecl) (tree.ArgumentInfo, error) {
	if d.Enumeration != "" {
		variants, ok := enumerations[d.Enumeration]
		if !ok {
			return tree.ArgumentInfo{}, pgerror.Newf(pgcode.InvalidFunctionDefinition,
				"%q does not resolve to a registered enumeration", d.Enumeration)
		}
		values := make(map[string]struct{}, len(variants))
		for _, v := range variants {
			values[v] = struct{}{}
		}
		return tree.ArgumentInfo{
			AllowedTypes:  []*types.T{types.String},
			Constant:      true,
			AllowedValues: values,
		}, nil
	}

	info := tree.ArgumentInfo{
		AllowedTypes: d.Types,
		Constant:     d.Constant,
	}
	if d.Default == "" {
		return info, nil
	}
	lit, err := parser.ParseLiteral(d.Default)
	if err != nil {
		return tree.ArgumentInfo{}, err
	}
	if len(d.Types) == 0 {
		// No declared types: the default keeps its natural type.
		info.Default = lit
		return info, nil
	}
	for _, t := range d.Types {
		if lit.CoercibleTo(t) {
			info.Default = tree.NewTypedLiteral(lit.Value, t)
			return info, nil
		}
	}
	return tree.ArgumentInfo{}, pgerror.Newf(pgcode.InvalidFunctionDefinition,
		"unable to coerce default value %q to any of the allowed types %v",
		d.Default, info.AllowedTypes)
}
