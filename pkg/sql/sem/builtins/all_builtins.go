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

// Package builtins declares the built-in SQL functions and populates the
// function registry at process start.
package builtins

import (
	"sort"

	"github.com/manukranthk/phoenix/pkg/sql/sem/tree"
)

// AllBuiltinNames is an array containing all the built-in function names,
// sorted in alphabetical order. This can be used for a deterministic walk
// through the registry.
var AllBuiltinNames []string

// builtins collects the built-in declarations before they are turned into
// definitions. Populated by the per-family init functions; fixed once init()
// completes.
var builtins = map[string]builtinDefinition{}

func init() {
	initEnumerations()
	initScalarBuiltins()
	initAggregateBuiltins()

	AllBuiltinNames = make([]string, 0, len(builtins))
	tree.FunDefs = make(map[string]*tree.FunctionDefinition)
	for name, def := range builtins {
		fDef, err := makeFunctionDefinition(name, def)
		if err != nil {
			// A malformed declaration is a programming error; it must never
			// survive process start.
			panic(err)
		}
		tree.FunDefs[fDef.Name] = fDef
		AllBuiltinNames = append(AllBuiltinNames, fDef.Name)
	}

	sort.Strings(AllBuiltinNames)
}

func registerBuiltin(name string, def builtinDefinition) {
	if _, ok := builtins[name]; ok {
		panic("duplicate builtin: " + name)
	}
	builtins[name] = def
}
