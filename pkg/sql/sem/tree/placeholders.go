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
	"fmt"

	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// PlaceholderIdx is the 0-based index of a query placeholder. Placeholders
// are numbered $1, $2, ... in the query text.
type PlaceholderIdx int

func (idx PlaceholderIdx) String() string { return fmt.Sprintf("$%d", int(idx)+1) }

// Placeholder represents a parameter whose value is supplied at execution
// time. Its type is unknown at parse time; argument resolution may infer one
// and record it in the enclosing SemaContext.
type Placeholder struct {
	Idx PlaceholderIdx
}

// ResolvedType implements the TypedExpr interface. It returns nil: an
// inferred type lives in the compilation's PlaceholderInfo, not on the node.
func (p *Placeholder) ResolvedType() *types.T { return nil }

// Eval implements the TypedExpr interface.
func (p *Placeholder) Eval(_ *EvalContext) (Datum, error) {
	return nil, pgerror.Newf(pgcode.IndeterminateDatatype,
		"no value provided for placeholder: %s", p.Idx)
}

func (p *Placeholder) String() string { return p.Idx.String() }

// PlaceholderInfo records the metadata inferred for each placeholder of a
// single statement compilation: the type, and when the inference came from a
// declared default, the default's value as well. It is owned by exactly one
// in-flight compilation and must not be shared.
type PlaceholderInfo struct {
	Types  []*types.T
	Values []Datum
}

// Init resets the info to hold n placeholders with nothing inferred.
func (p *PlaceholderInfo) Init(n int) {
	p.Types = make([]*types.T, n)
	p.Values = make([]Datum, n)
}

// SetType records an inferred type. Recording the same type twice is a
// no-op; recording a different one is an error.
func (p *PlaceholderInfo) SetType(idx PlaceholderIdx, typ *types.T) error {
	if t := p.Types[idx]; t != nil && t != typ {
		return pgerror.Newf(pgcode.IndeterminateDatatype,
			"placeholder %s already has type %s, cannot assign %s", idx, t, typ)
	}
	p.Types[idx] = typ
	return nil
}

// Type returns the inferred type of the placeholder, or false if none has
// been recorded.
func (p *PlaceholderInfo) Type(idx PlaceholderIdx) (*types.T, bool) {
	t := p.Types[idx]
	return t, t != nil
}

// SetValue records a value inferred from a declared default, together with
// its type.
func (p *PlaceholderInfo) SetValue(idx PlaceholderIdx, v Datum, typ *types.T) error {
	if err := p.SetType(idx, typ); err != nil {
		return err
	}
	p.Values[idx] = v
	return nil
}

// Value returns the inferred default value of the placeholder, or false if
// none has been recorded.
func (p *PlaceholderInfo) Value(idx PlaceholderIdx) (Datum, bool) {
	v := p.Values[idx]
	return v, v != nil
}

// SemaContext holds the state the semantic analysis of one statement needs.
// Each statement compilation gets its own instance.
type SemaContext struct {
	// Placeholders relates placeholder indexes to their inferred metadata.
	Placeholders PlaceholderInfo
}

// MakeSemaContext initializes a SemaContext for a statement with
// numPlaceholders placeholders.
func MakeSemaContext(numPlaceholders int) SemaContext {
	var sc SemaContext
	sc.Placeholders.Init(numPlaceholders)
	return sc
}
