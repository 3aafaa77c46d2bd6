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
	"time"

	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// ParseStringAs reads s as type t. If t is Bytes or String, s is used
// unchanged. Otherwise s is parsed with the given type's parse func.
func ParseStringAs(t *types.T, s string, loc *time.Location) (Datum, error) {
	switch t {
	case types.Bytes:
		return NewDBytes(DBytes(s)), nil
	case types.String:
		return NewDString(s), nil
	case types.Bool:
		return ParseDBool(s)
	case types.Int:
		return ParseDInt(s)
	case types.Float:
		return ParseDFloat(s)
	case types.Decimal:
		return ParseDDecimal(s)
	case types.Date:
		return ParseDDate(s, loc)
	case types.Timestamp:
		return ParseDTimestamp(s, loc)
	default:
		return nil, errors.AssertionFailedf("unknown type %s", t)
	}
}
