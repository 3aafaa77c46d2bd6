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

package pgerror

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// fullErrorFromPQ detects if the error is a pq.Error, i.e. one received from
// a remote server over the wire, and if so formats it according to the scheme
// used for FullError.
func fullErrorFromPQ(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	s := fmt.Sprintf("(%s) pq: %s", pqErr.Code, pqErr.Message)
	if pqErr.Hint != "" {
		s += "\nHINT: " + pqErr.Hint
	}
	if pqErr.Detail != "" {
		s += "\nDETAIL: " + pqErr.Detail
	}
	return s, true
}
