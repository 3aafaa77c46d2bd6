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
	"strings"

	"github.com/cockroachdb/errors"
)

// TimeUnit is the granularity argument of the date/time functions.
type TimeUnit int

// The variants, from coarsest to finest.
const (
	Year TimeUnit = iota
	Month
	Day
	Hour
	Minute
	Second
)

var timeUnitNames = [...]string{"YEAR", "MONTH", "DAY", "HOUR", "MINUTE", "SECOND"}

func (u TimeUnit) String() string { return timeUnitNames[u] }

// TimeUnitFromString maps the upper-cased form of s to a TimeUnit.
func TimeUnitFromString(s string) (TimeUnit, error) {
	for i, name := range timeUnitNames {
		if name == strings.ToUpper(s) {
			return TimeUnit(i), nil
		}
	}
	return 0, errors.Newf("unknown time unit %q", s)
}

// SortOrder is the ordering argument of the order-sensitive aggregates.
type SortOrder int

// The variants.
const (
	Ascending SortOrder = iota
	Descending
)

var sortOrderNames = [...]string{"ASC", "DESC"}

func (o SortOrder) String() string { return sortOrderNames[o] }

// SortOrderFromString maps the upper-cased form of s to a SortOrder.
func SortOrderFromString(s string) (SortOrder, error) {
	for i, name := range sortOrderNames {
		if name == strings.ToUpper(s) {
			return SortOrder(i), nil
		}
	}
	return 0, errors.Newf("unknown sort order %q", s)
}

func initEnumerations() {
	registerEnumeration("TimeUnit", timeUnitNames[:])
	registerEnumeration("SortOrder", sortOrderNames[:])
}
