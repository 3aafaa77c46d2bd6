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
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// secondsPerDay is used for the DDate day-count representation.
const secondsPerDay = 24 * 60 * 60

// A Datum is a SQL value. Datums are immutable and directly usable as
// constant expression nodes.
type Datum interface {
	TypedExpr
	// Compare returns -1 if the receiver is less than other, 0 if the
	// receiver is equal to other and +1 if the receiver is greater than
	// other. NULL compares less than every non-NULL value.
	Compare(other Datum) int
}

// DNull is the NULL Datum.
var DNull Datum = dNull{}

type dNull struct{}

func (dNull) ResolvedType() *types.T             { return types.Unknown }
func (dNull) Eval(_ *EvalContext) (Datum, error) { return DNull, nil }
func (dNull) String() string                     { return "NULL" }
func (dNull) Compare(other Datum) int {
	if other == DNull {
		return 0
	}
	return -1
}

// DBool is the boolean Datum.
type DBool bool

// ParseDBool parses and returns the Datum value represented by the provided
// string, or an error if parsing is unsuccessful.
func ParseDBool(s string) (Datum, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1":
		return DBool(true), nil
	case "false", "f", "0":
		return DBool(false), nil
	}
	return nil, makeParseError(s, types.Bool, nil)
}

func (d DBool) ResolvedType() *types.T             { return types.Bool }
func (d DBool) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d DBool) String() string {
	if d {
		return "true"
	}
	return "false"
}
func (d DBool) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(DBool)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	if !d && v {
		return -1
	}
	if d && !v {
		return 1
	}
	return 0
}

// DInt is the int Datum.
type DInt int64

// ParseDInt parses and returns the *DInt Datum value represented by the
// provided string, or an error if parsing is unsuccessful.
func ParseDInt(s string) (Datum, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, makeParseError(s, types.Int, err)
	}
	return DInt(i), nil
}

func (d DInt) ResolvedType() *types.T             { return types.Int }
func (d DInt) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d DInt) String() string                     { return strconv.FormatInt(int64(d), 10) }
func (d DInt) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	var v DInt
	switch t := other.(type) {
	case DInt:
		v = t
	default:
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	if d < v {
		return -1
	}
	if d > v {
		return 1
	}
	return 0
}

// DFloat is the float Datum.
type DFloat float64

// ParseDFloat parses and returns the *DFloat Datum value represented by the
// provided string, or an error if parsing is unsuccessful.
func ParseDFloat(s string) (Datum, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, makeParseError(s, types.Float, err)
	}
	return DFloat(f), nil
}

func (d DFloat) ResolvedType() *types.T             { return types.Float }
func (d DFloat) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d DFloat) String() string                     { return strconv.FormatFloat(float64(d), 'g', -1, 64) }
func (d DFloat) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(DFloat)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	if d < v {
		return -1
	}
	if d > v {
		return 1
	}
	return 0
}

// DDecimal is the decimal Datum.
type DDecimal struct {
	apd.Decimal
}

// ParseDDecimal parses and returns the *DDecimal Datum value represented by
// the provided string, or an error if parsing is unsuccessful.
func ParseDDecimal(s string) (Datum, error) {
	dd := &DDecimal{}
	if _, _, err := dd.SetString(strings.TrimSpace(s)); err != nil {
		return nil, makeParseError(s, types.Decimal, err)
	}
	return dd, nil
}

func (d *DDecimal) ResolvedType() *types.T             { return types.Decimal }
func (d *DDecimal) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d *DDecimal) String() string                     { return d.Decimal.String() }
func (d *DDecimal) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(*DDecimal)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	return d.Cmp(&v.Decimal)
}

// DString is the string Datum.
type DString string

// NewDString is a helper routine to create a *DString initialized from its
// argument.
func NewDString(s string) *DString {
	d := DString(s)
	return &d
}

func (d *DString) ResolvedType() *types.T             { return types.String }
func (d *DString) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d *DString) String() string {
	return "'" + strings.ReplaceAll(string(*d), "'", "''") + "'"
}
func (d *DString) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(*DString)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	return strings.Compare(string(*d), string(*v))
}

// DBytes is the bytes Datum. The underlying type is a string because we want
// the immutability, but this may contain arbitrary bytes.
type DBytes string

// NewDBytes is a helper routine to create a *DBytes initialized from its
// argument.
func NewDBytes(d DBytes) *DBytes { return &d }

func (d *DBytes) ResolvedType() *types.T             { return types.Bytes }
func (d *DBytes) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d *DBytes) String() string                     { return fmt.Sprintf("b'%s'", string(*d)) }
func (d *DBytes) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(*DBytes)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	return strings.Compare(string(*d), string(*v))
}

// DDate is the date Datum, stored as the number of days since the Unix
// epoch.
type DDate int64

const dateFormat = "2006-01-02"

// ParseDDate parses and returns the *DDate Datum value represented by the
// provided string in the provided location, or an error if parsing is
// unsuccessful.
func ParseDDate(s string, loc *time.Location) (Datum, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return nil, makeParseError(s, types.Date, err)
	}
	return DDate(t.Unix() / secondsPerDay), nil
}

// NewDDateFromTime constructs a *DDate from a time.Time.
func NewDDateFromTime(t time.Time) DDate {
	year, month, day := t.Date()
	return DDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// Time returns the midnight UTC time for the date.
func (d DDate) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d DDate) ResolvedType() *types.T             { return types.Date }
func (d DDate) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d DDate) String() string                     { return "'" + d.Time().Format(dateFormat) + "'" }
func (d DDate) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(DDate)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	if d < v {
		return -1
	}
	if d > v {
		return 1
	}
	return 0
}

// DTimestamp is the timestamp Datum.
type DTimestamp struct {
	time.Time
}

var timestampFormats = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	dateFormat,
}

// ParseDTimestamp parses and returns the *DTimestamp Datum value represented
// by the provided string in the provided location, or an error if parsing is
// unsuccessful.
func ParseDTimestamp(s string, loc *time.Location) (Datum, error) {
	if loc == nil {
		loc = time.UTC
	}
	str := strings.TrimSpace(s)
	for _, format := range timestampFormats {
		if t, err := time.ParseInLocation(format, str, loc); err == nil {
			return &DTimestamp{Time: t}, nil
		}
	}
	return nil, makeParseError(s, types.Timestamp, nil)
}

func (d *DTimestamp) ResolvedType() *types.T             { return types.Timestamp }
func (d *DTimestamp) Eval(_ *EvalContext) (Datum, error) { return d, nil }
func (d *DTimestamp) String() string {
	return "'" + d.UTC().Format("2006-01-02 15:04:05.999999999") + "'"
}
func (d *DTimestamp) Compare(other Datum) int {
	if other == DNull {
		return 1
	}
	v, ok := other.(*DTimestamp)
	if !ok {
		panic(makeUnsupportedComparisonMessage(d, other))
	}
	if d.Before(v.Time) {
		return -1
	}
	if d.After(v.Time) {
		return 1
	}
	return 0
}

func makeParseError(s string, typ *types.T, err error) error {
	if err != nil {
		return pgerror.Wrapf(err, pgcode.InvalidTextRepresentation,
			"could not parse %q as type %s", s, typ)
	}
	return pgerror.Newf(pgcode.InvalidTextRepresentation,
		"could not parse %q as type %s", s, typ)
}

func makeUnsupportedComparisonMessage(d1, d2 Datum) error {
	return errors.AssertionFailedf("unsupported comparison: %s to %s",
		d1.ResolvedType(), d2.ResolvedType())
}
