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

// Package pgerror attaches SQLSTATE codes to errors. Every error surfaced by
// the expression compiler carries a pgcode; errors reaching a client without
// one are reported as uncategorized.
package pgerror

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
)

// withCode decorates an error with a pgcode. The innermost code in a chain
// wins: wrapping an already-coded error with a new code does not hide the
// original code from GetPGCode.
type withCode struct {
	cause error
	code  pgcode.Code
}

var _ error = (*withCode)(nil)
var _ fmt.Formatter = (*withCode)(nil)

func (w *withCode) Error() string { return w.cause.Error() }
func (w *withCode) Unwrap() error { return w.cause }

func (w *withCode) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

func (w *withCode) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("code: %s", redact.Safe(w.code.String()))
	}
	return w.cause
}

// WithCode decorates err with the given code. The code is only visible via
// GetPGCode; the message is unchanged.
func WithCode(err error, code pgcode.Code) error {
	if err == nil {
		return nil
	}
	return &withCode{cause: err, code: code}
}

// GetPGCode returns the innermost pgcode in err's chain, or
// pgcode.Uncategorized if there is none.
func GetPGCode(err error) pgcode.Code {
	code := pgcode.Uncategorized
	for ; err != nil; err = errors.UnwrapOnce(err) {
		if w, ok := err.(*withCode); ok {
			code = w.code
		}
	}
	return code
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code pgcode.Code) bool {
	for ; err != nil; err = errors.UnwrapOnce(err) {
		if w, ok := err.(*withCode); ok && w.code == code {
			return true
		}
	}
	return false
}

// IsSQLError reports whether err carries any pgcode at all, i.e. whether it
// originated from (or was already classified by) the compiler.
func IsSQLError(err error) bool {
	for ; err != nil; err = errors.UnwrapOnce(err) {
		if _, ok := err.(*withCode); ok {
			return true
		}
	}
	return false
}

// FullError renders err the way it would reach a SQL client, code included.
func FullError(err error) string {
	if s, ok := fullErrorFromPQ(err); ok {
		return s
	}
	return fmt.Sprintf("(%s) %s", GetPGCode(err), err)
}
