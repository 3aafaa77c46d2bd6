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
	"github.com/cockroachdb/errors"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
)

// New creates an error with a pg code.
func New(code pgcode.Code, msg string) error {
	return WithCode(errors.NewWithDepth(1, msg), code)
}

// Newf creates an error with a pg code and a formatted message.
func Newf(code pgcode.Code, format string, args ...interface{}) error {
	return WithCode(errors.NewWithDepthf(1, format, args...), code)
}

// Wrap wraps an error and adds a pg error code. Only the code is added if
// the message is empty.
func Wrap(err error, code pgcode.Code, msg string) error {
	if err == nil {
		return nil
	}
	if msg == "" {
		return WithCode(err, code)
	}
	return WithCode(errors.WrapWithDepthf(1, err, "%s", msg), code)
}

// Wrapf wraps an error, adding a pg code and a formatted message prefix.
func Wrapf(err error, code pgcode.Code, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return WithCode(errors.WrapWithDepthf(1, err, format, args...), code)
}
