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

// Package parser contains the SQL literal parser. It is used when the
// built-in function registry resolves declared argument defaults, and by
// tests that need literal expressions from text.
package parser

import (
	"strings"

	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgcode"
	"github.com/manukranthk/phoenix/pkg/sql/pgwire/pgerror"
	"github.com/manukranthk/phoenix/pkg/sql/sem/tree"
	"github.com/manukranthk/phoenix/pkg/sql/types"
)

// ParseLiteral parses a SQL literal: a single-quoted string (with ''
// escaping a quote), a numeric literal, TRUE, FALSE or NULL. The returned
// literal carries the value's natural type; NULL is untyped.
func ParseLiteral(s string) (*tree.Literal, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return nil, pgerror.New(pgcode.Syntax, "empty literal")
	}

	if str[0] == '\'' {
		v, err := parseQuotedString(str)
		if err != nil {
			return nil, err
		}
		return tree.NewTypedLiteral(tree.NewDString(v), types.String), nil
	}

	switch strings.ToUpper(str) {
	case "NULL":
		return tree.NewNullLiteral(nil), nil
	case "TRUE":
		return tree.NewTypedLiteral(tree.DBool(true), types.Bool), nil
	case "FALSE":
		return tree.NewTypedLiteral(tree.DBool(false), types.Bool), nil
	}

	// Numeric literal: an integer when it fits, a decimal otherwise.
	if d, err := tree.ParseDInt(str); err == nil {
		return tree.NewTypedLiteral(d, types.Int), nil
	}
	d, err := tree.ParseDDecimal(str)
	if err != nil {
		return nil, pgerror.Newf(pgcode.Syntax, "could not parse %q as a literal", s)
	}
	return tree.NewTypedLiteral(d, types.Decimal), nil
}

func parseQuotedString(s string) (string, error) {
	if len(s) < 2 || s[len(s)-1] != '\'' {
		return "", pgerror.Newf(pgcode.Syntax, "unterminated string literal %s", s)
	}
	body := s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\'' {
			if i+1 >= len(body) || body[i+1] != '\'' {
				return "", pgerror.Newf(pgcode.Syntax, "unterminated string literal %s", s)
			}
			i++
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}
