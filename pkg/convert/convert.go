// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides strict integer parsing for query and path parameters.

A false ok means the input was empty or malformed; callers decide whether that
is a fallback or an error.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntStrict parses a trimmed decimal integer. ok is false for empty or malformed input.
func ToIntStrict(str string) (value int, ok bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToInt64Strict is [ToIntStrict] for 64-bit identifiers.
func ToInt64Strict(str string) (value int64, ok bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
