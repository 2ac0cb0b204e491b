// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package trace reads the textual form of traces and global memory orders.
package trace

import (
	"fmt"
	"strings"

	"rvord/core"
)

// ParseNumber parses a '#'-prefixed hexadecimal number of at most width bits.
// The separators ' and _ are ignored. A leading '-' negates the number in
// two's complement.
func ParseNumber(s string, width int) (uint32, error) {
	if width <= 0 || width > 32 {
		return 0, fmt.Errorf("invalid number width %d", width)
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("number '%s' doesn't start with '#'", s)
	}
	s = s[1:]
	if s == "" {
		return 0, fmt.Errorf("number is empty")
	}

	var n uint64
	for _, c := range s {
		if c == '\'' || c == '_' {
			continue
		}
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit '%c'", c)
		}
		n = n<<4 | d
		if n >= 1<<width {
			return 0, fmt.Errorf("number is larger than %d bits", width)
		}
	}
	if neg {
		if n >= 1<<(width-1) {
			return 0, fmt.Errorf("number is too large to negate")
		}
		return ^uint32(n) + 1, nil
	}
	return uint32(n), nil
}

// FormatNumber renders x as #XXXX'XXXX.
func FormatNumber(x uint32) string {
	return core.FormatValue(x)
}

var abiRegisters = map[string]core.Register{
	"zero": 0,
	"ra":   1,
	"sp":   2,
	"gp":   3,
	"tp":   4,
	"fp":   8,
}

// ParseRegister parses x0..x31 and the ABI register names.
func ParseRegister(s string) (core.Register, error) {
	if r, ok := abiRegisters[s]; ok {
		return r, nil
	}
	if len(s) < 2 || !strings.ContainsRune("xtsa", rune(s[0])) {
		return 0, fmt.Errorf("invalid register '%s'", s)
	}
	var n uint32
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid decimal digit '%c' in register '%s'", c, s)
		}
		n = n*10 + uint32(c-'0')
		if n > 31 {
			return 0, fmt.Errorf("no such register '%s'", s)
		}
	}
	switch {
	case s[0] == 'x':
		return core.Register(n), nil
	case s[0] == 't' && n <= 2:
		return core.Register(5 + n), nil
	case s[0] == 's' && n <= 1:
		return core.Register(8 + n), nil
	case s[0] == 'a' && n <= 7:
		return core.Register(10 + n), nil
	case s[0] == 's' && n <= 11:
		return core.Register(18 + n - 2), nil
	case s[0] == 't' && n <= 6:
		return core.Register(28 + n - 3), nil
	default:
		return 0, fmt.Errorf("no such register '%s'", s)
	}
}
