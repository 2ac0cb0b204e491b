// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rvord/core"
	"rvord/logger"
)

const (
	valueWidth = 32
	// HartSeparator is the line that starts the program of the next hart.
	HartSeparator = "-"
)

var argCount = map[core.Kind]int{
	core.KindLoad:  3,
	core.KindStore: 2,
	core.KindAmo:   6,
	core.KindLR:    4,
	core.KindSC:    3,
	core.KindCalc:  4,
	core.KindFence: 2,
}

// ParseOp parses one operation line, eg, "load x1 x2 #0000'0041".
func ParseOp(line string) (core.Op, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return core.Op{}, fmt.Errorf("missing kind")
	}
	kind := core.ParseKind(tokens[0])
	if kind == core.InvalidKind {
		return core.Op{}, fmt.Errorf("unknown operation '%s'", tokens[0])
	}
	args := tokens[1:]
	if n := argCount[kind]; len(args) != n {
		return core.Op{}, fmt.Errorf("%v expects %d arguments, got %d", kind, n, len(args))
	}

	a := &argParser{args: args}
	var op core.Op
	switch kind {
	case core.KindLoad:
		op = core.Load(a.reg(), a.reg(), a.num())
	case core.KindStore:
		op = core.Store(a.reg(), a.reg())
	case core.KindAmo:
		op = core.Amo(a.reg(), a.reg(), a.reg(), a.ann(), a.num(), a.num())
	case core.KindLR:
		op = core.LR(a.reg(), a.reg(), a.ann(), a.num())
	case core.KindSC:
		op = core.SC(a.reg(), a.reg(), a.ann())
	case core.KindCalc:
		op = core.Calc(a.reg(), a.reg(), a.reg(), a.num())
	case core.KindFence:
		op = core.Fence(a.set(), a.set())
	}
	if a.err != nil {
		return core.Op{}, a.err
	}
	return op, nil
}

// argParser consumes arguments left to right and keeps the first error.
type argParser struct {
	args []string
	err  error
}

func (a *argParser) next() string {
	s := a.args[0]
	a.args = a.args[1:]
	return s
}

func (a *argParser) keep(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *argParser) reg() core.Register {
	r, err := ParseRegister(a.next())
	a.keep(err)
	return r
}

func (a *argParser) num() uint32 {
	n, err := ParseNumber(a.next(), valueWidth)
	a.keep(err)
	return n
}

func (a *argParser) ann() core.Annotation {
	ann, err := core.ParseAnnotation(a.next())
	a.keep(err)
	return ann
}

func (a *argParser) set() core.AccessSet {
	s, err := core.ParseAccessSet(a.next())
	a.keep(err)
	return s
}

// Parse reads a trace: one operation per line, a line "-" starts the next
// hart. Blank lines and text after ';' are ignored.
func Parse(r io.Reader) (core.Trace, error) {
	var (
		t    = core.Trace{nil}
		scan = bufio.NewScanner(r)
		line int
	)
	for scan.Scan() {
		line++
		text := strip(scan.Text())
		switch text {
		case "":
			continue
		case HartSeparator:
			t = append(t, nil)
			continue
		}
		op, err := ParseOp(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t[len(t)-1] = append(t[len(t)-1], op)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	logger.Debugf("[trace] %d harts, %d memory operations", len(t), t.MemoryOps())
	return t, nil
}

// ParseString works as Parse on a string.
func ParseString(s string) (core.Trace, error) {
	return Parse(strings.NewReader(s))
}

// Format writes t in the form read by Parse.
func Format(w io.Writer, t core.Trace) error {
	for h, p := range t {
		if h > 0 {
			if _, err := fmt.Fprintln(w, HartSeparator); err != nil {
				return err
			}
		}
		for _, op := range p {
			if _, err := fmt.Fprintln(w, op); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParsePC parses "hart:index".
func ParsePC(s string) (core.PC, error) {
	hs, is, ok := strings.Cut(s, ":")
	if !ok {
		return core.PC{}, fmt.Errorf("invalid order entry '%s', expected hart:index", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 {
		return core.PC{}, fmt.Errorf("invalid hart in order entry '%s'", s)
	}
	i, err := strconv.Atoi(is)
	if err != nil || i < 0 {
		return core.PC{}, fmt.Errorf("invalid index in order entry '%s'", s)
	}
	return core.PC{Hart: h, Index: i}, nil
}

// ParseGMO parses one global memory order: entries separated by spaces or
// commas.
func ParseGMO(line string) (core.GMO, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	gmo := make(core.GMO, 0, len(fields))
	for _, f := range fields {
		pc, err := ParsePC(f)
		if err != nil {
			return nil, err
		}
		gmo = append(gmo, pc)
	}
	return gmo, nil
}

// ParseGMOs reads one global memory order per non-blank line.
func ParseGMOs(r io.Reader) ([]core.GMO, error) {
	var (
		gmos []core.GMO
		scan = bufio.NewScanner(r)
		line int
	)
	for scan.Scan() {
		line++
		text := strip(scan.Text())
		if text == "" {
			continue
		}
		gmo, err := ParseGMO(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		gmos = append(gmos, gmo)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return gmos, nil
}

func strip(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
