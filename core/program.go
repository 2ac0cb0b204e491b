// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
)

var (
	// ErrBadPC is returned when a GMO entry does not name a memory operation.
	ErrBadPC = errors.New("invalid global memory order entry")
	// ErrDuplicateEntry is returned when a GMO names an operation twice.
	ErrDuplicateEntry = errors.New("duplicate global memory order entry")
	// ErrMissingEntry is returned when a GMO omits a memory operation.
	ErrMissingEntry = errors.New("missing global memory order entry")
	// ErrProgramOrder is returned when a GMO inverts the program order of a hart.
	ErrProgramOrder = errors.New("global memory order violates program order")
)

// Program is the sequence of operations of one hart. The index of an
// operation is its position in program order.
type Program []Op

// Trace is the set of programs of all harts, indexed by hart id.
type Trace []Program

// PC identifies an operation by hart id and program index.
type PC struct {
	Hart  int
	Index int
}

func (pc PC) String() string {
	return fmt.Sprintf("%d:%d", pc.Hart, pc.Index)
}

// GMO is a global memory order: one total order over the memory
// operations of all harts.
type GMO []PC

// Positions maps each operation of a GMO to its position in the order.
type Positions map[PC]int

// Valid returns whether pc names an operation of the trace.
func (t Trace) Valid(pc PC) bool {
	return pc.Hart >= 0 && pc.Hart < len(t) &&
		pc.Index >= 0 && pc.Index < len(t[pc.Hart])
}

// At returns the operation at pc. pc must be valid.
func (t Trace) At(pc PC) Op {
	return t[pc.Hart][pc.Index]
}

// MemoryOps returns the number of memory operations of the trace.
func (t Trace) MemoryOps() int {
	var n int
	for _, p := range t {
		for _, op := range p {
			if op.IsMemory() {
				n++
			}
		}
	}
	return n
}

// Trivial returns the order with one hart after another, each in program order.
func (t Trace) Trivial() GMO {
	var gmo GMO
	for h, p := range t {
		for i, op := range p {
			if op.IsMemory() {
				gmo = append(gmo, PC{Hart: h, Index: i})
			}
		}
	}
	return gmo
}

// Positions validates that gmo contains exactly one entry per memory
// operation of t and returns the position of every entry.
func (gmo GMO) Positions(t Trace) (Positions, error) {
	pos := make(Positions, len(gmo))
	for g, pc := range gmo {
		if !t.Valid(pc) || !t.At(pc).IsMemory() {
			return nil, fmt.Errorf("%w: %v at position %d", ErrBadPC, pc, g)
		}
		if prev, has := pos[pc]; has {
			return nil, fmt.Errorf("%w: %v at positions %d and %d", ErrDuplicateEntry, pc, prev, g)
		}
		pos[pc] = g
	}
	for h, p := range t {
		for i, op := range p {
			pc := PC{Hart: h, Index: i}
			if _, has := pos[pc]; op.IsMemory() && !has {
				return nil, fmt.Errorf("%w: %v (%v)", ErrMissingEntry, pc, op)
			}
		}
	}
	return pos, nil
}

// ProgramOrder checks that the program order of every hart is a sub-order
// of gmo. It returns the first inverted pair found in gmo order.
func (gmo GMO) ProgramOrder() error {
	last := make(map[int]int)
	for g, pc := range gmo {
		if i, has := last[pc.Hart]; has && i > pc.Index {
			return fmt.Errorf("%w: %v placed at position %d after %v",
				ErrProgramOrder, pc, g, PC{Hart: pc.Hart, Index: i})
		}
		last[pc.Hart] = pc.Index
	}
	return nil
}

// Clone returns a deep copy of gmo.
func (gmo GMO) Clone() (GMO, error) {
	var c GMO
	if err := copier.Copy(&c, &gmo); err != nil {
		return nil, err
	}
	return c, nil
}

// Swap returns a copy of gmo with positions i and j exchanged.
func (gmo GMO) Swap(i, j int) (GMO, error) {
	if i < 0 || j < 0 || i >= len(gmo) || j >= len(gmo) {
		return nil, fmt.Errorf("cannot swap positions %d and %d of an order of length %d", i, j, len(gmo))
	}
	c, err := gmo.Clone()
	if err != nil {
		return nil, err
	}
	c[i], c[j] = c[j], c[i]
	return c, nil
}

func (gmo GMO) String() string {
	parts := make([]string, len(gmo))
	for i, pc := range gmo {
		parts[i] = pc.String()
	}
	return strings.Join(parts, " ")
}
