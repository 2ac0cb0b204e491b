// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package deps extracts syntactic register dependencies from the program of
// a single hart. Dependencies are derived from program text only; no global
// memory order is involved.
package deps

import (
	"fmt"

	"rvord/core"
	"rvord/logger"
)

// Kind distinguishes address dependencies from data dependencies.
type Kind int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -linecomment
const (
	// Addr means the register feeds the address of a memory access
	Addr Kind = iota // address
	// Data means the register feeds a computed or stored value
	Data // data
)

// Dep records that the operation at index At reads Reg, and the nearest
// preceding writer of that register (possibly through a chain of calcs for
// indirect dependencies) is the operation at index On.
type Dep struct {
	At   int
	On   int
	Reg  core.Register
	Kind Kind
}

func (d Dep) String() string {
	return fmt.Sprintf("%d on %d, reg %v, kind %v", d.At, d.On, d.Reg, d.Kind)
}

// Deps holds the direct and indirect dependencies of one program.
type Deps struct {
	Direct   []Dep
	Indirect []Dep
}

// All returns direct and indirect dependencies together.
func (d *Deps) All() []Dep {
	all := make([]Dep, 0, len(d.Direct)+len(d.Indirect))
	all = append(all, d.Direct...)
	return append(all, d.Indirect...)
}

// Has returns true if a direct or indirect dependency of kind k exists at
// at onto on.
func (d *Deps) Has(at, on int, k Kind) bool {
	for _, dep := range d.Direct {
		if dep.At == at && dep.On == on && dep.Kind == k {
			return true
		}
	}
	for _, dep := range d.Indirect {
		if dep.At == at && dep.On == on && dep.Kind == k {
			return true
		}
	}
	return false
}

// Analyze computes the syntactic dependencies of p.
//
// Direct dependencies are found scanning positions from last to first; for
// each position the program is scanned backwards and the first writer of
// every register stops the search for that register. Indirect dependencies
// extend a direct dependency through calc operations, one edge per hop.
func Analyze(p core.Program) *Deps {
	d := &Deps{}
	for j := len(p) - 1; j >= 0; j-- {
		d.Direct = append(d.Direct, direct(p, j)...)
	}
	d.Indirect = indirect(p, d.Direct)
	logger.Debugf("[deps] %d ops: %d direct, %d indirect", len(p), len(d.Direct), len(d.Indirect))
	return d
}

func direct(p core.Program, j int) []Dep {
	var (
		addr, hasAddr = p[j].AddrReg()
		data          = p[j].DataRegs()
		seen          = make(map[core.Register]bool)
		found         []Dep
	)
	if !hasAddr && len(data) == 0 {
		return nil
	}
	for i := j - 1; i >= 0; i-- {
		r, ok := p[i].DestReg()
		if !ok || seen[r] {
			continue
		}
		seen[r] = true
		if hasAddr && r == addr {
			found = append(found, Dep{At: j, On: i, Reg: r, Kind: Addr})
		}
		if contains(data, r) {
			found = append(found, Dep{At: j, On: i, Reg: r, Kind: Data})
		}
	}
	return found
}

func indirect(p core.Program, direct []Dep) []Dep {
	// direct dependencies by the position that reads
	byAt := make(map[int][]Dep)
	for _, dep := range direct {
		byAt[dep.At] = append(byAt[dep.At], dep)
	}

	var out []Dep
	for _, dep := range direct {
		var (
			origin  = dep
			visited = make(map[int]bool)
			chase   func(m int)
		)
		chase = func(m int) {
			if visited[m] || !p[m].CarriesDep() {
				return
			}
			visited[m] = true
			for _, next := range byAt[m] {
				out = append(out, Dep{At: origin.At, On: next.On, Reg: origin.Reg, Kind: origin.Kind})
				chase(next.On)
			}
		}
		chase(dep.On)
	}
	return dedup(out)
}

func dedup(in []Dep) []Dep {
	seen := make(map[Dep]bool)
	var out []Dep
	for _, d := range in {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

func contains(regs []core.Register, r core.Register) bool {
	for _, x := range regs {
		if x == r {
			return true
		}
	}
	return false
}
