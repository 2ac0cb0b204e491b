// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ppo derives the preserved program order of a hart: the pairs of
// memory operations whose program order every legal global memory order
// must keep.
package ppo

import (
	"rvord/axiom"
	"rvord/core"
	"rvord/deps"
	"rvord/logger"
)

// Observer tells which store a load observes in the candidate order.
type Observer interface {
	ObservedStore(load core.PC) (core.PC, bool)
}

// Input is everything the rules need about one hart.
type Input struct {
	Hart    int
	Program core.Program
	Deps    *deps.Deps

	// Observer enables the rule that depends on observed values. May be nil.
	Observer Observer
	// Pairings enables the LR/SC rule and marks failed SCs. May be nil.
	Pairings *axiom.Pairings
}

type deriver struct {
	Input
	addr   []uint32
	addrOK []bool
}

// Derive applies every rule to every pair of memory operations of the hart.
// Calcs and fences are never endpoints, and neither are failed SCs.
func Derive(in Input) *Relation {
	if in.Deps == nil {
		in.Deps = deps.Analyze(in.Program)
	}
	d := &deriver{
		Input:  in,
		addr:   make([]uint32, len(in.Program)),
		addrOK: make([]bool, len(in.Program)),
	}
	for i := range in.Program {
		d.addr[i], d.addrOK[i] = in.Program.Address(i)
	}

	rel := &Relation{Hart: in.Hart, Size: len(in.Program)}
	for a := range in.Program {
		if !d.endpoint(a) {
			continue
		}
		for b := a + 1; b < len(in.Program); b++ {
			if !d.endpoint(b) {
				continue
			}
			for _, r := range d.rules(a, b) {
				rel.Direct = append(rel.Direct, Edge{Before: a, After: b, Rule: r})
			}
		}
	}
	logger.Debugf("[ppo] hart %d: %d edges", in.Hart, len(rel.Direct))
	return rel
}

func (d *deriver) rules(a, b int) []Rule {
	var (
		p     = d.Program
		rules []Rule
	)
	add := func(r Rule, cond bool) {
		if cond {
			rules = append(rules, r)
		}
	}

	add(SameAddrStore, d.store(b) && d.sameAddr(a, b))
	add(SameAddrLoads, p[a].IsLoad() && p[b].IsLoad() && d.sameAddr(a, b) && d.noStoreBetween(a, b))
	add(AtomicForward, d.forwards(a, b))
	add(FenceOrder, d.fenced(a, b))

	annA, hasA := p[a].Annotation()
	annB, hasB := p[b].Annotation()
	add(AcquireOrder, hasA && annA.Acquire)
	add(ReleaseOrder, hasB && annB.Release)
	add(RCscOrder, hasA && hasB && annA.Any() && annB.Any())
	add(PairedSC, d.paired(a, b))

	add(AddrDep, d.Deps.Has(b, a, deps.Addr))
	add(DataDep, d.Deps.Has(b, a, deps.Data))
	// CtrlDep needs branches and Reserved12 is undefined: neither is produced.
	add(AddrDepStore, d.store(b) && d.addrDepBetween(a, b))
	return rules
}

func (d *deriver) pc(i int) core.PC {
	return core.PC{Hart: d.Hart, Index: i}
}

func (d *deriver) failed(i int) bool {
	return d.Pairings.Failed(d.pc(i))
}

func (d *deriver) endpoint(i int) bool {
	return d.Program[i].IsMemory() && !d.failed(i)
}

func (d *deriver) store(i int) bool {
	return d.Program[i].IsStore() && !d.failed(i)
}

func (d *deriver) sameAddr(a, b int) bool {
	return d.addrOK[a] && d.addrOK[b] && d.addr[a] == d.addr[b]
}

func (d *deriver) noStoreBetween(a, b int) bool {
	for m := a + 1; m < b; m++ {
		if !d.store(m) {
			continue
		}
		if !d.addrOK[m] || d.addr[m] == d.addr[a] {
			return false
		}
	}
	return true
}

func (d *deriver) forwards(a, b int) bool {
	k := d.Program[a].Kind
	if (k != core.KindAmo && k != core.KindSC) || !d.Program[b].IsLoad() || d.Observer == nil {
		return false
	}
	src, ok := d.Observer.ObservedStore(d.pc(b))
	return ok && src == d.pc(a)
}

func (d *deriver) fenced(a, b int) bool {
	for m := a + 1; m < b; m++ {
		f := d.Program[m]
		if f.Kind == core.KindFence && f.Pred.Matches(d.Program[a]) && f.Succ.Matches(d.Program[b]) {
			return true
		}
	}
	return false
}

func (d *deriver) paired(a, b int) bool {
	if d.Program[a].Kind != core.KindLR || d.Program[b].Kind != core.KindSC {
		return false
	}
	// TODO: order the operations that depend on a successful pair as well
	pair, ok := d.Pairings.Lookup(d.pc(b))
	return ok && pair.Success && pair.LR == d.pc(a)
}

func (d *deriver) addrDepBetween(a, b int) bool {
	for m := a + 1; m < b; m++ {
		if d.Deps.Has(m, a, deps.Addr) {
			return true
		}
	}
	return false
}
