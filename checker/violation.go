// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import (
	"fmt"
	"sort"
	"strings"

	"rvord/axiom"
	"rvord/core"
	"rvord/deps"
	"rvord/ppo"
)

// Violation is the first constraint a rejected order breaks.
type Violation struct {
	Status CheckStatus

	// PPO violations: Before must precede After but is placed later.
	Rule      ppo.Rule
	Derived   bool
	Before    core.PC
	After     core.PC
	BeforePos int
	AfterPos  int
	BeforeOp  core.Op
	AfterOp   core.Op
	Regs      []core.Register // registers carrying the dependency, if any

	// Load violations
	Load     axiom.Observation
	LoadOp   core.Op
	Asserted uint32
	Expected uint32

	// Atomic violations
	Pairing axiom.Pairing
}

func (v *Violation) String() string {
	if v == nil {
		return ""
	}
	switch v.Status {
	case CheckPPO:
		var regs string
		if len(v.Regs) > 0 {
			names := make([]string, len(v.Regs))
			for i, r := range v.Regs {
				names[i] = r.String()
			}
			regs = ", reg " + strings.Join(names, " ")
		}
		return fmt.Sprintf("%v%s: %v (%v) must precede %v (%v) but is placed at position %d after position %d",
			v.Rule, regs, v.Before, v.BeforeOp, v.After, v.AfterOp, v.BeforePos, v.AfterPos)
	case CheckLoadValue:
		src := "initial memory"
		if !v.Load.Initial {
			src = fmt.Sprintf("%v at position %d", v.Load.Source, v.Load.SourcePos)
		}
		return fmt.Sprintf("%v (%v) at position %d asserts %s but reads %s from %s",
			v.Load.Load, v.LoadOp, v.Load.Pos, core.FormatValue(v.Asserted), core.FormatValue(v.Expected), src)
	case CheckUninitialized:
		return fmt.Sprintf("%v (%v) at position %d reads uninitialized memory at %s",
			v.Load.Load, v.LoadOp, v.Load.Pos, core.FormatValue(v.Load.Address))
	case CheckAtomic:
		return fmt.Sprintf("store-conditional %v", v.Pairing)
	default:
		return v.Status.String()
	}
}

// ppoViolations returns every edge of rel inverted by the order, sorted so
// that direct edges come before derived ones, then by position of the
// operation placed too early.
func ppoViolations(t core.Trace, pos core.Positions, rel *ppo.Relation, d *deps.Deps) []*Violation {
	var out []*Violation
	check := func(edges []ppo.Edge, derived bool) {
		for _, e := range edges {
			before := core.PC{Hart: rel.Hart, Index: e.Before}
			after := core.PC{Hart: rel.Hart, Index: e.After}
			if pos[before] < pos[after] {
				continue
			}
			out = append(out, &Violation{
				Status:    CheckPPO,
				Rule:      e.Rule,
				Derived:   derived,
				Before:    before,
				After:     after,
				BeforePos: pos[before],
				AfterPos:  pos[after],
				BeforeOp:  t.At(before),
				AfterOp:   t.At(after),
				Regs:      depRegs(d, e),
			})
		}
	}
	check(rel.Direct, false)
	check(rel.Derived, true)
	return out
}

func sortViolations(vs []*Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		switch {
		case a.Derived != b.Derived:
			return !a.Derived
		case a.AfterPos != b.AfterPos:
			return a.AfterPos < b.AfterPos
		case a.BeforePos != b.BeforePos:
			return a.BeforePos < b.BeforePos
		default:
			return a.Rule < b.Rule
		}
	})
}

func depRegs(d *deps.Deps, e ppo.Edge) []core.Register {
	var kind deps.Kind
	switch e.Rule {
	case ppo.AddrDep:
		kind = deps.Addr
	case ppo.DataDep:
		kind = deps.Data
	default:
		return nil
	}
	var regs []core.Register
	for _, dep := range d.All() {
		if dep.At == e.After && dep.On == e.Before && dep.Kind == kind {
			regs = append(regs, dep.Reg)
		}
	}
	return regs
}
