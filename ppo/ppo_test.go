// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ppo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvord/axiom"
	"rvord/core"
)

var (
	z    = core.Annotation{}
	aq   = core.Annotation{Acquire: true}
	rl   = core.Annotation{Release: true}
	aqrl = core.Annotation{Acquire: true, Release: true}
	r    = core.AccessSet{Read: true}
	w    = core.AccessSet{Write: true}
)

type observer map[core.PC]core.PC

func (o observer) ObservedStore(load core.PC) (core.PC, bool) {
	s, ok := o[load]
	return s, ok
}

func edges(rel *Relation, rule Rule) [][2]int {
	var out [][2]int
	for _, e := range rel.All() {
		if e.Rule == rule {
			out = append(out, [2]int{e.Before, e.After})
		}
	}
	return out
}

func TestDeriveRules(t *testing.T) {
	testCases := []struct {
		name string
		prog core.Program
		obs  observer
		rule Rule
		want [][2]int
	}{
		{
			name: "same address store",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 0), core.Store(0, 1)},
			rule: SameAddrStore,
			want: [][2]int{{1, 2}},
		},
		{
			name: "different address store",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Calc(3, 0, 0, 0x104), core.Load(2, 1, 0), core.Store(0, 3)},
			rule: SameAddrStore,
		},
		{
			name: "same address loads",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 0), core.Load(3, 1, 0)},
			rule: SameAddrLoads,
			want: [][2]int{{1, 2}},
		},
		{
			name: "same address loads with store between",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 0), core.Store(0, 1), core.Load(3, 1, 0)},
			rule: SameAddrLoads,
		},
		{
			name: "amo forwards to load",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Amo(2, 1, 0, z, 0, 1), core.Load(3, 1, 1)},
			obs:  observer{{Hart: 0, Index: 2}: {Hart: 0, Index: 1}},
			rule: AtomicForward,
			want: [][2]int{{1, 2}},
		},
		{
			name: "amo not observed",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Amo(2, 1, 0, z, 0, 1), core.Load(3, 1, 1)},
			obs:  observer{{Hart: 0, Index: 2}: {Hart: 1, Index: 0}},
			rule: AtomicForward,
		},
		{
			name: "fence r,w",
			prog: core.Program{core.Load(2, 0, 0), core.Store(0, 0), core.Fence(r, w), core.Load(3, 0, 0), core.Store(0, 0)},
			rule: FenceOrder,
			want: [][2]int{{0, 4}},
		},
		{
			name: "acquire",
			prog: core.Program{core.Load(3, 0, 0), core.LR(2, 0, aq, 0), core.Load(3, 0, 0), core.Store(0, 0)},
			rule: AcquireOrder,
			want: [][2]int{{1, 2}, {1, 3}},
		},
		{
			name: "release",
			prog: core.Program{core.Load(3, 0, 0), core.Store(0, 0), core.Amo(2, 0, 0, rl, 0, 0), core.Load(3, 0, 0)},
			rule: ReleaseOrder,
			want: [][2]int{{0, 2}, {1, 2}},
		},
		{
			name: "rcsc",
			prog: core.Program{core.Amo(2, 0, 0, aqrl, 0, 0), core.Load(3, 0, 0), core.Amo(4, 0, 0, rl, 0, 0), core.Amo(5, 0, 0, z, 0, 0)},
			rule: RCscOrder,
			want: [][2]int{{0, 2}},
		},
		{
			name: "address dependency through calc",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 0x200), core.Calc(3, 2, 0, 0x200), core.Load(4, 3, 0)},
			rule: AddrDep,
			want: [][2]int{{1, 3}},
		},
		{
			name: "data dependency",
			prog: core.Program{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 0), core.Store(2, 0)},
			rule: DataDep,
			want: [][2]int{{1, 2}},
		},
		{
			name: "address dependency before store",
			prog: core.Program{core.Load(2, 0, 0x100), core.Load(3, 2, 0), core.Calc(4, 0, 0, 0x200), core.Store(0, 4)},
			rule: AddrDepStore,
			want: [][2]int{{0, 3}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := Input{Program: tc.prog}
			if tc.obs != nil {
				in.Observer = tc.obs
			}
			rel := Derive(in)
			assert.Equal(t, tc.want, edges(rel, tc.rule))
		})
	}
}

func TestDerivePairedSC(t *testing.T) {
	tr := core.Trace{
		{core.Calc(1, 0, 0, 0x100), core.LR(2, 1, z, 0), core.SC(2, 1, z)},
		{core.Calc(1, 0, 0, 0x100), core.Store(0, 1)},
	}
	testCases := []struct {
		name string
		gmo  core.GMO
		want [][2]int
	}{
		{"success", core.GMO{{Hart: 0, Index: 1}, {Hart: 0, Index: 2}, {Hart: 1, Index: 1}}, [][2]int{{1, 2}}},
		{"failure", core.GMO{{Hart: 0, Index: 1}, {Hart: 1, Index: 1}, {Hart: 0, Index: 2}}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := tc.gmo.Positions(tr)
			require.Nil(t, err)
			ps, err := axiom.CheckPairs(tr, tc.gmo, pos)
			require.Nil(t, err)
			rel := Derive(Input{Program: tr[0], Pairings: ps})
			assert.Equal(t, tc.want, edges(rel, PairedSC))
			if tc.want == nil {
				// a failed SC is not an endpoint of any rule
				for _, e := range rel.All() {
					assert.NotEqual(t, 2, e.After)
				}
			}
		})
	}
}

func TestDeriveNeverCtrlOrReserved(t *testing.T) {
	progs := []core.Program{
		{core.Calc(1, 0, 0, 0x100), core.LR(2, 1, aqrl, 0), core.Calc(3, 2, 2, 1), core.SC(3, 1, aqrl), core.Fence(r, w)},
		{core.Load(1, 0, 0), core.Calc(2, 1, 0, 0), core.Load(3, 2, 0), core.Store(3, 1), core.Amo(4, 3, 1, aq, 0, 0)},
	}
	for i, p := range progs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			rel := Derive(Input{Program: p})
			rel.Close()
			for _, e := range rel.All() {
				assert.NotEqual(t, CtrlDep, e.Rule)
				assert.NotEqual(t, Reserved12, e.Rule)
				assert.Less(t, e.Before, e.After)
				assert.True(t, p[e.Before].IsMemory())
				assert.True(t, p[e.After].IsMemory())
			}
		})
	}
}

func TestClose(t *testing.T) {
	rel := &Relation{Size: 4, Direct: []Edge{
		{Before: 0, After: 1, Rule: AddrDep},
		{Before: 1, After: 2, Rule: DataDep},
		{Before: 2, After: 3, Rule: FenceOrder},
		{Before: 0, After: 2, Rule: AcquireOrder},
	}}
	rel.Close()
	assert.Equal(t, []Edge{
		{Before: 0, After: 3, Rule: Transitive},
		{Before: 1, After: 3, Rule: Transitive},
	}, rel.Derived)
	assert.True(t, rel.Ordered(0, 3))
	assert.False(t, rel.Ordered(3, 0))
	assert.Equal(t, "0 before 3 (transitive)", rel.Derived[0].String())
}

func TestRuleNames(t *testing.T) {
	assert.Equal(t, "transitive", Transitive.String())
	for r := SameAddrStore; r <= AddrDepStore; r++ {
		assert.Equal(t, fmt.Sprintf("rule %d", int(r)), r.String())
	}
}
