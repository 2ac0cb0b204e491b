// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ppo

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Edge means the operation at program index Before must precede the one at
// After in every legal global memory order.
type Edge struct {
	Before int
	After  int
	Rule   Rule
}

func (e Edge) String() string {
	return fmt.Sprintf("%d before %d (%v)", e.Before, e.After, e.Rule)
}

// Relation is the preserved program order of one hart.
type Relation struct {
	Hart int
	Size int // number of operations of the program

	// Direct edges produced by the rules, ordered by Before, After, Rule.
	Direct []Edge
	// Derived holds the pairs added by Close that no rule produced directly.
	Derived []Edge
}

// All returns direct and derived edges.
func (r *Relation) All() []Edge {
	all := make([]Edge, 0, len(r.Direct)+len(r.Derived))
	all = append(all, r.Direct...)
	return append(all, r.Derived...)
}

// Ordered returns true if some edge orders before ahead of after.
func (r *Relation) Ordered(before, after int) bool {
	for _, e := range r.All() {
		if e.Before == before && e.After == after {
			return true
		}
	}
	return false
}

// Close computes the transitive closure of the direct edges and records the
// missing pairs as Derived edges with rule Transitive.
func (r *Relation) Close() {
	n := uint(r.Size)
	rows := make([]*bitset.BitSet, n)
	for i := range rows {
		rows[i] = bitset.New(n)
	}
	for _, e := range r.Direct {
		rows[e.Before].Set(uint(e.After))
	}
	direct := r.reach(rows)

	// Warshall: if i reaches k, i reaches everything k reaches
	for k := uint(0); k < n; k++ {
		for i := uint(0); i < n; i++ {
			if rows[i].Test(k) {
				rows[i].InPlaceUnion(rows[k])
			}
		}
	}

	r.Derived = nil
	for i := uint(0); i < n; i++ {
		for j, ok := rows[i].NextSet(0); ok; j, ok = rows[i].NextSet(j + 1) {
			if !direct[[2]int{int(i), int(j)}] {
				r.Derived = append(r.Derived, Edge{Before: int(i), After: int(j), Rule: Transitive})
			}
		}
	}
}

func (r *Relation) reach(rows []*bitset.BitSet) map[[2]int]bool {
	m := make(map[[2]int]bool)
	for i, row := range rows {
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			m[[2]int{i, int(j)}] = true
		}
	}
	return m
}
