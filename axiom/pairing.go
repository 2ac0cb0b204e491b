// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package axiom

import (
	"errors"
	"fmt"

	"rvord/core"
	"rvord/logger"
)

// ErrDanglingSC is returned for a store-conditional without a preceding
// load-reserved in its hart.
var ErrDanglingSC = errors.New("store-conditional without load-reserved")

// Pairing is the outcome of one LR/SC pair.
type Pairing struct {
	LR        core.PC
	SC        core.PC
	Address   uint32 // reserved by the LR
	SCAddress uint32
	Success   bool

	// Intervening is the store that broke the reservation. Unset when the
	// pair failed because the SC targets another address or the LR is not
	// ordered before the SC.
	Intervening    core.PC
	InterveningPos int
}

func (p Pairing) String() string {
	switch {
	case p.Success:
		return fmt.Sprintf("%v/%v succeeds", p.LR, p.SC)
	case p.SCAddress != p.Address:
		return fmt.Sprintf("%v/%v fails: sc writes %s outside the reservation of %s", p.LR, p.SC,
			core.FormatValue(p.SCAddress), core.FormatValue(p.Address))
	case p.InterveningPos < 0:
		return fmt.Sprintf("%v/%v fails: lr not ordered before sc", p.LR, p.SC)
	default:
		return fmt.Sprintf("%v/%v fails: %v writes %s in between", p.LR, p.SC,
			p.Intervening, core.FormatValue(p.Address))
	}
}

// Pairings holds the pairing outcome of every SC of a trace.
type Pairings struct {
	order []Pairing
	bySC  map[core.PC]int
}

// All returns the pairings in order of their SC in the global memory order.
func (ps *Pairings) All() []Pairing {
	if ps == nil {
		return nil
	}
	return ps.order
}

// Lookup returns the pairing of sc.
func (ps *Pairings) Lookup(sc core.PC) (Pairing, bool) {
	if ps == nil {
		return Pairing{}, false
	}
	i, has := ps.bySC[sc]
	if !has {
		return Pairing{}, false
	}
	return ps.order[i], true
}

// Failed returns true if pc is an SC whose pairing failed.
func (ps *Pairings) Failed(pc core.PC) bool {
	p, has := ps.Lookup(pc)
	return has && !p.Success
}

// FirstFailure returns the earliest failed pairing in the order.
func (ps *Pairings) FirstFailure() (Pairing, bool) {
	for _, p := range ps.All() {
		if !p.Success {
			return p, true
		}
	}
	return Pairing{}, false
}

// Reserved returns the nearest load-reserved before the SC at index sc.
func Reserved(p core.Program, sc int) (int, bool) {
	for i := sc - 1; i >= 0; i-- {
		if p[i].Kind == core.KindLR {
			return i, true
		}
	}
	return 0, false
}

// CheckPairs pairs every SC with the nearest preceding LR of its hart and
// decides whether it succeeds: the SC must target the reserved address and
// no store to it from any hart may be ordered between the two. SCs are processed in order so that
// earlier failed SCs are not counted as intervening stores.
func CheckPairs(t core.Trace, gmo core.GMO, pos core.Positions) (*Pairings, error) {
	ps := &Pairings{bySC: make(map[core.PC]int)}
	for g, pc := range gmo {
		if !t.Valid(pc) || t.At(pc).Kind != core.KindSC {
			continue
		}
		lri, ok := Reserved(t[pc.Hart], pc.Index)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrDanglingSC, pc)
		}
		lr := core.PC{Hart: pc.Hart, Index: lri}
		addr, err := address(t, lr)
		if err != nil {
			return nil, err
		}
		scAddr, err := address(t, pc)
		if err != nil {
			return nil, err
		}
		pair := Pairing{LR: lr, SC: pc, Address: addr, SCAddress: scAddr, Success: true, InterveningPos: -1}

		lpos, has := pos[lr]
		switch {
		case !has:
			return nil, fmt.Errorf("%w: %v", core.ErrMissingEntry, lr)
		case scAddr != addr, lpos > g:
			pair.Success = false
		}
		for s := lpos + 1; pair.Success && s < g; s++ {
			spc := gmo[s]
			if !t.Valid(spc) || !t.At(spc).IsStore() || ps.Failed(spc) {
				continue
			}
			saddr, err := address(t, spc)
			if err != nil {
				return nil, err
			}
			if saddr == addr {
				pair.Success = false
				pair.Intervening = spc
				pair.InterveningPos = s
			}
		}

		logger.Debugf("[pairing] %v", pair)
		ps.bySC[pc] = len(ps.order)
		ps.order = append(ps.order, pair)
	}
	return ps, nil
}
