// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package axiom evaluates a candidate global memory order: it determines the
// value each load observes under the load value axiom and whether each
// LR/SC pair succeeds.
package axiom

import (
	"errors"
	"fmt"

	"rvord/core"
	"rvord/logger"
)

var (
	// ErrNotLoad is returned when the observed value of a non-load is requested.
	ErrNotLoad = errors.New("operation is not a load")
	// ErrBadPosition is returned for a position outside the global memory order.
	ErrBadPosition = errors.New("position out of global memory order")
	// ErrUnresolvedAddress is returned when an address register has no writer.
	ErrUnresolvedAddress = errors.New("unresolved address register")
	// ErrUnresolvedData is returned when a store data register has no writer.
	ErrUnresolvedData = errors.New("unresolved data register")
)

// Observation is the outcome of the load value axiom for one load.
type Observation struct {
	Load    core.PC
	Pos     int    // position of the load in the order
	Address uint32 // resolved address of the load
	Value   uint32 // value observed; meaningless if Initial
	Initial bool   // no store precedes the load, it reads initial memory

	Source    core.PC // store providing the value
	SourcePos int     // position of Source in the order
}

func (o Observation) String() string {
	if o.Initial {
		return fmt.Sprintf("%v reads initial memory at %s", o.Load, core.FormatValue(o.Address))
	}
	return fmt.Sprintf("%v reads %s from %v at %s", o.Load, core.FormatValue(o.Value), o.Source, core.FormatValue(o.Address))
}

// Observations indexes observations by load.
type Observations map[core.PC]Observation

// ObservedStore returns the store whose value the load observes.
func (obs Observations) ObservedStore(load core.PC) (core.PC, bool) {
	o, has := obs[load]
	if !has || o.Initial {
		return core.PC{}, false
	}
	return o.Source, true
}

// Evaluator applies the load value axiom to one trace and order.
type Evaluator struct {
	Trace core.Trace
	GMO   core.GMO
	// Failed reports store-conditionals that write nothing. May be nil.
	Failed func(sc core.PC) bool
}

// Observe determines the value observed by the load at position g: the value
// of the nearest store before it in the order that writes the same address.
func (e *Evaluator) Observe(g int) (Observation, error) {
	if g < 0 || g >= len(e.GMO) {
		return Observation{}, fmt.Errorf("%w: %d", ErrBadPosition, g)
	}
	pc := e.GMO[g]
	if !e.Trace.Valid(pc) {
		return Observation{}, fmt.Errorf("%w: %v", ErrBadPosition, pc)
	}
	if !e.Trace.At(pc).IsLoad() {
		return Observation{}, fmt.Errorf("%w: %v", ErrNotLoad, pc)
	}
	addr, err := address(e.Trace, pc)
	if err != nil {
		return Observation{}, err
	}

	obs := Observation{Load: pc, Pos: g, Address: addr, Initial: true}
	for s := g - 1; s >= 0; s-- {
		spc := e.GMO[s]
		if !e.writes(spc) {
			continue
		}
		saddr, err := address(e.Trace, spc)
		if err != nil {
			return Observation{}, err
		}
		if saddr != addr {
			continue
		}
		val, ok := e.Trace[spc.Hart].StoreData(spc.Index)
		if !ok {
			return Observation{}, fmt.Errorf("%w: %v (%v)", ErrUnresolvedData, spc, e.Trace.At(spc))
		}
		obs.Initial = false
		obs.Value = val
		obs.Source = spc
		obs.SourcePos = s
		break
	}
	logger.Debugf("[axiom] %v", obs)
	return obs, nil
}

// ObserveAll evaluates every load of the order.
func (e *Evaluator) ObserveAll() (Observations, error) {
	obs := make(Observations)
	for g, pc := range e.GMO {
		if !e.Trace.Valid(pc) || !e.Trace.At(pc).IsLoad() {
			continue
		}
		o, err := e.Observe(g)
		if err != nil {
			return nil, err
		}
		obs[pc] = o
	}
	return obs, nil
}

func (e *Evaluator) writes(pc core.PC) bool {
	if !e.Trace.Valid(pc) || !e.Trace.At(pc).IsStore() {
		return false
	}
	return e.Failed == nil || !e.Failed(pc)
}

func address(t core.Trace, pc core.PC) (uint32, error) {
	addr, ok := t[pc.Hart].Address(pc.Index)
	if !ok {
		return 0, fmt.Errorf("%w: %v (%v)", ErrUnresolvedAddress, pc, t.At(pc))
	}
	return addr, nil
}
