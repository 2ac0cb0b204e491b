// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package core contains the most basic objects of rvord.
// These are registers, operations, programs, traces and global memory orders.
package core

import "fmt"

// Register is an integer register number. Register 0 is hardwired to zero.
type Register uint32

// Zero is the constant zero register.
const Zero Register = 0

func (r Register) String() string {
	return fmt.Sprintf("x%d", uint32(r))
}

// Op is one operation of a hart's program. Which fields are meaningful
// depends on Kind; use the constructors below to build operations.
//
// Literal values are test-vector inputs: for loads they are the value the
// load asserts to observe, for calcs the value the computation yields.
type Op struct {
	Kind Kind

	Rd  Register // load, amo, lr, calc
	Rx  Register // load, store, amo, lr, sc
	Rs  Register // store, amo, sc
	Rs1 Register // calc
	Rs2 Register // calc

	Ann  Annotation // amo, lr, sc
	Pred AccessSet  // fence
	Succ AccessSet  // fence

	Val      uint32 // load, lr, calc, and the load side of an amo
	StoreVal uint32 // store side of an amo
}

// Load returns a plain load of rd from the address in rx asserting value val.
func Load(rd, rx Register, val uint32) Op {
	return Op{Kind: KindLoad, Rd: rd, Rx: rx, Val: val}
}

// Store returns a plain store of rs to the address in rx.
func Store(rs, rx Register) Op {
	return Op{Kind: KindStore, Rs: rs, Rx: rx}
}

// Amo returns an atomic memory operation. It asserts loading loadVal and
// writes storeVal.
func Amo(rd, rx, rs Register, ann Annotation, loadVal, storeVal uint32) Op {
	return Op{Kind: KindAmo, Rd: rd, Rx: rx, Rs: rs, Ann: ann, Val: loadVal, StoreVal: storeVal}
}

// LR returns a load-reserved asserting value val.
func LR(rd, rx Register, ann Annotation, val uint32) Op {
	return Op{Kind: KindLR, Rd: rd, Rx: rx, Ann: ann, Val: val}
}

// SC returns a store-conditional of rs to the address in rx.
func SC(rs, rx Register, ann Annotation) Op {
	return Op{Kind: KindSC, Rs: rs, Rx: rx, Ann: ann}
}

// Calc returns a register computation rd = f(rs1, rs2) yielding val.
func Calc(rd, rs1, rs2 Register, val uint32) Op {
	return Op{Kind: KindCalc, Rd: rd, Rs1: rs1, Rs2: rs2, Val: val}
}

// Fence returns a fence ordering pred accesses before succ accesses.
func Fence(pred, succ AccessSet) Op {
	return Op{Kind: KindFence, Pred: pred, Succ: succ}
}

// AddrReg returns the register holding the memory address.
func (o Op) AddrReg() (Register, bool) {
	if !o.Kind.Memory() || o.Rx == Zero {
		return Zero, false
	}
	return o.Rx, true
}

// DataRegs returns the registers feeding the value written by o.
func (o Op) DataRegs() []Register {
	var regs []Register
	switch o.Kind {
	case KindStore, KindAmo, KindSC:
		regs = appendReg(regs, o.Rs)
	case KindCalc:
		regs = appendReg(regs, o.Rs1)
		regs = appendReg(regs, o.Rs2)
	}
	return regs
}

func appendReg(regs []Register, r Register) []Register {
	if r == Zero {
		return regs
	}
	return append(regs, r)
}

// DestReg returns the register written by o.
func (o Op) DestReg() (Register, bool) {
	switch o.Kind {
	case KindLoad, KindAmo, KindLR, KindCalc:
		if o.Rd != Zero {
			return o.Rd, true
		}
	}
	return Zero, false
}

// IsLoad is true for loads, AMOs and LRs.
func (o Op) IsLoad() bool {
	switch o.Kind {
	case KindLoad, KindAmo, KindLR:
		return true
	default:
		return false
	}
}

// IsStore is true for stores, AMOs and SCs.
func (o Op) IsStore() bool {
	switch o.Kind {
	case KindStore, KindAmo, KindSC:
		return true
	default:
		return false
	}
}

// IsMemory is true for operations that belong in a global memory order.
func (o Op) IsMemory() bool {
	return o.Kind.Memory()
}

// CarriesDep is true for operations that propagate a dependency from their
// sources to their destination register.
func (o Op) CarriesDep() bool {
	return o.Kind == KindCalc
}

// Annotation returns the ordering annotation of AMOs, LRs and SCs.
func (o Op) Annotation() (Annotation, bool) {
	switch o.Kind {
	case KindAmo, KindLR, KindSC:
		return o.Ann, true
	default:
		return Annotation{}, false
	}
}

// Asserted returns the value a load, AMO or LR asserts to observe.
func (o Op) Asserted() (uint32, bool) {
	if !o.IsLoad() {
		return 0, false
	}
	return o.Val, true
}

// DestValue returns the literal value o writes into its destination register.
func (o Op) DestValue() (uint32, bool) {
	if _, ok := o.DestReg(); !ok {
		return 0, false
	}
	return o.Val, true
}

func (o Op) String() string {
	switch o.Kind {
	case KindLoad:
		return fmt.Sprintf("load %v %v %s", o.Rd, o.Rx, FormatValue(o.Val))
	case KindStore:
		return fmt.Sprintf("store %v %v", o.Rs, o.Rx)
	case KindAmo:
		return fmt.Sprintf("amo %v %v %v %v %s %s", o.Rd, o.Rx, o.Rs, o.Ann,
			FormatValue(o.Val), FormatValue(o.StoreVal))
	case KindLR:
		return fmt.Sprintf("lr %v %v %v %s", o.Rd, o.Rx, o.Ann, FormatValue(o.Val))
	case KindSC:
		return fmt.Sprintf("sc %v %v %v", o.Rs, o.Rx, o.Ann)
	case KindCalc:
		return fmt.Sprintf("calc %v %v %v %s", o.Rd, o.Rs1, o.Rs2, FormatValue(o.Val))
	case KindFence:
		return fmt.Sprintf("fence %v %v", o.Pred, o.Succ)
	default:
		return "???"
	}
}

// FormatValue renders a 32-bit value in the trace notation, eg, #0000'0200.
func FormatValue(x uint32) string {
	return fmt.Sprintf("#%04X'%04X", x>>16, x&0xFFFF)
}
