// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

// Writer returns the index of the nearest operation before at that writes r.
func (p Program) Writer(at int, r Register) (int, bool) {
	if r == Zero {
		return 0, false
	}
	for i := at - 1; i >= 0; i-- {
		if d, ok := p[i].DestReg(); ok && d == r {
			return i, true
		}
	}
	return 0, false
}

// Value statically resolves the value of r as read by the operation at
// index at. The value is the literal of the nearest preceding writer in
// program order; no global memory order is involved. Register zero always
// reads as 0. It returns false if r has no writer.
func (p Program) Value(at int, r Register) (uint32, bool) {
	if r == Zero {
		return 0, true
	}
	i, ok := p.Writer(at, r)
	if !ok {
		return 0, false
	}
	return p[i].DestValue()
}

// Address resolves the memory address accessed by the operation at index at.
func (p Program) Address(at int) (uint32, bool) {
	if !p[at].IsMemory() {
		return 0, false
	}
	return p.Value(at, p[at].Rx)
}

// StoreData resolves the value written to memory by the operation at index
// at: the data register for stores and SCs, the literal for AMOs.
func (p Program) StoreData(at int) (uint32, bool) {
	op := p[at]
	switch op.Kind {
	case KindAmo:
		return op.StoreVal, true
	case KindStore, KindSC:
		return p.Value(at, op.Rs)
	default:
		return 0, false
	}
}
