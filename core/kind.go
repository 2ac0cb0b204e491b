// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

// Kind represents the variant of an operation in a hart's program
type Kind int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -linecomment
const (
	// InvalidKind represents an unknown operation
	InvalidKind Kind = iota // invalid
	// KindLoad represents a plain load
	KindLoad // load
	// KindStore represents a plain store
	KindStore // store
	// KindAmo represents an atomic read-modify-write
	KindAmo // amo
	// KindLR represents a load-reserved
	KindLR // lr
	// KindSC represents a store-conditional
	KindSC // sc
	// KindCalc represents a register computation
	KindCalc // calc
	// KindFence represents a memory fence
	KindFence // fence
)

// ParseKind returns the kind with the given mnemonic or InvalidKind.
func ParseKind(s string) Kind {
	for k := KindLoad; k <= KindFence; k++ {
		if k.String() == s {
			return k
		}
	}
	return InvalidKind
}

// Memory returns whether operations of this kind access memory and thus
// appear in a global memory order.
func (k Kind) Memory() bool {
	switch k {
	case KindLoad, KindStore, KindAmo, KindLR, KindSC:
		return true
	default:
		return false
	}
}
