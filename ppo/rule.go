// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ppo

// Rule identifies the preserved-program-order rule that produced an edge.
type Rule int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Rule -linecomment
const (
	// Transitive marks an edge derived by closing the relation
	Transitive Rule = iota // transitive
	// SameAddrStore orders a store after an earlier access to the same address
	SameAddrStore // rule 1
	// SameAddrLoads orders two loads of the same address with no store in between
	SameAddrLoads // rule 2
	// AtomicForward orders an AMO or SC before a load reading its value
	AtomicForward // rule 3
	// FenceOrder orders accesses separated by a matching fence
	FenceOrder // rule 4
	// AcquireOrder orders an acquire before everything after it
	AcquireOrder // rule 5
	// ReleaseOrder orders everything before a release
	ReleaseOrder // rule 6
	// RCscOrder orders two annotated operations
	RCscOrder // rule 7
	// PairedSC orders an LR before its successful SC
	PairedSC // rule 8
	// AddrDep orders an access after the source of its address dependency
	AddrDep // rule 9
	// DataDep orders an access after the source of its data dependency
	DataDep // rule 10
	// CtrlDep orders an access after a branch it depends on. Never produced.
	CtrlDep // rule 11
	// Reserved12 has no defined semantics. Never produced.
	Reserved12 // rule 12
	// AddrDepStore orders a store after the source of an address dependency of an access between them
	AddrDepStore // rule 13
)
