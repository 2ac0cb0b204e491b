// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package checker decides whether a candidate global memory order is a legal
// execution of a multi-hart trace.
package checker

import (
	"context"
	"errors"

	"rvord/axiom"
	"rvord/core"
	"rvord/deps"
	"rvord/ppo"
)

// ErrMalformed matches every error caused by malformed input: orders that
// miss or repeat operations, dangling SCs, unresolvable addresses.
var ErrMalformed = errors.New("malformed input")

type malformed struct {
	err error
}

func (m malformed) Error() string        { return "malformed input: " + m.err.Error() }
func (m malformed) Unwrap() error        { return m.err }
func (m malformed) Is(target error) bool { return target == ErrMalformed }

// IsMalformed returns true if err is caused by malformed input.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// Tool interface consists of one function to check an order and return a result.
type Tool interface {
	Check(ctx context.Context, t core.Trace, gmo core.GMO) (Result, error)
	GetVersion() string
}

// CheckStatus represents the outcome of a check run
type CheckStatus int

//go:generate go run golang.org/x/tools/cmd/stringer -type=CheckStatus -linecomment
const (
	// CheckUndefined represents a check with outcome Undefined
	CheckUndefined CheckStatus = iota // Undefined
	// CheckOK represents an accepted order
	CheckOK // OK
	// CheckPPO represents an order violating preserved program order
	CheckPPO // PPOViolation
	// CheckLoadValue represents a load observing a different value than asserted
	CheckLoadValue // LoadValueMismatch
	// CheckUninitialized represents a load without any preceding store
	CheckUninitialized // Uninitialized
	// CheckAtomic represents a failed LR/SC pair
	CheckAtomic // AtomicFailure
	// CheckMalformed represents an order or trace that could not be analyzed
	CheckMalformed // Malformed
)

// Rejected returns true for every consistency violation.
func (s CheckStatus) Rejected() bool {
	switch s {
	case CheckPPO, CheckLoadValue, CheckUninitialized, CheckAtomic:
		return true
	default:
		return false
	}
}

// CheckResult is the verdict on one order together with the relations
// derived to reach it.
type CheckResult struct {
	Status    CheckStatus
	Violation *Violation

	Deps         []*deps.Deps
	PPO          []*ppo.Relation
	Pairings     *axiom.Pairings
	Observations axiom.Observations
}

// Result is the result of a check.
type Result = CheckResult
