// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import "rvord/logger"

// MemoryModel selects how strictly a global memory order must follow the
// program order of each hart.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=MemoryModel -linecomment
type MemoryModel int

const (
	// InvalidMemoryModel represents any unknown memory model
	InvalidMemoryModel MemoryModel = iota // invalid
	// ProgramOrder requires the program order of every hart to be a
	// sub-order of the global memory order
	ProgramOrder // po
	// RVWMO only requires the preserved program order to be respected
	RVWMO // rvwmo
)

// ParseMemoryModel parses a string and returns an equivalent memory model identifier.
func ParseMemoryModel(mm string) MemoryModel {
	logger.Debugf("parsing memory model '%s'", mm)

	switch mm {
	case "po":
		return ProgramOrder
	case "rvwmo":
		return RVWMO
	default:
		return InvalidMemoryModel
	}
}

// Config holds the validation policy.
type Config struct {
	Model MemoryModel
	// Closure checks the transitive closure of the preserved program order.
	Closure bool
	// InitialValue is the value of memory never written. When nil, a load
	// without a preceding store is rejected as uninitialized.
	InitialValue *uint32
	// Parallel limits the number of harts analyzed concurrently; 0 means
	// one worker per hart.
	Parallel int
}

// DefaultConfig returns the default validation policy.
func DefaultConfig() Config {
	return Config{
		Model:   ProgramOrder,
		Closure: true,
	}
}
