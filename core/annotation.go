// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import "fmt"

// Annotation represents the aq/rl ordering bits of an AMO, LR or SC.
type Annotation struct {
	Acquire bool
	Release bool
}

// AccessSet represents one side (predecessor or successor) of a fence.
type AccessSet struct {
	Read  bool
	Write bool
}

var (
	// annotations indexed by the aq/rl bit pair, aq being the high bit
	annotationBits = map[int]Annotation{
		0b00: {},
		0b01: {Release: true},
		0b10: {Acquire: true},
		0b11: {Acquire: true, Release: true},
	}

	annotationNames = map[string]int{
		"z":    0b00,
		"rl":   0b01,
		"aq":   0b10,
		"aqrl": 0b11,
	}

	accessSetNames = map[string]AccessSet{
		"r":  {Read: true},
		"w":  {Write: true},
		"rw": {Read: true, Write: true},
	}
)

// GetAnnotation returns the annotation encoded by an aq/rl bit pair.
func GetAnnotation(bits int) Annotation {
	return annotationBits[bits&0b11]
}

// ParseAnnotation parses one of z, aq, rl or aqrl.
func ParseAnnotation(s string) (Annotation, error) {
	bits, ok := annotationNames[s]
	if !ok {
		return Annotation{}, fmt.Errorf("invalid ordering annotation '%s'", s)
	}
	return GetAnnotation(bits), nil
}

// Any returns true if either the acquire or the release bit is set.
func (a Annotation) Any() bool {
	return a.Acquire || a.Release
}

func (a Annotation) String() string {
	switch {
	case a.Acquire && a.Release:
		return "aqrl"
	case a.Acquire:
		return "aq"
	case a.Release:
		return "rl"
	default:
		return "z"
	}
}

// ParseAccessSet parses one of r, w or rw.
func ParseAccessSet(s string) (AccessSet, error) {
	set, ok := accessSetNames[s]
	if !ok {
		return AccessSet{}, fmt.Errorf("invalid ordering set '%s'", s)
	}
	return set, nil
}

// Matches returns true if the access kind of op is in the set: reads for
// loads, writes for stores. An AMO is both.
func (s AccessSet) Matches(op Op) bool {
	return (s.Read && op.IsLoad()) || (s.Write && op.IsStore())
}

func (s AccessSet) String() string {
	var str string
	if s.Read {
		str += "r"
	}
	if s.Write {
		str += "w"
	}
	if str == "" {
		return "-"
	}
	return str
}
