// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rvord/core"
	"rvord/logger"
	"rvord/tools"
	"rvord/trace"
)

// IsArgsn ensures there is exactly one input trace
func IsArgsn(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no input file specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("only one input file expected, got %d", len(args))
	}
	return nil
}

func loadTrace(fn string) (core.Trace, error) {
	r, done, err := tools.Open(fn)
	if err != nil {
		return nil, verror(inputError, err)
	}
	defer done()

	t, err := trace.Parse(r)
	if err != nil {
		return nil, verror(inputError, fmt.Errorf("%s: %w", fn, err))
	}
	return t, nil
}

// loadGMOs reads the candidate orders of fn. Without a file, the trivial
// order of t is the only candidate.
func loadGMOs(fn string, t core.Trace) ([]core.GMO, error) {
	if fn == "" {
		logger.Debug("no order given, using the trivial order")
		return []core.GMO{t.Trivial()}, nil
	}
	r, done, err := tools.Open(fn)
	if err != nil {
		return nil, verror(inputError, err)
	}
	defer done()

	gmos, err := trace.ParseGMOs(r)
	if err != nil {
		return nil, verror(inputError, fmt.Errorf("%s: %w", fn, err))
	}
	if len(gmos) == 0 {
		return nil, verror(inputError, fmt.Errorf("%s: no global memory order", fn))
	}
	return gmos, nil
}
