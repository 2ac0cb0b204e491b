// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rvord/checker"
	"rvord/core"
	"rvord/logger"
	"rvord/tools"
)

var mutateFlags = struct {
	swaps []string
}{}

var mutateCmd = cobra.Command{
	Use:   "mutate [flags] <input.trace|->",
	Short: "Swaps positions of a global memory order and checks the result",
	Args:  IsArgsn,
	RunE:  mutateRun,

	DisableFlagsInUseLine: true,
}

func init() {
	flags := mutateCmd.PersistentFlags()
	flags.StringArrayVar(&mutateFlags.swaps, "swap", nil, "positions i,j of the order to swap; may be repeated")
	addCheckFlags(flags)
	rootCmd.AddCommand(&mutateCmd)
}

func parseSwap(s string) (int, int, error) {
	is, js, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid swap '%s', expected i,j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(is))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid swap '%s': %v", s, err)
	}
	j, err := strconv.Atoi(strings.TrimSpace(js))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid swap '%s': %v", s, err)
	}
	return i, j, nil
}

// mutate applies the swaps in order to a copy of gmo.
func mutate(gmo core.GMO, swaps []string) (core.GMO, error) {
	m, err := gmo.Clone()
	if err != nil {
		return nil, err
	}
	for _, s := range swaps {
		i, j, err := parseSwap(s)
		if err != nil {
			return nil, err
		}
		if m, err = m.Swap(i, j); err != nil {
			return nil, err
		}
		logger.Debugf("[mutate] swap %d,%d: %v", i, j, m)
	}
	return m, nil
}

func mutateRun(_ *cobra.Command, args []string) error {
	t, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	gmos, err := loadGMOs(checkFlags.gmoFile, t)
	if err != nil {
		return err
	}
	m, err := mutate(gmos[0], mutateFlags.swaps)
	if err != nil {
		return verror(inputError, err)
	}

	if ofn := rootFlags.outputFn; ofn != "" {
		logger.Debugf("Output file '%s'", ofn)
		if err := tools.Dump(m, ofn); err != nil {
			return verror(internalError, err)
		}
	}

	cfg, err := newConfig()
	if err != nil {
		return err
	}
	chkr, err := newChecker(rootFlags.checker, cfg)
	if err != nil {
		return err
	}
	stats := checker.NewStats()
	ts := time.Now()
	outs, err := checker.CheckAll(context.Background(), chkr, t, []core.GMO{m}, stats)
	if err != nil {
		return verror(internalError, err)
	}
	logger.Debugf("mutate check took %v", time.Since(ts))
	return checkResults(t, outs, stats)
}
