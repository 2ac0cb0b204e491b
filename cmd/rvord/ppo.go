// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"

	"github.com/spf13/cobra"

	"rvord/checker"
	"rvord/logger"
	"rvord/report"
)

var ppoCmd = cobra.Command{
	Use:   "ppo [flags] <input.trace|->",
	Short: "Prints the preserved program order of every hart",
	Long: "Prints the preserved program order of every hart under the first " +
		"global memory order given with --gmo, or the trivial order.",
	Args: IsArgsn,
	RunE: ppoRun,

	DisableFlagsInUseLine: true,
}

func init() {
	addCheckFlags(ppoCmd.PersistentFlags())
	rootCmd.AddCommand(&ppoCmd)
}

func ppoRun(_ *cobra.Command, args []string) error {
	t, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	gmos, err := loadGMOs(checkFlags.gmoFile, t)
	if err != nil {
		return err
	}
	cfg, err := newConfig()
	if err != nil {
		return err
	}

	res, err := checker.NewValidator(cfg).Check(context.Background(), t, gmos[0])
	if checker.IsMalformed(err) && res.PPO == nil {
		return verror(inputError, err)
	} else if err != nil && !checker.IsMalformed(err) {
		return verror(internalError, err)
	}
	for h, rel := range res.PPO {
		if err := report.PrintPPO(logger.Writer(), t[h], rel); err != nil {
			return verror(internalError, err)
		}
	}
	return nil
}
