// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"rvord/deps"
	"rvord/logger"
	"rvord/report"
)

var depsCmd = cobra.Command{
	Use:   "deps <input.trace|->",
	Short: "Prints the syntactic dependencies of every hart",
	Args:  IsArgsn,
	RunE:  depsRun,

	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(&depsCmd)
}

func depsRun(_ *cobra.Command, args []string) error {
	t, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	for h, p := range t {
		if err := report.PrintDeps(logger.Writer(), h, deps.Analyze(p)); err != nil {
			return verror(internalError, err)
		}
	}
	return nil
}
