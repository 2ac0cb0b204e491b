// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"rvord/checker"
	"rvord/logger"
	"rvord/tools"
)

var (
	name    = "rvord"
	version = "latest"
)

var versionCmd = cobra.Command{
	Use:   "version",
	Short: "Print version information of rvord and its checkers",
	RunE:  versionRun,
}

func versionRun(_ *cobra.Command, _ []string) error {
	logger.Printf("%s %s\n", name, version)
	cfg := checker.DefaultConfig()
	for _, cn := range checkerNames {
		chkr, err := newChecker(cn, cfg)
		if err != nil {
			return err
		}
		logger.Printf("  %-10s %s\n", cn, chkr.GetVersion())
	}
	logger.Printf("  default memory model: %v\n", checker.ParseMemoryModel(tools.GetEnv("RVORD_MEMORY_MODEL")))
	return nil
}

func init() {
	versionCmd.SetHelpFunc(func(*cobra.Command, []string) {})
	rootCmd.AddCommand(&versionCmd)
}
