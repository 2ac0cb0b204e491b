// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the main rvord program of this project.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rvord/logger"
	"rvord/tools"
)

var rootCmd = cobra.Command{
	Use:           "rvord",
	Short:         "",
	Long:          "",
	SilenceUsage:  true,
	SilenceErrors: true,

	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("run 'rvord -h' for help")
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logger.ParseLevel(rootFlags.log))
		if rootFlags.debug {
			logger.SetLevel(logger.DEBUG)
		}
		if rootFlags.quiet {
			logger.SetFileDescriptor(nil)
		}
	},
}

func init() {
	tools.RegEnv("RVORD_DEFAULT_CHECKER", "validator", "Default checker")

	helpMessage :=
		`rvord -- Validation of global memory orders of RISC-V traces`

	helpMessage += "\n\nEnvironment Variables:"
	for _, ev := range tools.GetEnvvars() {
		helpMessage += "\n  " + ev.Name + " " +
			"(default: \"" + ev.Defv + "\")\n\t" + ev.Desc
	}
	rootCmd.Long = helpMessage

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.log, "log", "ERROR", "log level (ERROR|INFO|WARN|DEBUG)")
	flags.StringVarP(&rootFlags.checker, "checker", "c", tools.GetEnv("RVORD_DEFAULT_CHECKER"), "target checker (validator|mock)")
	flags.StringVarP(&rootFlags.outputFn, "output", "o", "", "output file for the checked global memory order")
	flags.BoolVarP(&rootFlags.debug, "debug", "d", false, "set debug mode")
	flags.BoolVarP(&rootFlags.quiet, "quiet", "q", false, "do not produce output")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

var rootFlags struct {
	log      string
	debug    bool
	outputFn string
	checker  string
	quiet    bool
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if msg := getErrorMessage(err); msg != "" {
			logger.Println(msg)
		}
		os.Exit(getErrorCode(err))
	}
}
