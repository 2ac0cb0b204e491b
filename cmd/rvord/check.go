// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rvord/checker"
	"rvord/core"
	"rvord/logger"
	"rvord/report"
	"rvord/tools"
	"rvord/trace"
)

var checkFlags = struct {
	gmoFile     string
	memoryModel string
	initValue   string
	noClosure   bool
	parallel    int
	verbose     bool
	csvFile     string
	timeout     time.Duration
}{}

var checkCmd = cobra.Command{
	Use:   "check [flags] <input.trace|->",
	Short: "Checks candidate global memory orders of a trace",
	Args:  IsArgsn,
	RunE:  checkRun,

	DisableFlagsInUseLine: true,
}

func init() {
	tools.RegEnv("RVORD_MEMORY_MODEL", "po", "Default memory model (po|rvwmo)")
	tools.RegEnv("RVORD_INIT_VALUE", "", "Value of memory never written; empty rejects such loads")
	tools.RegEnv("RVORD_CLOSURE", "true", "Check the transitive closure of the preserved program order")

	flags := checkCmd.PersistentFlags()
	flags.StringVar(&checkFlags.csvFile, "csv-log", "", "CSV file to append the final result to ")
	flags.DurationVar(&checkFlags.timeout, "timeout", 0, "Check timeout, e.g., 1s for 1 second, 1m for 1 minute.\ntimeout 0 is equivalent to no timeout")
	flags.BoolVarP(&checkFlags.verbose, "verbose", "v", false, "print dependencies, preserved program order and observed stores")
	addCheckFlags(flags)
	rootCmd.AddCommand(&checkCmd)
}

func addCheckFlags(flags *pflag.FlagSet) {
	flags.StringVar(&checkFlags.gmoFile, "gmo", "", "file with one global memory order per line (default: trivial order)")
	flags.StringVarP(&checkFlags.memoryModel, "memory-model", "m", tools.GetEnv("RVORD_MEMORY_MODEL"), "memory model (po|rvwmo)")
	flags.StringVar(&checkFlags.initValue, "init-value", tools.GetEnv("RVORD_INIT_VALUE"), "value of memory never written, e.g., #0")
	flags.BoolVar(&checkFlags.noClosure, "no-closure", !tools.GetEnvBool("RVORD_CLOSURE"), "check only the direct preserved program order")
	flags.IntVar(&checkFlags.parallel, "parallel", 0, "maximum number of harts analyzed concurrently (0: no limit)")
	flags.SetInterspersed(false)
}

func newConfig() (checker.Config, error) {
	cfg := checker.DefaultConfig()
	cfg.Model = checker.ParseMemoryModel(checkFlags.memoryModel)
	if cfg.Model == checker.InvalidMemoryModel {
		err := fmt.Errorf("error: invalid memory model '%v'", checkFlags.memoryModel)
		return cfg, verror(inputError, err)
	}
	if v := checkFlags.initValue; v != "" {
		iv, err := trace.ParseNumber(v, 32)
		if err != nil {
			return cfg, verror(inputError, fmt.Errorf("invalid initial value: %w", err))
		}
		cfg.InitialValue = &iv
	}
	cfg.Closure = !checkFlags.noClosure
	cfg.Parallel = checkFlags.parallel
	return cfg, nil
}

// checkerNames lists the tools selectable with --checker.
var checkerNames = []string{"validator", "mock"}

func newChecker(name string, cfg checker.Config) (checker.Tool, error) {
	switch name {
	case "validator":
		return checker.NewValidator(cfg), nil
	case "mock":
		return checker.GetMock(), nil
	default:
		err := fmt.Errorf("error: unknown checker '%s'", name)
		return nil, verror(inputError, err)
	}
}

// checkResults prints every verdict and maps the batch to an error: the
// first rejection fails the check, otherwise the first malformed order.
func checkResults(t core.Trace, outs []checker.Outcome, stats *checker.Stats) (err error) {
	w := logger.Writer()
	for i, o := range outs {
		logger.Printf("== CANDIDATE %d ==\n", i)
		if perr := report.PrintResult(w, o.GMO, o.Result, o.Err); perr != nil {
			return verror(internalError, perr)
		}
		if checkFlags.verbose {
			printDetails(t, o)
		}
		logger.Println()
	}
	if perr := report.PrintStats(w, stats); perr != nil {
		return verror(internalError, perr)
	}

	for _, o := range outs {
		if o.Result.Status.Rejected() {
			return vfail(o.Result.Status, errors.New(o.Result.Violation.String()))
		}
	}
	for _, o := range outs {
		if o.Err != nil {
			return verror(inputError, o.Err)
		}
	}
	return nil
}

func printDetails(t core.Trace, o checker.Outcome) {
	w := logger.Writer()
	res := o.Result
	for h, d := range res.Deps {
		if err := report.PrintDeps(w, h, d); err != nil {
			logger.Warn(err)
		}
	}
	for h, rel := range res.PPO {
		if err := report.PrintPPO(w, t[h], rel); err != nil {
			logger.Warn(err)
		}
	}
	if err := report.PrintObservations(w, o.GMO, res.Observations, res.Pairings); err != nil {
		logger.Warn(err)
	}
}

func checkRun(_ *cobra.Command, args []string) (err error) {
	var (
		fn      = args[0]
		ts      = time.Now()
		stats   = checker.NewStats()
		mm      = checker.ParseMemoryModel(checkFlags.memoryModel)
		ctx     = context.Background()
		version = ""
	)
	defer func() {
		csvReport{
			name:        fn,
			checker:     rootFlags.checker,
			version:     version,
			memoryModel: mm,
			duration:    time.Since(ts),
			stats:       stats,
			err:         err,
		}.save(checkFlags.csvFile)
	}()

	t, err := loadTrace(fn)
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
	chkr, err := newChecker(rootFlags.checker, cfg)
	if err != nil {
		return err
	}

	if checkFlags.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, checkFlags.timeout)
		defer cancel()
	}

	outs, err := checker.CheckAll(ctx, chkr, t, gmos, stats)
	version = chkr.GetVersion()
	if err != nil {
		logger.Debugf("error in checker: %v\n", err)
		return verror(internalError, err)
	}

	err = checkResults(t, outs, stats)
	if fn := rootFlags.outputFn; fn != "" && len(outs) > 0 {
		if lerr := tools.Dump(outs[len(outs)-1].GMO, fn); lerr != nil {
			logger.Debug(lerr)
		}
	}
	return err
}
