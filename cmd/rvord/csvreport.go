// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"rvord/checker"
	"rvord/logger"
)

const fileMode = 0600

type csvReport struct {
	name        string
	checker     string
	memoryModel checker.MemoryModel
	duration    time.Duration
	stats       *checker.Stats
	version     string
	err         error
}

const (
	dateTime = "2006-01-02 15:04:05"
)

func (csv csvReport) save(filename string) {
	if filename == "" {
		return
	}
	withHeader := false
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		withHeader = true
	}

	fp, err := os.OpenFile(filename,
		os.O_APPEND|os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		logger.Errorf("could not open file: %v", filename)
		return
	}
	defer func() {
		if err := fp.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()

	if withHeader {
		fmt.Fprint(fp, "# date, filename, checker, version, memory_model, duration, candidates, accepted, rejected, malformed, error_type, exit_code")
		fmt.Fprintln(fp)
	}

	var total, ok, rejected, malformed int
	if s := csv.stats; s != nil {
		total = s.Total()
		ok = s.Count(checker.CheckOK)
		rejected = s.Rejected()
		malformed = s.Count(checker.CheckMalformed)
	}
	fmt.Fprintf(fp, "%s, %s, %v, %v, %v, %v, %d, %d, %d, %d, %s, %d\n",
		time.Now().Format(dateTime),
		csv.name,
		csv.checker,
		csv.version,
		csv.memoryModel,
		csv.duration,
		total,
		ok,
		rejected,
		malformed,
		getErrorType(csv.err),
		getErrorCode(csv.err))
}
