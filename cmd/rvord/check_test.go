// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvord/checker"
	"rvord/logger"
	"rvord/tools"
)

const testdata = "testdata"

func fixture(fn string) string {
	return filepath.Join(testdata, fn)
}

// resetFlags restores the flag defaults and captures the output.
func resetFlags(t *testing.T) *bytes.Buffer {
	t.Helper()
	checkFlags.gmoFile = ""
	checkFlags.memoryModel = "po"
	checkFlags.initValue = ""
	checkFlags.noClosure = false
	checkFlags.parallel = 0
	checkFlags.verbose = false
	checkFlags.csvFile = ""
	checkFlags.timeout = 0
	mutateFlags.swaps = nil
	rootFlags.checker = "validator"
	rootFlags.outputFn = ""

	var buf bytes.Buffer
	logger.SetWriter(&buf)
	t.Cleanup(func() { logger.SetFileDescriptor(os.Stdout) })
	return &buf
}

func cr(s checker.CheckStatus) checker.CheckResult {
	return checker.CheckResult{
		Status: s,
	}
}

var mockCases = []struct {
	r    checker.CheckResult
	err  error
	file bool
	typ  errorType
}{
	{r: cr(checker.CheckOK), typ: noError},
	{r: cr(checker.CheckPPO), typ: checkFail},
	{r: cr(checker.CheckLoadValue), typ: checkFail},
	{r: cr(checker.CheckUninitialized), typ: checkFail},
	{r: cr(checker.CheckAtomic), typ: checkFail},
	{err: fmt.Errorf("bad order: %w", checker.ErrMalformed), typ: inputError},
	{err: errors.New("some error"), typ: internalError},
	{file: true, typ: inputError},
}

func TestCheckMock(t *testing.T) {
	cMock := checker.GetMock()

	// cleanup at end
	defer func() {
		cMock.Result = checker.CheckResult{}
		cMock.Err = nil
		tools.MockFileExistsErr = nil
	}()

	for i, tc := range mockCases {
		i, tc := i, tc
		t.Run(fmt.Sprintf("%v", i), func(t *testing.T) {
			resetFlags(t)
			rootFlags.checker = "mock"

			tools.MockFileExistsErr = nil
			if tc.file {
				tools.MockFileExistsErr = errors.New("file error")
			}
			cMock.Err = tc.err
			cMock.Result = tc.r

			err := checkRun(nil, []string{fixture("store_load.trace")})
			if tc.typ == noError {
				assert.Nil(t, err)
				return
			}
			var ve *vError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.typ, ve.typ)
			assert.Equal(t, int(tc.typ), getErrorCode(err))
			if tc.typ == checkFail {
				assert.Equal(t, tc.r.Status, ve.status)
				assert.Equal(t, "", ve.Error())
			}
		})
	}
}

func TestCheckFixtures(t *testing.T) {
	testCases := []struct {
		trace  string
		gmo    string
		init   string
		model  string
		typ    errorType
		status checker.CheckStatus
		out    []string
	}{
		{trace: "store_load.trace", typ: noError, out: []string{"status : OK"}},
		{trace: "store_load.trace", gmo: "store_load.gmo", typ: noError},
		{
			trace:  "store_load.trace",
			gmo:    "store_load_bad.gmo",
			typ:    checkFail,
			status: checker.CheckUninitialized,
			out: []string{
				"== CANDIDATE 2 ==",
				"status : Malformed",
				"reads uninitialized memory at #0000'0100",
				"Uninitialized: 1",
			},
		},
		{
			trace:  "store_load.trace",
			gmo:    "store_load_bad.gmo",
			init:   "#0",
			typ:    checkFail,
			status: checker.CheckLoadValue,
			out:    []string{"asserts #0000'0005 but reads #0000'0000 from initial memory"},
		},
		{trace: "lrsc.trace", gmo: "lrsc.gmo", init: "#0", typ: checkFail, status: checker.CheckAtomic},
		{trace: "lrsc.trace", init: "#0", model: "rvwmo", typ: noError},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d-%s", i, tc.trace), func(t *testing.T) {
			buf := resetFlags(t)
			if tc.gmo != "" {
				checkFlags.gmoFile = fixture(tc.gmo)
			}
			if tc.model != "" {
				checkFlags.memoryModel = tc.model
			}
			checkFlags.initValue = tc.init

			err := checkRun(nil, []string{fixture(tc.trace)})
			assert.Equal(t, int(tc.typ), getErrorCode(err))
			if tc.typ == checkFail {
				var ve *vError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tc.status, ve.status)
			}
			for _, s := range tc.out {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestCheckFlagsErrors(t *testing.T) {
	resetFlags(t)
	checkFlags.memoryModel = "sc"
	err := checkRun(nil, []string{fixture("store_load.trace")})
	assert.EqualError(t, err, "error: invalid memory model 'sc'")
	assert.Equal(t, int(inputError), getErrorCode(err))

	resetFlags(t)
	checkFlags.initValue = "5"
	err = checkRun(nil, []string{fixture("store_load.trace")})
	assert.Equal(t, int(inputError), getErrorCode(err))

	resetFlags(t)
	rootFlags.checker = "genmc"
	err = checkRun(nil, []string{fixture("store_load.trace")})
	assert.EqualError(t, err, "error: unknown checker 'genmc'")
	assert.Equal(t, int(inputError), getErrorCode(err))

	resetFlags(t)
	err = checkRun(nil, []string{fixture("missing.trace")})
	assert.Equal(t, int(inputError), getErrorCode(err))

	assert.Error(t, IsArgsn(nil, nil))
	assert.Error(t, IsArgsn(nil, []string{"a", "b"}))
	assert.NoError(t, IsArgsn(nil, []string{"a"}))
}

func TestCheckVerboseAndOutput(t *testing.T) {
	buf := resetFlags(t)
	dir := t.TempDir()
	checkFlags.verbose = true
	checkFlags.csvFile = filepath.Join(dir, "log.csv")
	rootFlags.outputFn = filepath.Join(dir, "order.gmo")

	require.NoError(t, checkRun(nil, []string{fixture("store_load.trace")}))
	out := buf.String()
	assert.Contains(t, out, "direct syntactic data deps:")
	assert.Contains(t, out, "[1] 1:1 reads #0000'0005 from 0:2 at #0000'0100")

	dumped, err := os.ReadFile(rootFlags.outputFn)
	require.NoError(t, err)
	assert.Equal(t, "0:2 1:1\n", string(dumped))

	// a second run appends without header
	require.NoError(t, checkRun(nil, []string{fixture("store_load.trace")}))
	csv, err := os.ReadFile(checkFlags.csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "# date, filename"))
	assert.Contains(t, lines[1], "validator, v0.1.0, po,")
	assert.True(t, strings.HasSuffix(lines[2], "1, 1, 0, 0, none, 0"))
}
