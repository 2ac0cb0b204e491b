// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvord/checker"
	"rvord/core"
	"rvord/deps"
	"rvord/ppo"
)

func init() {
	color.NoColor = true
}

func TestPrintDeps(t *testing.T) {
	prog := core.Program{
		core.Calc(1, 0, 0, 0x200),
		core.Calc(2, 0, 0, 0x41),
		core.Calc(3, 0, 0, 0),
		core.Calc(3, 2, 0, 0x42),
		core.Store(1, 3),
	}
	var buf bytes.Buffer
	require.NoError(t, PrintDeps(&buf, 0, deps.Analyze(prog)))
	assert.Equal(t, `== HART 0 ==
direct syntactic address deps:
  4 on 3, reg x3
direct syntactic data deps:
  4 on 0, reg x1
  3 on 1, reg x2
indirect syntactic address deps:
  4 on 1, reg x3
indirect syntactic data deps:
`, buf.String())
}

func TestPrintPPO(t *testing.T) {
	prog := core.Program{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 0), core.Load(3, 1, 0)}
	var buf bytes.Buffer
	require.NoError(t, PrintPPO(&buf, prog, ppo.Derive(ppo.Input{Program: prog})))
	assert.Equal(t, "== HART 0 ==\n  1 before 2 (rule 2)\tload x2 x1 #0000'0000 -> load x3 x1 #0000'0000\n", buf.String())
}

func TestPrintResult(t *testing.T) {
	tr := core.Trace{{core.Calc(1, 0, 0, 0x100), core.Load(2, 1, 5)}}
	gmo := tr.Trivial()
	res, err := checker.NewValidator(checker.DefaultConfig()).Check(context.Background(), tr, gmo)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, gmo, res, nil))
	assert.Equal(t, "order  : 0:1\nstatus : Uninitialized\n"+
		"reason : 0:1 (load x2 x1 #0000'0005) at position 0 reads uninitialized memory at #0000'0100\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintObservations(&buf, gmo, res.Observations, res.Pairings))
	assert.Equal(t, "  [0] 0:1 reads initial memory at #0000'0100\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintResult(&buf, gmo, checker.Result{Status: checker.CheckMalformed}, errors.New("bad")))
	assert.Contains(t, buf.String(), "status : Malformed\nreason : bad\n")

	buf.Reset()
	stats := checker.NewStats()
	stats.Inc(checker.CheckOK)
	require.NoError(t, PrintStats(&buf, stats))
	assert.Contains(t, buf.String(), "OK: 1")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPrintError(t *testing.T) {
	assert.EqualError(t, PrintStats(failWriter{}, checker.NewStats()), "closed")
}
