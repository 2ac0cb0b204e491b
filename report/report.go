// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders dependencies, preserved program order and verdicts
// for humans.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"rvord/axiom"
	"rvord/checker"
	"rvord/core"
	"rvord/deps"
	"rvord/ppo"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failColor = color.New(color.FgRed, color.Bold).SprintFunc()
	badColor  = color.New(color.FgYellow, color.Bold).SprintFunc()
	ruleColor = color.New(color.FgCyan).SprintFunc()
	dimColor  = color.New(color.FgBlue).SprintFunc()
)

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// PrintDeps writes the syntactic dependencies of one hart grouped by
// directness and kind.
func PrintDeps(w io.Writer, hart int, d *deps.Deps) error {
	p := &printer{w: w}
	p.printf("== HART %d ==\n", hart)
	groups := []struct {
		name string
		deps []deps.Dep
	}{
		{"direct", d.Direct},
		{"indirect", d.Indirect},
	}
	for _, g := range groups {
		for _, kind := range []deps.Kind{deps.Addr, deps.Data} {
			p.printf("%s syntactic %v deps:\n", g.name, kind)
			for _, dep := range g.deps {
				if dep.Kind == kind {
					p.printf("  %d on %d, reg %v\n", dep.At, dep.On, dep.Reg)
				}
			}
		}
	}
	return p.err
}

// PrintPPO writes the preserved program order of one hart, one edge per line.
func PrintPPO(w io.Writer, prog core.Program, rel *ppo.Relation) error {
	p := &printer{w: w}
	p.printf("== HART %d ==\n", rel.Hart)
	for _, e := range rel.All() {
		rule := ruleColor(e.Rule)
		if e.Rule == ppo.Transitive {
			rule = dimColor(e.Rule)
		}
		p.printf("  %d before %d (%s)\t%v -> %v\n", e.Before, e.After, rule, prog[e.Before], prog[e.After])
	}
	return p.err
}

// PrintObservations writes the store observed by every load and the outcome
// of every LR/SC pair, in global memory order.
func PrintObservations(w io.Writer, gmo core.GMO, obs axiom.Observations, pairs *axiom.Pairings) error {
	p := &printer{w: w}
	for g, pc := range gmo {
		if o, has := obs[pc]; has {
			p.printf("  [%d] %v\n", g, o)
		}
		if pair, has := pairs.Lookup(pc); has {
			p.printf("  [%d] %v\n", g, pair)
		}
	}
	return p.err
}

// StatusString returns the colored name of a status.
func StatusString(s checker.CheckStatus) string {
	switch {
	case s == checker.CheckOK:
		return okColor(s)
	case s.Rejected():
		return failColor(s)
	default:
		return badColor(s)
	}
}

// PrintResult writes the verdict and, for rejected orders, the violated
// constraint.
func PrintResult(w io.Writer, gmo core.GMO, res checker.Result, err error) error {
	p := &printer{w: w}
	p.printf("order  : %v\n", gmo)
	p.printf("status : %s\n", StatusString(res.Status))
	switch {
	case err != nil:
		p.printf("reason : %v\n", err)
	case res.Violation != nil:
		p.printf("reason : %v\n", res.Violation)
	}
	return p.err
}

// PrintStats writes the statistics of a batch run.
func PrintStats(w io.Writer, s *checker.Stats) error {
	p := &printer{w: w}
	p.printf("== STATS ==\n%v", s)
	return p.err
}
