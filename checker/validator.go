// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rvord/axiom"
	"rvord/core"
	"rvord/deps"
	"rvord/logger"
	"rvord/ppo"
)

const validatorVersion = "v0.1.0"

// Validator checks candidate orders against the preserved program order and
// the load value axiom.
type Validator struct {
	cfg Config
}

// NewValidator creates a validator with the given policy.
func NewValidator(cfg Config) *Validator {
	if cfg.Model == InvalidMemoryModel {
		cfg.Model = ProgramOrder
	}
	return &Validator{cfg: cfg}
}

// GetVersion returns the validator version.
func (v *Validator) GetVersion() string {
	return validatorVersion
}

// Check validates gmo against trace t. Consistency violations are reported
// in the result; malformed input is reported as an error matching
// ErrMalformed together with a CheckMalformed result.
func (v *Validator) Check(ctx context.Context, t core.Trace, gmo core.GMO) (Result, error) {
	pos, err := gmo.Positions(t)
	if err != nil {
		return Result{Status: CheckMalformed}, malformed{err}
	}
	pairs, err := axiom.CheckPairs(t, gmo, pos)
	if err != nil {
		return Result{Status: CheckMalformed}, malformed{err}
	}
	ev := axiom.Evaluator{Trace: t, GMO: gmo, Failed: pairs.Failed}
	obs, err := ev.ObserveAll()
	if err != nil {
		return Result{Status: CheckMalformed}, malformed{err}
	}

	res := Result{
		Status:       CheckUndefined,
		Deps:         make([]*deps.Deps, len(t)),
		PPO:          make([]*ppo.Relation, len(t)),
		Pairings:     pairs,
		Observations: obs,
	}
	if err := v.derive(ctx, t, &res); err != nil {
		return Result{Status: CheckUndefined}, err
	}

	if p, has := pairs.FirstFailure(); has {
		logger.Debugf("[checker] atomic failure: %v", p)
		res.Status = CheckAtomic
		res.Violation = &Violation{Status: CheckAtomic, Pairing: p}
		return res, nil
	}

	var vs []*Violation
	for h, rel := range res.PPO {
		vs = append(vs, ppoViolations(t, pos, rel, res.Deps[h])...)
	}
	if len(vs) > 0 {
		sortViolations(vs)
		logger.Debugf("[checker] %d ppo violations, first: %v", len(vs), vs[0])
		res.Status = CheckPPO
		res.Violation = vs[0]
		return res, nil
	}

	if v.cfg.Model == ProgramOrder {
		if err := gmo.ProgramOrder(); err != nil {
			res.Status = CheckMalformed
			return res, malformed{err}
		}
	}

	for _, pc := range gmo {
		o, has := obs[pc]
		if !has {
			continue
		}
		if viol := v.checkLoad(t.At(pc), o); viol != nil {
			res.Status = viol.Status
			res.Violation = viol
			return res, nil
		}
	}

	res.Status = CheckOK
	return res, nil
}

func (v *Validator) derive(ctx context.Context, t core.Trace, res *Result) error {
	g, gctx := errgroup.WithContext(ctx)
	if v.cfg.Parallel > 0 {
		g.SetLimit(v.cfg.Parallel)
	}
	for h := range t {
		h := h
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := deps.Analyze(t[h])
			rel := ppo.Derive(ppo.Input{
				Hart:     h,
				Program:  t[h],
				Deps:     d,
				Observer: res.Observations,
				Pairings: res.Pairings,
			})
			if v.cfg.Closure {
				rel.Close()
			}
			res.Deps[h] = d
			res.PPO[h] = rel
			return nil
		})
	}
	return g.Wait()
}

func (v *Validator) checkLoad(op core.Op, o axiom.Observation) *Violation {
	asserted, _ := op.Asserted()
	viol := &Violation{Load: o, LoadOp: op, Asserted: asserted}
	switch {
	case o.Initial && v.cfg.InitialValue == nil:
		viol.Status = CheckUninitialized
		return viol
	case o.Initial:
		viol.Expected = *v.cfg.InitialValue
	default:
		viol.Expected = o.Value
	}
	if viol.Expected == asserted {
		return nil
	}
	viol.Status = CheckLoadValue
	return viol
}
