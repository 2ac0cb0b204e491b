// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import (
	"context"
	"time"

	"rvord/core"
	"rvord/logger"
)

// Outcome is the verdict on one candidate order of a batch.
type Outcome struct {
	GMO    core.GMO
	Result Result
	Err    error
}

// CheckAll validates every candidate order in turn. Malformed candidates are
// recorded and the batch continues; any other error stops it. Outcomes are
// returned in input order.
func CheckAll(ctx context.Context, tool Tool, t core.Trace, gmos []core.GMO, stats *Stats) ([]Outcome, error) {
	if stats == nil {
		stats = NewStats()
	}
	out := make([]Outcome, 0, len(gmos))
	for i, gmo := range gmos {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		start := time.Now()
		res, err := tool.Check(ctx, t, gmo)
		stats.AddTime("check", time.Since(start))

		switch {
		case err == nil:
		case IsMalformed(err):
			logger.Warnf("candidate %d: %v", i, err)
			res.Status = CheckMalformed
		default:
			return out, err
		}
		logger.Debugf("[batch] candidate %d: %v", i, res.Status)
		stats.Inc(res.Status)
		out = append(out, Outcome{GMO: gmo, Result: res, Err: err})
	}
	return out, nil
}
