// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import (
	"context"

	"rvord/core"
)

// Mock is a simple mock object for testing.
type Mock struct {
	Err    error
	Result CheckResult
	Calls  int
}

var mock Mock

// GetMock return a Mock singleton.
func GetMock() *Mock {
	return &mock
}

// Check returns the desired check result and error
func (c *Mock) Check(ctx context.Context, _ core.Trace, _ core.GMO) (CheckResult, error) {
	c.Calls++
	if err := ctx.Err(); err != nil {
		return CheckResult{}, err
	}
	return c.Result, c.Err
}

func (c *Mock) GetVersion() string {
	return "v0.0.0"
}
