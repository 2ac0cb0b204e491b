// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"rvord/checker"
	"rvord/logger"
)

// errorType is also the exit code of the process.
type errorType int

//go:generate go run golang.org/x/tools/cmd/stringer -type=errorType
const (
	checkFail     errorType = 2 // some candidate order is rejected
	internalError errorType = 1
	inputError    errorType = 3 // unreadable trace, bad flag value or malformed order
	noError       errorType = 0
)

type vError struct {
	typ    errorType
	status checker.CheckStatus
	err    error
}

// vfail reports a rejected order. The diagnostic was already printed with
// the verdict, so the error message is empty.
func vfail(s checker.CheckStatus, err error) *vError {
	return &vError{
		typ:    checkFail,
		status: s,
		err:    err,
	}
}

func verror(typ errorType, err error) *vError {
	return &vError{
		typ: typ,
		err: err,
	}
}

func (e *vError) Error() string {
	if e.typ == checkFail {
		logger.Debugf("%v: %v", e.typ, e.status)
		return ""
	}
	return e.err.Error()
}

func (e *vError) Unwrap() error {
	return e.err
}

// asVError returns the vError in the chain of err. Errors not raised by the
// commands are internal.
func asVError(err error) *vError {
	var ve *vError
	if errors.As(err, &ve) {
		return ve
	}
	return verror(internalError, err)
}

func getErrorType(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%v", asVError(err).typ)
}

func getErrorCode(err error) int {
	if err == nil {
		return int(noError)
	}
	return int(asVError(err).typ)
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
