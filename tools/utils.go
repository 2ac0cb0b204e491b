// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools contains file and environment helpers shared by the commands.
package tools

import (
	"fmt"
	"io"
	"os"

	"rvord/logger"
)

const fileMode = 0600

// Stdin is the file name that stands for the standard input.
const Stdin = "-"

// MockFileExistsErr is a mock error returned by FileExists in tests
var MockFileExistsErr error

// FileExists returns nil if a file exists otherwise an error
func FileExists(fn string) error {
	if MockFileExistsErr != nil {
		return MockFileExistsErr
	}
	if fn == Stdin {
		return nil
	}
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fn)
	}
	return nil
}

// Open opens a file for reading. The name "-" opens the standard input,
// which is not closed by the returned function.
func Open(fn string) (io.Reader, func(), error) {
	if fn == Stdin {
		return os.Stdin, func() {}, nil
	}
	if err := FileExists(fn); err != nil {
		return nil, nil, err
	}
	fp, err := os.Open(fn)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open '%v': %v", fn, err)
	}
	return fp, func() {
		if err := fp.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}, nil
}

// Dump writes the string representation of m to a file.
func Dump(m fmt.Stringer, fn string) error {
	logger.Debugf("Dump file '%s'", fn)
	out, err := os.OpenFile(fn,
		os.O_TRUNC|os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()
	_, err = fmt.Fprintln(out, m)
	return err
}
