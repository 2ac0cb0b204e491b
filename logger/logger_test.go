// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	defer SetFileDescriptor(os.Stdout)
	defer SetLevel(GetLevel())

	testCases := []struct {
		level Level
		out   string
	}{
		{ERROR, "error: e\n"},
		{WARN, "error: e\nwarning: w\n"},
		{INFO, "error: e\nwarning: w\ni\n"},
		{DEBUG, "error: e\nwarning: w\ni\ndebug: d 1\n"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v", tc.level), func(t *testing.T) {
			var buf bytes.Buffer
			SetWriter(&buf)
			SetLevel(tc.level)
			Error("e")
			Warnf("%s", "w")
			Info("i")
			Debugf("d %d", 1)
			assert.Equal(t, tc.out, buf.String())
		})
	}
}

func TestLoggerSilenced(t *testing.T) {
	defer SetFileDescriptor(os.Stdout)
	SetWriter(nil)
	// must not panic without a destination
	Println("nothing")
	Errorf("nothing %d", 1)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("DEBUG"))
	assert.Equal(t, INFO, ParseLevel("INFO"))
	assert.Equal(t, WARN, ParseLevel("WARN"))
	assert.Equal(t, ERROR, ParseLevel("whatever"))
}

func TestWriter(t *testing.T) {
	defer SetFileDescriptor(os.Stdout)
	var buf bytes.Buffer
	SetWriter(&buf)
	n, err := fmt.Fprintf(Writer(), "order %d\n", 3)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "order 3\n", buf.String())
}

func TestLoggerConcurrentReconfigure(t *testing.T) {
	defer SetFileDescriptor(os.Stdout)
	defer SetLevel(GetLevel())

	var buf bytes.Buffer
	SetWriter(&buf)
	SetLevel(DEBUG)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(h int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Debugf("hart %d edge %d", h, j)
			}
		}(i)
	}
	for j := 0; j < 50; j++ {
		SetLevel(DEBUG)
		SetWriter(&buf)
	}
	wg.Wait()

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.True(t, strings.HasPrefix(line, "debug: hart "), line)
	}
}
