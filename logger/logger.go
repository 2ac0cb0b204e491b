// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logger implements a simple logger with a few error levels.
package logger

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Level represents the amount of detail in which the log is output.
type Level int

const (
	fatal Level = iota
	// ERROR only log errors
	ERROR
	// WARN only log warnings and errors
	WARN
	// INFO log information, warnings and errors
	INFO
	// DEBUG log as much as possible
	DEBUG
)

var (
	mu     sync.Mutex
	logger *bufio.Writer
	level  = ERROR
	tagged bool

	errTag  = color.New(color.FgRed, color.Bold).SprintFunc()
	warnTag = color.New(color.FgYellow).SprintFunc()
	dbgTag  = color.New(color.FgBlue).SprintFunc()
)

func init() {
	SetFileDescriptor(os.Stdout)
}

// SetFileDescriptor sets the file descriptor to which the output is sent.
// If fd is nil, no output is shown.
func SetFileDescriptor(fd *os.File) {
	if fd == nil {
		SetWriter(nil)
		return
	}
	SetWriter(fd)
	mu.Lock()
	tagged = term.IsTerminal(int(fd.Fd())) && !color.NoColor
	mu.Unlock()
}

// SetWriter redirects the output to w. A nil writer silences the logger.
// Level tags are written without colors.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	tagged = false
	if w == nil {
		logger = nil
		return
	}
	logger = bufio.NewWriter(w)
}

// SetLevel reconfigures the error level of the logger.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current error level.
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// ParseLevel maps a level name to a Level. Unknown names map to ERROR.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	default:
		return ERROR
	}
}

// Fatal works as Error, but aborts the program.
func Fatal(args ...any) {
	Println(args...)
	fail()
}

// Fatalf works as Errorf, but aborts the program.
func Fatalf(format string, args ...any) {
	Printf(format, args...)
	Println()
	fail()
}

// Error works as fmt.Print, but it adds a newline at the end of the format string.
func Error(args ...any) {
	if !enabled(ERROR) {
		return
	}
	Println(prefix("error:", errTag), fmt.Sprint(args...))
}

// Errorf works as fmt.Printf, but it adds a newline at the end of the format string.
func Errorf(format string, args ...any) {
	if !enabled(ERROR) {
		return
	}
	Println(prefix("error:", errTag), fstr(format, args...))
}

// Warn works as fmt.Print when error level is WARN. It adds a newline at the end of the format string.
func Warn(args ...any) {
	if !enabled(WARN) {
		return
	}
	Println(prefix("warning:", warnTag), fmt.Sprint(args...))
}

// Warnf works as fmt.Printf when error level is WARN. It adds a newline at the end of the format string.
func Warnf(format string, args ...any) {
	if !enabled(WARN) {
		return
	}
	Println(prefix("warning:", warnTag), fstr(format, args...))
}

// Info works as fmt.Print when error level is INFO. It adds a newline at the end of the format string.
func Info(args ...any) {
	if !enabled(INFO) {
		return
	}
	Println(args...)
}

// Infof works as fmt.Printf when error level is INFO. It adds a newline at the end of the format string.
func Infof(format string, args ...any) {
	if !enabled(INFO) {
		return
	}
	Printf(format, args...)
	Println()
}

// Debug works as fmt.Print when error level is DEBUG. It adds a newline at the end of the format string.
func Debug(args ...any) {
	if !enabled(DEBUG) {
		return
	}
	Println(prefix("debug:", dbgTag), fmt.Sprint(args...))
}

// Debugf works as fmt.Printf when error level is DEBUG. It adds a newline at the end of the format string.
func Debugf(format string, args ...any) {
	if !enabled(DEBUG) {
		return
	}
	Println(prefix("debug:", dbgTag), fstr(format, args...))
}

// Print works as fmt.Print, but flushes the file descriptor.
func Print(args ...any) {
	fprint(args...)
}

// Println works as fmt.Println, but flushes the file descriptor.
func Println(args ...any) {
	fprintln(args...)
}

// Printf works as fmt.Printf, but flushes the file descriptor.
func Printf(format string, args ...any) {
	fprintf(format, args...)
}

var fstr = fmt.Sprintf

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil && level >= l
}

func prefix(tag string, paint func(a ...any) string) string {
	mu.Lock()
	defer mu.Unlock()
	if tagged {
		return paint(tag)
	}
	return tag
}

func fprint(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	if _, err := fmt.Fprint(logger, args...); err != nil {
		fail()
	}
	flush()
}

func fprintln(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	if _, err := fmt.Fprintln(logger, args...); err != nil {
		fail()
	}
	flush()
}

func fprintf(format string, args ...any) {
	fprint(fstr(format, args...))
}

func flush() {
	if logger.Flush() != nil {
		fail()
	}
}

func fail() {
	// use fatal instead of panic to make linter happy
	log.Fatal()
}

// Writer returns an io.Writer printing through the logger. Output is
// dropped when the logger is silenced.
func Writer() io.Writer {
	return writer{}
}

type writer struct{}

func (writer) Write(p []byte) (int, error) {
	Print(string(p))
	return len(p), nil
}
