// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"os"
	"sort"
	"strconv"
	"sync"
)

// Envvar is an environment variable known to the program.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var (
	envMu   sync.Mutex
	envvars = make(map[string]Envvar)
)

// RegEnv registers an environment variable with its default value and a
// description shown in the help message.
func RegEnv(name, defv, desc string) {
	envMu.Lock()
	defer envMu.Unlock()
	envvars[name] = Envvar{Name: name, Defv: defv, Desc: desc}
}

// GetEnv returns the value of a registered environment variable or its
// default value if unset. Unregistered variables are looked up as is.
func GetEnv(name string) string {
	if v, has := os.LookupEnv(name); has {
		return v
	}
	envMu.Lock()
	defer envMu.Unlock()
	return envvars[name].Defv
}

// GetEnvBool returns GetEnv parsed as a boolean. Invalid values are false.
func GetEnvBool(name string) bool {
	b, err := strconv.ParseBool(GetEnv(name))
	return err == nil && b
}

// GetEnvvars returns the registered environment variables sorted by name.
func GetEnvvars() []Envvar {
	envMu.Lock()
	defer envMu.Unlock()
	list := make([]Envvar, 0, len(envvars))
	for _, ev := range envvars {
		list = append(list, ev)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
