// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type timeStats struct {
	sum  float64
	sum2 float64
	cnt  int
}

// Stats keeps tracks of verdict counts and timing measurements
type Stats struct {
	counts map[CheckStatus]int
	start  time.Time
	time   map[string]timeStats
}

// NewStats returns a new Stats object
func NewStats() *Stats {
	return &Stats{
		counts: make(map[CheckStatus]int),
		start:  time.Now(),
		time:   make(map[string]timeStats),
	}
}

// Inc increments the count of status s
func (s *Stats) Inc(st CheckStatus) {
	s.counts[st]++
}

// Count returns the count of status s
func (s *Stats) Count(st CheckStatus) int {
	return s.counts[st]
}

// Total returns the number of counted verdicts
func (s *Stats) Total() int {
	var n int
	for _, c := range s.counts {
		n += c
	}
	return n
}

// Rejected returns the number of verdicts that are consistency violations
func (s *Stats) Rejected() int {
	var n int
	for st, c := range s.counts {
		if st.Rejected() {
			n += c
		}
	}
	return n
}

// AddTime adds a time durations to a tag
func (s *Stats) AddTime(tag string, d time.Duration) {
	t := s.time[tag]
	t.sum += float64(d)
	t.sum2 += float64(d) * float64(d)
	t.cnt++
	s.time[tag] = t
}

func (ts timeStats) mean() time.Duration {
	if ts.cnt == 0 {
		return 0
	}
	return time.Duration(ts.sum / float64(ts.cnt))
}

func (ts timeStats) sd() time.Duration {
	if ts.cnt == 0 {
		return 0
	}
	cnt := float64(ts.cnt)
	v := ts.sum2/cnt - math.Pow(ts.sum/cnt, 2)
	if v < 0 {
		v = 0
	}
	return time.Duration(math.Sqrt(v))
}

// GetTime returns mean and standard deviation of the durations of a tag.
func (s *Stats) GetTime(tag string) (time.Duration, time.Duration) {
	if tstats, has := s.time[tag]; has {
		return tstats.mean(), tstats.sd()
	}
	return 0, 0
}

// String is the string representation of the stats object.
func (s *Stats) String() string {
	var str string
	statuses := make([]CheckStatus, 0, len(s.counts))
	for k := range s.counts {
		statuses = append(statuses, k)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	for _, k := range statuses {
		str += fmt.Sprintf("%18v: %d\n", k, s.counts[k])
	}

	elapsed := time.Since(s.start)
	str += fmt.Sprintf("\nTotal time: %v (%v)\n", elapsed.Seconds(), elapsed)

	tags := make([]string, 0, len(s.time))
	for tag := range s.time {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		tstats := s.time[tag]
		str += fmt.Sprintf("Mean time %s: %v (sd=%v cnt=%v)\n", tag, tstats.mean(), tstats.sd(), tstats.cnt)
	}
	return str
}
