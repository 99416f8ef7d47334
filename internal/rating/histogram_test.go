// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package rating

import (
	"math"
	"reflect"
	"testing"
)

func TestHistogramTopTieBreak(t *testing.T) {
	tests := []struct {
		name string
		hist Histogram
		want int
	}{
		{"empty", Histogram{}, 0},
		{"single bucket", Histogram{4: 10}, 4},
		{"clear winner", Histogram{3: 2, 4: 12, 5: 3}, 4},
		{"tie prefers higher value", Histogram{3: 5, 4: 5}, 4},
		{"three-way tie", Histogram{1: 2, 3: 2, 5: 2}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hist.Top(); got != tt.want {
				t.Errorf("Top() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHistogramMean(t *testing.T) {
	h := Histogram{3: 1, 5: 3}
	want := (3.0 + 15.0) / 4.0
	if got := h.Mean(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Mean() = %v, want %v", got, want)
	}

	if got := (Histogram{}).Mean(); got != 0 {
		t.Errorf("empty Mean() = %v, want 0", got)
	}
}

func TestHistogramReportedMeanThreshold(t *testing.T) {
	h := Histogram{5: 4}
	if got := h.ReportedMean(5); got != 0 {
		t.Errorf("below threshold: ReportedMean = %v, want 0", got)
	}

	h.Add(5)
	if got := h.ReportedMean(5); got != 5 {
		t.Errorf("at threshold: ReportedMean = %v, want 5", got)
	}
}

func TestHistogramAddRemoveRestoresState(t *testing.T) {
	h := Histogram{4: 2}
	before := h.Clone()

	h.Add(5)
	h.Remove(5)

	if !reflect.DeepEqual(h, before) {
		t.Errorf("add then remove must restore exactly: got %v, want %v", h, before)
	}
	if _, ok := h[5]; ok {
		t.Error("empty bucket must be deleted, not kept at zero")
	}
}

func TestHistogramRemoveFloorsAtZero(t *testing.T) {
	h := Histogram{}
	h.Remove(4)
	if h.Total() != 0 {
		t.Errorf("removing from empty histogram: Total = %d", h.Total())
	}

	h.Add(4)
	h.Remove(4)
	h.Remove(4)
	if h.Total() != 0 {
		t.Errorf("double remove: Total = %d", h.Total())
	}
}

func TestHistogramCloneIsIndependent(t *testing.T) {
	h := Histogram{3: 1}
	c := h.Clone()
	c.Add(3)
	if h[3] != 1 {
		t.Error("mutating the clone must not affect the original")
	}
}
