// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "varsnap_collect_events_total",
			Help: "Total number of collect events",
		},
		[]string{"status"}, // success, partial, or error
	)

	samplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "varsnap_samples_total",
			Help: "Total number of snapshots appended across all series",
		},
	)

	readFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "varsnap_read_failures_total",
			Help: "Total number of per-variable sampling failures",
		},
		[]string{"code"},
	)

	trackedSeries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "varsnap_tracked_series",
			Help: "Number of variables tracked in the current session",
		},
	)
)
