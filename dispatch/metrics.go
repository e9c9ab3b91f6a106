// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/touchstone"
	"go.uber.org/fx"
)

// Names
const (
	DispatchCounter = "build_dispatches_total"
)

// Labels
const (
	OutcomeLabel = "outcome"
)

// Label Values
const (
	SuccessOutcome = "success"
	FailureOutcome = "failure"
)

// ProvideMetrics returns the Metrics relevant to this package.
func ProvideMetrics() fx.Option {
	return fx.Options(
		touchstone.CounterVec(
			prometheus.CounterOpts{
				Name: DispatchCounter,
				Help: "Counter for build dispatches (and their success/failure outcomes) against the build service.",
			},
			OutcomeLabel,
		),
	)
}

type Measures struct {
	fx.In
	Dispatches *prometheus.CounterVec `name:"build_dispatches_total"`
}
