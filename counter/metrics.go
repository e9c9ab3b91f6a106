// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package counter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/touchstone"
	"go.uber.org/fx"
)

// Names
const (
	AllocationCounter = "build_number_allocations_total"
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
				Name: AllocationCounter,
				Help: "Counter for build number allocations (and their success/failure outcomes) against the parameter store.",
			},
			OutcomeLabel,
		),
	)
}

type Measures struct {
	fx.In
	Allocations *prometheus.CounterVec `name:"build_number_allocations_total"`
}
