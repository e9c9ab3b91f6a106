// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/viper"
	"github.com/xmidt-org/touchstone"
	"go.uber.org/fx"
)

// provideMetrics bootstraps the metrics environment and makes it available to
// the container.
func provideMetrics() fx.Option {
	return fx.Options(
		fx.Provide(
			func(v *viper.Viper) (touchstone.Config, error) {
				var c touchstone.Config
				err := v.UnmarshalKey("prometheus", &c)
				return c, err
			},
		),
		touchstone.Provide(),
	)
}
