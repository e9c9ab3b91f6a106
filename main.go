// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/core-automation/codecommit-listener/counter"
	"github.com/core-automation/codecommit-listener/dispatch"
	"github.com/core-automation/codecommit-listener/event"
	"github.com/core-automation/codecommit-listener/listener"
	"github.com/core-automation/codecommit-listener/tenant"
)

const applicationName = "codecommit-listener"

var (
	GitCommit = "undefined"
	Version   = "undefined"
	BuildTime = "undefined"
)

func main() {
	fs, v, logger, err := setup(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var handler *listener.Handler
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Supply(logger, v),
		provideMetrics(),
		fx.Provide(
			provideConfig,
			newAWSConfig,
			func(c Config) AwsConfig { return c.Aws },
			func(c Config) tenant.Config { return c.Tenant },
			func(c Config) dispatch.Config { return c.Dispatch },
		),
		counter.Provide(),
		dispatch.Provide(),
		tenant.Provide(),
		listener.Provide(),
		fx.Populate(&handler),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if eventFile, _ := fs.GetString("event"); eventFile != "" {
		runLocal(handler, logger, eventFile)
		return
	}

	lambda.Start(handler.Handle)
}

// runLocal processes a single event from a file and prints the response,
// mirroring what the runtime would deliver. Useful for exercising a profile
// and configuration without deploying.
func runLocal(h *listener.Handler, logger *zap.Logger, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("failed to read event file", zap.String("path", path), zap.Error(err))
	}

	var e event.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		logger.Fatal("failed to decode event file", zap.String("path", path), zap.Error(err))
	}

	response, err := h.Handle(context.Background(), e)
	if err != nil {
		logger.Fatal("event processing failed", zap.Error(err))
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode response", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, string(out))
}
