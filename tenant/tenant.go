// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

// Package tenant resolves the client identifier builds run under. The commit
// event itself carries no tenant information.
package tenant

import (
	"context"

	"go.uber.org/fx"

	"github.com/core-automation/codecommit-listener/event"
)

// Resolver supplies the tenant identifier for a deployment identity.
type Resolver interface {
	ClientFor(ctx context.Context, identity event.DeploymentIdentity) (string, error)
}

// Config configures the static resolver.
type Config struct {
	// Client is the tenant identifier handed to every build.
	Client string `validate:"required"`
}

// StaticResolver resolves every identity to the single client this listener
// deployment serves.
type StaticResolver struct {
	client string
}

func NewStaticResolver(config Config) *StaticResolver {
	return &StaticResolver{client: config.Client}
}

func (r *StaticResolver) ClientFor(context.Context, event.DeploymentIdentity) (string, error) {
	return r.client, nil
}

// Provide builds the resolver for the application container.
func Provide() fx.Option {
	return fx.Provide(
		func(config Config) Resolver {
			return NewStaticResolver(config)
		},
	)
}
