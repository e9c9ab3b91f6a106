// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package listener

import (
	"context"
	"errors"

	cbtypes "github.com/aws/aws-sdk-go-v2/service/codebuild/types"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/core-automation/codecommit-listener/counter"
	"github.com/core-automation/codecommit-listener/dispatch"
	"github.com/core-automation/codecommit-listener/event"
	"github.com/core-automation/codecommit-listener/tenant"
)

// ErrInvalidEvent indicates the notification payload is missing its record
// list entirely. It is returned before any external service is called.
var ErrInvalidEvent = errors.New("no Records field in event")

// Starter captures the dispatcher behavior the handler composes.
type Starter interface {
	Start(ctx context.Context, identity event.DeploymentIdentity, buildNumber string) (*cbtypes.Build, error)
}

// Response is the handler output: one build descriptor per input record, in
// input order.
type Response struct {
	Responses []*cbtypes.Build `json:"Responses"`
}

// Handler bridges commit notifications to the build service. For each record
// it extracts a deployment identity, allocates a build number, and starts the
// matching build project.
type Handler struct {
	allocator  counter.Allocator
	dispatcher Starter
	tenants    tenant.Resolver
	logger     *zap.Logger
}

type HandlerIn struct {
	fx.In
	Allocator  counter.Allocator
	Dispatcher Starter
	Tenants    tenant.Resolver
	Logger     *zap.Logger
}

func New(in HandlerIn) *Handler {
	return &Handler{
		allocator:  in.Allocator,
		dispatcher: in.Dispatcher,
		tenants:    in.Tenants,
		logger:     in.Logger,
	}
}

// Handle processes one commit notification. Records are processed strictly in
// order with no parallel fan-out; the first failure aborts the batch and no
// partial result is returned. An empty record list is valid and yields an
// empty response list without touching any external service.
func (h *Handler) Handle(ctx context.Context, e event.Event) (Response, error) {
	ctx = sallust.With(ctx, h.logger)

	if e.Records == nil {
		h.logger.Error("event carries no record list")
		return Response{}, ErrInvalidEvent
	}

	h.logger.Info("processing commit notification", zap.Int("records", len(e.Records)))

	responses := make([]*cbtypes.Build, 0, len(e.Records))
	for _, record := range e.Records {
		build, err := h.process(ctx, record)
		if err != nil {
			return Response{}, err
		}
		responses = append(responses, build)
	}

	return Response{Responses: responses}, nil
}

func (h *Handler) process(ctx context.Context, record event.Record) (*cbtypes.Build, error) {
	identity, err := event.ExtractIdentity(record)
	if err != nil {
		return nil, err
	}

	identity.Client, err = h.tenants.ClientFor(ctx, identity)
	if err != nil {
		return nil, err
	}

	h.logger.Info("deployment identity",
		zap.String("portfolio", identity.Portfolio),
		zap.String("app", identity.App),
		zap.String("branch", identity.Branch),
		zap.String("build", identity.Build),
		zap.String("client", identity.Client))

	buildNumber, err := h.allocator.Allocate(ctx, identity)
	if err != nil {
		return nil, err
	}

	return h.dispatcher.Start(ctx, identity, buildNumber)
}

// Provide builds the handler for the application container.
func Provide() fx.Option {
	return fx.Provide(
		func(d *dispatch.Dispatcher) Starter { return d },
		New,
	)
}
