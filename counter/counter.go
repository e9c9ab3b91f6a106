// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package counter

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/core-automation/codecommit-listener/event"
)

// client captures the methods of interest from the SSM API. This should help
// mock API calls as well.
type client interface {
	PutParameter(ctx context.Context, in *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// Allocator hands out build numbers for deployment targets. Successive
// allocations for the same (portfolio, app, branch) triple return strictly
// increasing numbers.
type Allocator interface {
	Allocate(ctx context.Context, identity event.DeploymentIdentity) (string, error)
}

// AllocationError indicates the parameter-store write backing a build number
// failed. Allocations are not retried; the record being processed is
// abandoned.
type AllocationError struct {
	Key string
	Err error
}

func (e AllocationError) Error() string {
	return fmt.Sprintf("build number allocation failed for %s: %s", e.Key, e.Err)
}

func (e AllocationError) Unwrap() error { return e.Err }

// parameterAllocator allocates build numbers by overwriting a versioned
// parameter and reading back the version the store assigned to the write.
// Writes to the same key are serialized by the store, so concurrent callers
// each see a distinct version; different keys do not contend. The parameter
// value is the wall clock in milliseconds and exists only for auditing; the
// version is the build number.
type parameterAllocator struct {
	client   client
	now      func() time.Time
	measures Measures
}

func newParameterAllocator(c client, measures Measures) *parameterAllocator {
	return &parameterAllocator{
		client:   c,
		now:      time.Now,
		measures: measures,
	}
}

func (a *parameterAllocator) Allocate(ctx context.Context, identity event.DeploymentIdentity) (string, error) {
	key := fmt.Sprintf("/%s/%s/%s/build_time", identity.Portfolio, identity.App, identity.Branch)
	buildTime := cast.ToString(a.now().UnixMilli())

	out, err := a.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(key),
		Value:     aws.String(buildTime),
		Type:      ssmtypes.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		a.measures.Allocations.With(prometheus.Labels{OutcomeLabel: FailureOutcome}).Add(1)
		return "", AllocationError{Key: key, Err: err}
	}

	buildNumber := cast.ToString(out.Version)
	a.measures.Allocations.With(prometheus.Labels{OutcomeLabel: SuccessOutcome}).Add(1)
	sallust.Get(ctx).Info("allocated build number",
		zap.String("key", key),
		zap.String("buildTime", buildTime),
		zap.String("buildNumber", buildNumber))
	return buildNumber, nil
}

// Provide builds the allocator and its metrics for the application container.
func Provide() fx.Option {
	return fx.Options(
		ProvideMetrics(),
		fx.Provide(
			func(cfg aws.Config, measures Measures) Allocator {
				return newParameterAllocator(ssm.NewFromConfig(cfg), measures)
			},
		),
	)
}
