// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	cbtypes "github.com/aws/aws-sdk-go-v2/service/codebuild/types"
	"github.com/aws/smithy-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/core-automation/codecommit-listener/event"
)

// client captures the methods of interest from the CodeBuild API. This
// should help mock API calls as well.
type client interface {
	StartBuild(ctx context.Context, in *codebuild.StartBuildInput, optFns ...func(*codebuild.Options)) (*codebuild.StartBuildOutput, error)
}

// Config carries the deployment-wide values threaded into the dispatcher.
type Config struct {
	// BucketName is the automation bucket handed to every build as
	// BUCKET_NAME.
	BucketName string `validate:"required"`

	// Region is the region builds are started in. (Optional) Defaults to the
	// region of the ambient AWS configuration.
	Region string
}

// StartError indicates the remote build could not be started, including the
// case where no build project exists for the derived project name. Dispatches
// are not retried.
type StartError struct {
	Project string
	Err     error
}

func (e StartError) Error() string {
	return fmt.Sprintf("failed to start build for project %s: %s", e.Project, e.Err)
}

func (e StartError) Unwrap() error { return e.Err }

// Dispatcher starts build jobs for deployment identities.
type Dispatcher struct {
	client     client
	bucketName string
	measures   Measures
}

func newDispatcher(c client, config Config, measures Measures) *Dispatcher {
	return &Dispatcher{
		client:     c,
		bucketName: config.BucketName,
		measures:   measures,
	}
}

// Start runs the build project named {portfolio}-{app} at the identity's
// branch with the fixed environment override set, returning the build
// descriptor unmodified.
//
// BUILD is the short commit hash and BUILD_NUMBER the allocated sequence
// number; the two are distinct on purpose.
func (d *Dispatcher) Start(ctx context.Context, identity event.DeploymentIdentity, buildNumber string) (*cbtypes.Build, error) {
	project := identity.ProjectName()

	overrides := []cbtypes.EnvironmentVariable{
		plaintext("CLIENT", identity.Client),
		plaintext("PORTFOLIO", identity.Portfolio),
		plaintext("APP", identity.App),
		plaintext("BRANCH", identity.Branch),
		plaintext("BUILD", identity.Build),
		plaintext("BUILD_NUMBER", buildNumber),
		plaintext("BUCKET_NAME", d.bucketName),
	}

	out, err := d.client.StartBuild(ctx, &codebuild.StartBuildInput{
		ProjectName:                  aws.String(project),
		SourceVersion:                aws.String(identity.Branch),
		EnvironmentVariablesOverride: overrides,
	})
	if err != nil {
		d.measures.Dispatches.With(prometheus.Labels{OutcomeLabel: FailureOutcome}).Add(1)
		fields := []zap.Field{zap.String("project", project), zap.Error(err)}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.String("code", apiErr.ErrorCode()))
		}
		var notFound *cbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			sallust.Get(ctx).Error("no build project for repository", fields...)
		} else {
			sallust.Get(ctx).Error("failed to start build", fields...)
		}
		return nil, StartError{Project: project, Err: err}
	}

	d.measures.Dispatches.With(prometheus.Labels{OutcomeLabel: SuccessOutcome}).Add(1)
	sallust.Get(ctx).Info("build started",
		zap.String("project", project),
		zap.String("sourceVersion", identity.Branch),
		zap.Stringp("buildId", out.Build.Id))
	return out.Build, nil
}

func plaintext(name, value string) cbtypes.EnvironmentVariable {
	return cbtypes.EnvironmentVariable{
		Name:  aws.String(name),
		Value: aws.String(value),
		Type:  cbtypes.EnvironmentVariableTypePlaintext,
	}
}

// Provide builds the dispatcher and its metrics for the application
// container.
func Provide() fx.Option {
	return fx.Options(
		ProvideMetrics(),
		fx.Provide(
			func(awsConfig aws.Config, config Config, measures Measures) *Dispatcher {
				c := codebuild.NewFromConfig(awsConfig, func(o *codebuild.Options) {
					if config.Region != "" {
						o.Region = config.Region
					}
				})
				return newDispatcher(c, config, measures)
			},
		),
	)
}
