// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/core-automation/codecommit-listener/dispatch"
	"github.com/core-automation/codecommit-listener/tenant"
)

// Config is the top level configuration for the listener.
type Config struct {
	Aws      AwsConfig
	Tenant   tenant.Config
	Dispatch dispatch.Config
}

// AwsConfig controls how the AWS service clients are built.
type AwsConfig struct {
	// Region overrides the region resolved from the execution environment.
	// (Optional)
	Region string

	// AccessKey and SecretKey pin static credentials, primarily for local
	// runs. (Optional) The default credential chain is used when unset.
	AccessKey string
	SecretKey string
}

func provideConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func newAWSConfig(c AwsConfig) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	return awsconfig.LoadDefaultConfig(context.Background(), opts...)
}
