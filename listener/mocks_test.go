// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package listener

import (
	"context"

	cbtypes "github.com/aws/aws-sdk-go-v2/service/codebuild/types"
	"github.com/stretchr/testify/mock"

	"github.com/core-automation/codecommit-listener/event"
)

type mockStarter struct {
	mock.Mock
}

func (m *mockStarter) Start(ctx context.Context, identity event.DeploymentIdentity, buildNumber string) (*cbtypes.Build, error) {
	args := m.Called(ctx, identity, buildNumber)
	if build := args.Get(0); build != nil {
		return build.(*cbtypes.Build), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ClientFor(ctx context.Context, identity event.DeploymentIdentity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}
