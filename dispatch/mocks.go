// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock of the narrowed CodeBuild API surface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) StartBuild(ctx context.Context, in *codebuild.StartBuildInput, _ ...func(*codebuild.Options)) (*codebuild.StartBuildOutput, error) {
	args := m.Called(ctx, in)
	if out := args.Get(0); out != nil {
		return out.(*codebuild.StartBuildOutput), args.Error(1)
	}
	return nil, args.Error(1)
}
