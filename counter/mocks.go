// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package counter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/stretchr/testify/mock"

	"github.com/core-automation/codecommit-listener/event"
)

// MockClient is a mock of the narrowed SSM API surface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) PutParameter(ctx context.Context, in *ssm.PutParameterInput, _ ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	args := m.Called(ctx, in)
	if out := args.Get(0); out != nil {
		return out.(*ssm.PutParameterOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAllocator is a mock Allocator for consumers of this package.
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Allocate(ctx context.Context, identity event.DeploymentIdentity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}
