// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package counter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/core-automation/codecommit-listener/event"
)

func newTestMeasures() Measures {
	return Measures{
		Allocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: AllocationCounter},
			[]string{OutcomeLabel},
		),
	}
}

func fixedClock(millis int64) func() time.Time {
	return func() time.Time {
		return time.UnixMilli(millis)
	}
}

func TestAllocate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	identity := event.DeploymentIdentity{
		Portfolio: "portfolio",
		App:       "my-repo",
		Branch:    "main",
		Build:     "abcdef1",
	}

	m := new(MockClient)
	m.On("PutParameter", mock.Anything, mock.MatchedBy(func(in *ssm.PutParameterInput) bool {
		return *in.Name == "/portfolio/my-repo/main/build_time" &&
			*in.Value == "1234567890123" &&
			in.Type == ssmtypes.ParameterTypeString &&
			*in.Overwrite
	})).Return(&ssm.PutParameterOutput{Version: 1}, nil)

	allocator := newParameterAllocator(m, newTestMeasures())
	allocator.now = fixedClock(1234567890123)

	buildNumber, err := allocator.Allocate(context.Background(), identity)
	require.NoError(err)
	assert.Equal("1", buildNumber)
	assert.Equal(float64(1), testutil.ToFloat64(allocator.measures.Allocations.WithLabelValues(SuccessOutcome)))
	m.AssertExpectations(t)
}

func TestAllocateStrictlyIncreasing(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	identity := event.DeploymentIdentity{Portfolio: "core", App: "api", Branch: "master"}

	m := new(MockClient)
	m.On("PutParameter", mock.Anything, mock.Anything).Return(&ssm.PutParameterOutput{Version: 41}, nil).Once()
	m.On("PutParameter", mock.Anything, mock.Anything).Return(&ssm.PutParameterOutput{Version: 42}, nil).Once()

	allocator := newParameterAllocator(m, newTestMeasures())

	first, err := allocator.Allocate(context.Background(), identity)
	require.NoError(err)
	second, err := allocator.Allocate(context.Background(), identity)
	require.NoError(err)

	assert.Equal("41", first)
	assert.Equal("42", second)
	m.AssertExpectations(t)
}

func TestAllocateKeysAreIndependent(t *testing.T) {
	assert := assert.New(t)

	m := new(MockClient)
	m.On("PutParameter", mock.Anything, mock.MatchedBy(func(in *ssm.PutParameterInput) bool {
		return *in.Name == "/core/api/main/build_time"
	})).Return(&ssm.PutParameterOutput{Version: 7}, nil)
	m.On("PutParameter", mock.Anything, mock.MatchedBy(func(in *ssm.PutParameterInput) bool {
		return *in.Name == "/core/api/develop/build_time"
	})).Return(&ssm.PutParameterOutput{Version: 1}, nil)

	allocator := newParameterAllocator(m, newTestMeasures())

	mainNumber, err := allocator.Allocate(context.Background(), event.DeploymentIdentity{Portfolio: "core", App: "api", Branch: "main"})
	assert.NoError(err)
	developNumber, err := allocator.Allocate(context.Background(), event.DeploymentIdentity{Portfolio: "core", App: "api", Branch: "develop"})
	assert.NoError(err)

	assert.Equal("7", mainNumber)
	assert.Equal("1", developNumber)
	m.AssertExpectations(t)
}

func TestAllocateFailure(t *testing.T) {
	assert := assert.New(t)

	storeErr := errors.New("throttled")
	m := new(MockClient)
	m.On("PutParameter", mock.Anything, mock.Anything).Return(nil, storeErr)

	allocator := newParameterAllocator(m, newTestMeasures())

	buildNumber, err := allocator.Allocate(context.Background(), event.DeploymentIdentity{Portfolio: "core", App: "api", Branch: "main"})
	assert.Empty(buildNumber)

	var allocationErr AllocationError
	assert.True(errors.As(err, &allocationErr), "expected an AllocationError, got %v", err)
	assert.Equal("/core/api/main/build_time", allocationErr.Key)
	assert.ErrorIs(err, storeErr)
	assert.Equal(float64(1), testutil.ToFloat64(allocator.measures.Allocations.WithLabelValues(FailureOutcome)))
}
