// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideConfig(t *testing.T) {
	testCases := []struct {
		Name      string
		Values    map[string]string
		ExpectErr bool
	}{
		{
			Name: "Complete configuration",
			Values: map[string]string{
				"tenant.client":       "acme",
				"dispatch.bucketName": "acme-core-automation-master",
				"dispatch.region":     "us-west-2",
			},
		},
		{
			Name: "Region is optional",
			Values: map[string]string{
				"tenant.client":       "acme",
				"dispatch.bucketName": "acme-core-automation-master",
			},
		},
		{
			Name: "Missing bucket name",
			Values: map[string]string{
				"tenant.client": "acme",
			},
			ExpectErr: true,
		},
		{
			Name: "Missing tenant client",
			Values: map[string]string{
				"dispatch.bucketName": "acme-core-automation-master",
			},
			ExpectErr: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			v := viper.New()
			for key, value := range testCase.Values {
				v.Set(key, value)
			}

			config, err := provideConfig(v)
			if testCase.ExpectErr {
				assert.Error(err)
				return
			}
			require.NoError(err)
			assert.Equal(testCase.Values["tenant.client"], config.Tenant.Client)
			assert.Equal(testCase.Values["dispatch.bucketName"], config.Dispatch.BucketName)
			assert.Equal(testCase.Values["dispatch.region"], config.Dispatch.Region)
		})
	}
}
