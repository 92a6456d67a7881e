package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitbatch/internal/utils"
)

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	executionContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/gitbatch/config.yaml")

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, configurationFilePathAvailable)
	require.Equal(testInstance, "/etc/gitbatch/config.yaml", configurationFilePath)

	_, missingAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, missingAvailable)
}
