package batching_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitbatch/internal/batching"
)

func TestDelayFromMilliseconds(testInstance *testing.T) {
	testCases := []struct {
		name          string
		milliseconds  int
		expectedDelay time.Duration
		expectError   bool
	}{
		{name: "zero", milliseconds: 0, expectedDelay: 0},
		{name: "one_second", milliseconds: 1000, expectedDelay: time.Second},
		{name: "negative_passes_through", milliseconds: -5, expectedDelay: -5 * time.Millisecond},
		{name: "largest_representable", milliseconds: int(batching.MaxDelayMilliseconds), expectedDelay: time.Duration(batching.MaxDelayMilliseconds) * time.Millisecond},
		{name: "overflowing", milliseconds: math.MaxInt, expectError: true},
		{name: "overflowing_negative", milliseconds: math.MinInt, expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			delay, conversionError := batching.DelayFromMilliseconds(testCase.milliseconds)
			if testCase.expectError {
				require.ErrorIs(subtest, conversionError, batching.ErrInvalidConfiguration)
				require.Zero(subtest, delay)
				return
			}
			require.NoError(subtest, conversionError)
			require.Equal(subtest, testCase.expectedDelay, delay)
		})
	}
}
