package batching

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultBatchSize is the number of paths staged per batch when nothing else is configured.
	DefaultBatchSize = 100
	// DefaultDelayMilliseconds is the pause between batches when nothing else is configured.
	DefaultDelayMilliseconds = 1000

	invalidBatchSizeTemplateConstant = "%w: batch size must be at least 1, got %d"
	invalidDelayTemplateConstant     = "%w: delay must not be negative, got %s"
	delayOutOfRangeTemplateConstant  = "%w: delay of %d ms is out of range (maximum %d ms)"
)

// MaxDelayMilliseconds is the largest millisecond delay representable as a time.Duration.
const MaxDelayMilliseconds = math.MaxInt64 / int64(time.Millisecond)

// Configuration controls how a Runner schedules batches.
type Configuration struct {
	BatchSize int
	Delay     time.Duration
	Verbose   bool
	DryRun    bool
}

// DefaultConfiguration returns the baseline batch configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		BatchSize: DefaultBatchSize,
		Delay:     time.Duration(DefaultDelayMilliseconds) * time.Millisecond,
	}
}

// DelayFromMilliseconds converts a millisecond count into a delay duration. Counts whose magnitude exceeds
// MaxDelayMilliseconds are rejected with ErrInvalidConfiguration instead of wrapping around.
func DelayFromMilliseconds(milliseconds int) (time.Duration, error) {
	if int64(milliseconds) > MaxDelayMilliseconds || int64(milliseconds) < -MaxDelayMilliseconds {
		return 0, fmt.Errorf(delayOutOfRangeTemplateConstant, ErrInvalidConfiguration, milliseconds, MaxDelayMilliseconds)
	}
	return time.Duration(milliseconds) * time.Millisecond, nil
}

// Validate reports ErrInvalidConfiguration when the batch size or delay cannot be honored.
func (configuration Configuration) Validate() error {
	if configuration.BatchSize < 1 {
		return fmt.Errorf(invalidBatchSizeTemplateConstant, ErrInvalidConfiguration, configuration.BatchSize)
	}
	if configuration.Delay < 0 {
		return fmt.Errorf(invalidDelayTemplateConstant, ErrInvalidConfiguration, configuration.Delay)
	}
	return nil
}
