package batching

import "fmt"

// Partition splits items into consecutive batches of at most size elements, preserving order.
// Every batch except possibly the last holds exactly size elements. An empty input yields no batches.
func Partition[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf(invalidBatchSizeTemplateConstant, ErrInvalidConfiguration, size)
	}

	batchCount := CountBatches(len(items), size)
	batches := make([][]T, 0, batchCount)
	for batchIndex := 0; batchIndex < batchCount; batchIndex++ {
		startIndex := batchIndex * size
		endIndex := startIndex + size
		if endIndex > len(items) {
			endIndex = len(items)
		}
		// full slice expression keeps appends on one batch from overwriting the next
		batches = append(batches, items[startIndex:endIndex:endIndex])
	}

	return batches, nil
}

// CountBatches returns the number of batches needed to cover total items with the given size.
// Non-positive sizes or totals yield zero.
func CountBatches(total int, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	batchCount := total / size
	if total%size > 0 {
		batchCount++
	}
	return batchCount
}
