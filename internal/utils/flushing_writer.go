package utils

import (
	"io"
	"sync"
)

// FlushingWriter serializes writes and flushes buffered writers after each write so progress lines appear
// while long batch runs are still in flight.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// NewFlushingWriter wraps the provided writer. A nil writer yields io.Discard.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return io.Discard
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	switch flushableWriter := flushingWriter.writer.(type) {
	case flusher:
		if flushError := flushableWriter.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	case syncer:
		// terminals and pipes reject fsync; output already reached the kernel
		_ = flushableWriter.Sync()
	}

	return bytesWritten, nil
}
