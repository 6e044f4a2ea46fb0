// File: timer.go
// Title: Operation Timers
// Description: Measures the duration of an operation and logs its outcome,
//              with optional intermediate checkpoints.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// StartTime returns the time when the timer was started
func (t *Timer) StartTime() time.Time {
	return t.startTime
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

// Stop stops the timer and logs the elapsed time. A second call returns 0.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}

	elapsed := t.finish()
	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, t.fields)
	}
	return elapsed
}

// StopWithError stops the timer and logs err with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}

	elapsed := t.finish()
	t.fields["success"] = false
	if t.logger != nil {
		t.logger.log(LevelError, t.operation+" failed", err, t.fields)
	}
	return elapsed
}

// StopWithResult stops the timer and logs the outcome. Failures are logged
// at least at warn level.
func (t *Timer) StopWithResult(success bool, result interface{}) time.Duration {
	if t.stopped {
		return 0
	}

	elapsed := t.finish()
	t.fields["success"] = success
	if result != nil {
		t.fields["result"] = result
	}

	message := t.operation + " completed successfully"
	level := t.level
	if !success {
		message = t.operation + " completed with errors"
		if level < LevelWarn {
			level = LevelWarn
		}
	}

	if t.logger != nil {
		t.logger.log(level, message, nil, t.fields)
	}
	return elapsed
}

// Checkpoint logs an intermediate timing checkpoint at debug level
func (t *Timer) Checkpoint(name string, fields ...Fields) {
	if t.stopped || t.logger == nil {
		return
	}

	elapsed := t.Elapsed()
	combined := Fields{
		"operation":  t.operation,
		"checkpoint": name,
		"elapsed_ms": float64(elapsed.Nanoseconds()) / 1e6,
	}
	for k, v := range t.fields {
		combined[k] = v
	}
	for _, f := range fields {
		for k, v := range f {
			combined[k] = v
		}
	}

	t.logger.log(LevelDebug, t.operation+" checkpoint: "+name, nil, combined)
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.stopped = true
}

func (t *Timer) finish() time.Duration {
	elapsed := t.Elapsed()
	t.stopped = true
	t.fields["operation"] = t.operation
	t.fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	t.fields["duration"] = elapsed.String()
	return elapsed
}
