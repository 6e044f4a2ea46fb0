// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, context cloning, formatters,
//              error integration and timers.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	ulerror "github.com/msto63/unilang/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf}), &buf
}

func TestNew(t *testing.T) {
	logger := New()

	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")
	logger.Audit("always shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("entries below the minimum level were written:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "[AUD] always shown") {
		t.Errorf("expected warn and audit entries:\n%s", out)
	}
}

func TestWithFieldDoesNotModifyParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelDebug, FormatText)
	child := parent.WithField("component", "unilang-parser")

	if child == parent {
		t.Fatal("WithField() should return a new logger")
	}

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Contains(lines[0], "component=") {
		t.Errorf("parent line has child field: %s", lines[0])
	}
	if !strings.Contains(lines[1], "component=unilang-parser") {
		t.Errorf("child line lacks field: %s", lines[1])
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.WithName("registry").WithRequestID("r-1").Info("registered", Fields{"name": ".a", "aliases": 2})

	out := buf.String()
	for _, want := range []string{"[INF]", "{registry}", "(req=r-1)", "registered", "[aliases=2 name=.a]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.WithName("pipeline").ErrorWithErr("execution failed", errors.New("boom"), Fields{"command": ".math.div"})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	checks := map[string]interface{}{
		"level":   "error",
		"message": "execution failed",
		"logger":  "pipeline",
		"error":   "boom",
		"command": ".math.div",
	}
	for k, want := range checks {
		if decoded[k] != want {
			t.Errorf("%s = %v, want %v", k, decoded[k], want)
		}
	}
}

func TestLogfmtFormatter(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	logger.Info("lookup", Fields{"name": ".math.add", "hit": true})

	out := buf.String()
	for _, want := range []string{"level=info", `message="lookup"`, "hit=true", `name=".math.add"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestConsoleFormatterWithoutColors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableColors = true
	f.DisableTimestamp = true

	out, err := f.Format(NewEntry(LevelWarn, "deprecated command"))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(out) != "[WRN] deprecated command\n" {
		t.Errorf("Format() = %q", out)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"low severity logs info", ulerror.New("typo").WithCode(ulerror.CodeCommandNotFound), "[INF]"},
		{"medium severity logs warn", ulerror.New("routine failed").WithCode(ulerror.CodeExecution), "[WRN]"},
		{"high severity logs error", ulerror.New("bad alias").WithCode(ulerror.CodeAliasConflict), "[ERR]"},
		{"plain error logs error", errors.New("plain"), "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatText)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("LogError() output = %q, want level %s", buf.String(), tt.wantLevel)
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace, FormatText)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not write")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"err", LevelError, false},
		{"audit", LevelAudit, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	logger.Audit("nothing")
	logger.Error("nothing")
	if logger.IsLevelEnabled(LevelError) {
		t.Error("nop logger should not enable error level")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("pipeline.process")
	timer.Checkpoint("parsed", Fields{"instructions": 2})
	elapsed := timer.Stop()

	if elapsed < 0 {
		t.Errorf("Stop() = %v", elapsed)
	}
	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	out := buf.String()
	if !strings.Contains(out, "pipeline.process checkpoint: parsed") {
		t.Errorf("missing checkpoint: %s", out)
	}
	if !strings.Contains(out, "pipeline.process completed") {
		t.Errorf("missing completion: %s", out)
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	logger.StartTimer("interpreter.run").StopWithError(errors.New("routine failed"))

	out := buf.String()
	if !strings.Contains(out, "[ERR] interpreter.run failed") || !strings.Contains(out, "success=false") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestTimerStopWithResultEscalatesFailures(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.StartTimer("batch").StopWithResult(true, nil)
	if buf.Len() != 0 {
		t.Errorf("successful debug result should be filtered: %s", buf.String())
	}

	logger.StartTimer("batch").StopWithResult(false, 3)
	if !strings.Contains(buf.String(), "[WRN] batch completed with errors") {
		t.Errorf("failed result should be logged at warn: %s", buf.String())
	}
}

func TestTimerCancel(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatText)
	timer := logger.StartTimer("x")
	timer.Cancel()
	timer.Checkpoint("late")
	if timer.Stop() != 0 || buf.Len() != 0 {
		t.Error("cancelled timer should not log")
	}
}
