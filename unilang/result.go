// File: result.go
// Title: Pipeline Results
// Description: Result of processing one instruction string and the
//              aggregate result of a batch or sequence.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation

package unilang

import (
	"strings"

	"github.com/msto63/unilang/unilang/command"
)

// Result is the outcome of processing one instruction string
type Result struct {
	Command string               `json:"command"`
	Success bool                 `json:"success"`
	Error   *command.ErrorData   `json:"error,omitempty"`
	Outputs []command.OutputData `json:"outputs"`
}

// IsHelp reports whether the result answers a help request
func (r Result) IsHelp() bool {
	return r.Success && len(r.Outputs) == 1 && r.Outputs[0].Format == HelpFormat
}

// Text joins the content of all outputs with newlines
func (r Result) Text() string {
	parts := make([]string, len(r.Outputs))
	for i, out := range r.Outputs {
		parts[i] = out.Content
	}
	return strings.Join(parts, "\n")
}

// BatchResult aggregates the results of several instruction strings. Total
// counts the submitted inputs; a sequence that stops early has fewer
// Results than Total.
type BatchResult struct {
	Results    []Result `json:"results"`
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
}

func (b *BatchResult) add(r Result) {
	b.Results = append(b.Results, r)
	if r.Success {
		b.Successful++
	} else {
		b.Failed++
	}
}

// SuccessRate returns the share of successful inputs in percent
func (b BatchResult) SuccessRate() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Successful) / float64(b.Total) * 100
}

// AnyFailed reports whether at least one input failed
func (b BatchResult) AnyFailed() bool {
	return b.Failed > 0
}

// AllSucceeded reports whether every submitted input succeeded
func (b BatchResult) AllSucceeded() bool {
	return b.Total > 0 && b.Successful == b.Total
}
