// File: doc.go
// Title: unilang Package Documentation
// Description: Entry point package of the command language. Combines the
//              parser, semantic analyzer and interpreter into a pipeline.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation

/*
Package unilang turns instruction strings into executed command results.

An instruction string holds one or more instructions separated by ";;":

	.math.add 1 b::2
	.greet name::"Ada Lovelace" ;; .math.sub 5 3
	.math.add ?

Processing runs three stages. The parser produces syntax trees, the
semantic analyzer resolves each instruction against a registry.Registry and
binds typed arguments, and the interpreter runs the bound routines against a
shared command.ExecutionContext.

Basic usage:

	reg := registry.NewDynamic(registry.Options{})
	_ = reg.Register(def, routine)

	p, err := unilang.NewPipeline(reg)
	if err != nil {
		return err
	}
	result := p.ProcessCommandSimple(".math.add 1 2")
	if !result.Success {
		fmt.Println(result.Error.Code, result.Error.Message)
	}

A trailing "?" requests help. The result is successful and carries one
output with Format "help". Empty input yields the command listing.

ProcessBatch runs independent inputs and keeps going after failures;
ProcessSequence stops at the first failure. ValidateCommand and
ValidateBatch parse and analyze without running any routine.
*/
package unilang
