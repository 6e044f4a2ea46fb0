// File: doc.go
// Title: Static Table Generator Package Documentation
// Description: Build-time generation of static command tables.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-10
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-10 v0.1.0: Initial implementation

/*
Package staticgen turns a command manifest into Go source declaring a
registry.Table. The generated table is handed to registry.NewStatic or
registry.MustStatic together with the routines, so lookups need no manifest
at run time.

The manifest path defaults to unilang.commands.yaml and can be overridden
with UNILANG_STATIC_COMMANDS_PATH. Manifest defaults apply as usual: a
command without status is stable and one without version gets 1.0.0.

Typical use from a go:generate directive:

	//go:generate go run github.com/msto63/unilang/cmd/unilang generate -m commands.yaml -o static_commands.go -p builtin
*/
package staticgen
