// File: doc.go
// Title: Command Registry Package Documentation
// Description: Registry of command definitions and their routines with a
//              dynamic (runtime) and a static (precomputed) variant behind
//              one read interface.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-06 v0.1.0: Initial registry implementation
// - 2025-11-07 v0.1.0: Hybrid registry, lookup cache and builder

/*
Package registry provides command registration and lookup for unilang.

Three implementations share the Registry interface:

  • Dynamic: commands registered at runtime, guarded by a RWMutex
  • Static: an immutable table built once, usually from generated code
  • Hybrid: a static layer in front of a dynamic one, with a bounded LRU
    cache for dynamic lookups and a selectable lookup mode

Every variant validates definitions with the validation package before they
become visible, indexes aliases to the canonical entry and synthesizes an
"X.help" entry for every command X that is not itself a help entry. A help
entry never gets a help entry of its own, so "X.help.help" does not resolve.

Lookup counters live in a Metrics value owned by each registry instance.
They are for observability only.
*/
package registry
