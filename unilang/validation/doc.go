// Package validation is the dependency-free core that decides whether a
// command definition is well formed.
//
// Package: validation
// Title: Command Definition Validation
// Description: Pure functions checking command names, namespaces, versions,
//              aliases and argument declarations. The dynamic registry, the
//              static registry constructor, the manifest loaders and the
//              static table generator all call the same checks, so no code
//              path can produce a malformed entry.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-05 v0.1.0: Added argument and rule compatibility checks
//
// Usage:
//   if err := validation.ValidateCommandName(".add"); err != nil {
//     // err is a *ulerror.Error with CodeInvalidCommandName
//   }
//
//   result := validation.Check(def)
//   for _, p := range result.Problems {
//     fmt.Println(p.Field, p.Message)
//   }
//
//   full := validation.FullName(".math", ".add") // ".math.add"
package validation
