// Package repl implements the interactive unilang shell.
//
// The shell reads one instruction string per line and runs it through a
// unilang.Pipeline. All lines of a session share one execution context, so
// routines can keep state between lines. Tab completes command names and
// aliases, the arrow keys walk the input history and a trailing '?' shows
// the help of a command.
//
// With a WatchConfig the shell reloads the registry whenever one of the
// watched command manifests is written.
package repl
