// File: routines.go
// Title: Builtin Command Routines
// Description: Routines behind the demo commands of the unilang CLI, keyed
//              by the routine links used in commands.yaml.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-10
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-10 v0.1.0: Initial implementation

package builtin

import (
	"strconv"
	"strings"

	"github.com/msto63/unilang/unilang/command"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Session is the per-context state of the .session commands
type Session struct {
	Count int
}

// Routines returns the builtin routines keyed by routine link
func Routines() map[string]command.Routine {
	return map[string]command.Routine{
		"echo":          echo,
		"math_add":      mathAdd,
		"math_sub":      mathSub,
		"math_avg":      mathAvg,
		"session_count": sessionCount,
		"text_repeat":   textRepeat,
		"text_upper":    textUpper,
	}
}

func echo(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
	v, ok := cmd.Arg("words")
	if !ok {
		return command.Text(""), nil
	}
	items, _ := v.List()
	words := make([]string, len(items))
	for i, it := range items {
		words[i] = it.String()
	}
	return command.Text(strings.Join(words, " ")), nil
}

func mathAdd(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
	a, b := intArg(cmd, "a"), intArg(cmd, "b")
	return command.Text(strconv.FormatInt(a+b, 10)), nil
}

func mathSub(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
	a, b := intArg(cmd, "a"), intArg(cmd, "b")
	return command.Text(strconv.FormatInt(a-b, 10)), nil
}

func mathAvg(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
	v, _ := cmd.Arg("numbers")
	items, _ := v.List()
	if len(items) == 0 {
		return command.OutputData{}, command.NewErrorData("MATH_EMPTY_INPUT", "no numbers to average")
	}
	var sum float64
	for _, it := range items {
		f, _ := it.Float()
		sum += f
	}
	return command.Text(strconv.FormatFloat(sum/float64(len(items)), 'f', -1, 64)), nil
}

func sessionCount(_ command.VerifiedCommand, ctx *command.ExecutionContext) (command.OutputData, error) {
	s, ok := command.Get[*Session](ctx)
	if !ok {
		s = &Session{}
		command.Set(ctx, s)
	}
	s.Count++
	return command.Text(strconv.Itoa(s.Count)), nil
}

func textRepeat(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
	text := strArg(cmd, "text")
	return command.Text(strings.Repeat(text, int(intArg(cmd, "times")))), nil
}

func textUpper(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
	// a Caser is stateful and cannot be shared between goroutines
	return command.Text(cases.Upper(language.Und).String(strArg(cmd, "text"))), nil
}

func intArg(cmd command.VerifiedCommand, name string) int64 {
	v, _ := cmd.Arg(name)
	i, _ := v.Int()
	return i
}

func strArg(cmd command.VerifiedCommand, name string) string {
	v, ok := cmd.Arg(name)
	if !ok {
		return ""
	}
	if s, ok := v.Str(); ok {
		return s
	}
	return v.String()
}
