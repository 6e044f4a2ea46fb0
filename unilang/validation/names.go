// File: names.go
// Title: Name, Namespace and Version Checks
// Description: Checks for the identifiers that make up command names,
//              namespaces and aliases, plus semantic version strings.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package validation

import (
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	ulstringx "github.com/msto63/unilang/utils/stringx"
	"golang.org/x/mod/semver"
)

// Delimiter separates namespace and command segments
const Delimiter = "."

// ValidateCommandName checks a dot-prefixed command name such as ".add"
func ValidateCommandName(name string) error {
	return validateDotted(name, "command name", ulerror.CodeInvalidCommandName, "validation.ValidateCommandName")
}

// ValidateNamespace checks a namespace. The empty namespace and "." denote
// the root and are valid.
func ValidateNamespace(namespace string) error {
	if namespace == "" || namespace == Delimiter {
		return nil
	}
	return validateDotted(namespace, "namespace", ulerror.CodeInvalidNamespace, "validation.ValidateNamespace")
}

// ValidateVersion checks that version is a semantic version. "1", "1.2",
// "1.2.3", pre-release and build suffixes are accepted, with or without a
// leading "v".
func ValidateVersion(version string) error {
	if ulstringx.IsBlank(version) {
		return ulerror.New("version must not be empty").
			WithCode(ulerror.CodeInvalidVersion).
			WithOperation("validation.ValidateVersion")
	}

	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ulerror.Newf("version '%s' is not a valid semantic version", version).
			WithCode(ulerror.CodeInvalidVersion).
			WithOperation("validation.ValidateVersion").
			WithDetail("version", version)
	}
	return nil
}

// ValidateAlias checks a command alias. Aliases may omit the leading dot;
// they are indexed under their normalized form.
func ValidateAlias(alias string) error {
	if ulstringx.IsBlank(alias) {
		return ulerror.New("alias must not be empty").
			WithCode(ulerror.CodeInvalidCommandName).
			WithOperation("validation.ValidateAlias")
	}
	return validateDotted(NormalizeName(alias), "alias", ulerror.CodeInvalidCommandName, "validation.ValidateAlias")
}

// FullName joins a namespace and a local command name
func FullName(namespace, name string) string {
	if namespace == "" || namespace == Delimiter {
		return name
	}
	return namespace + name
}

// NormalizeName trims surrounding whitespace and adds the leading dot
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, Delimiter) {
		return name
	}
	return Delimiter + name
}

// SplitFullName splits ".a.b.c" into the namespace ".a.b" and the name ".c"
func SplitFullName(full string) (namespace, name string) {
	idx := strings.LastIndex(full, Delimiter)
	if idx <= 0 {
		return "", full
	}
	return full[:idx], full[idx:]
}

func validateDotted(s, what string, code ulerror.Code, op string) error {
	fail := func(msg string) error {
		return ulerror.New(msg).
			WithCode(code).
			WithOperation(op).
			WithDetail(strings.ReplaceAll(what, " ", "_"), s)
	}

	if s == "" {
		return fail(what + " must not be empty")
	}
	if ulstringx.ContainsWhitespace(s) {
		return fail(what + " '" + s + "' must not contain whitespace")
	}
	if !strings.HasPrefix(s, Delimiter) {
		return fail(what + " '" + s + "' must start with '.'")
	}
	if s == Delimiter {
		return fail(what + " must not be only '.'")
	}
	if strings.HasSuffix(s, Delimiter) {
		return fail(what + " '" + s + "' must not end with '.'")
	}

	for _, seg := range strings.Split(s[1:], Delimiter) {
		if seg == "" {
			return fail(what + " '" + s + "' contains consecutive dots")
		}
		if r, bad := ulstringx.FirstInvalidIdentifierRune(seg); bad {
			return fail(what + " '" + s + "' contains invalid character '" + string(r) + "'")
		}
	}
	return nil
}
