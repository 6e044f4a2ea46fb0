// File: parse.go
// Title: Value Coercion
// Description: Coerces raw argument text into a typed Value according to a
//              Kind. Collections are split on their own delimiters, which
//              are independent of the command-language tokenizer.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-05 v0.1.0: File and Directory kinds check the filesystem

package types

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TypeError reports that raw text could not be coerced to a kind
type TypeError struct {
	Expected Kind
	Reason   string
}

// Error implements the error interface
func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s: %s", e.Expected, e.Reason)
}

func typeErr(kind Kind, format string, args ...interface{}) *TypeError {
	return &TypeError{Expected: kind, Reason: fmt.Sprintf(format, args...)}
}

// Parse coerces input to kind. The returned error is always a *TypeError.
func Parse(input string, kind Kind) (Value, error) {
	switch kind.Tag {
	case TagString:
		return Value{tag: TagString, raw: input, v: input}, nil

	case TagInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
		if err != nil {
			return Value{}, typeErr(kind, "invalid integer '%s'", input)
		}
		return Value{tag: TagInteger, raw: input, v: i}, nil

	case TagFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return Value{}, typeErr(kind, "invalid float '%s'", input)
		}
		return Value{tag: TagFloat, raw: input, v: f}, nil

	case TagBoolean:
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "true", "1", "yes":
			return Value{tag: TagBoolean, raw: input, v: true}, nil
		case "false", "0", "no":
			return Value{tag: TagBoolean, raw: input, v: false}, nil
		}
		return Value{}, typeErr(kind, "invalid boolean value '%s'", input)

	case TagEnum:
		for _, c := range kind.Choices {
			if c == input {
				return Value{tag: TagEnum, raw: input, v: input}, nil
			}
		}
		return Value{}, typeErr(kind, "value '%s' is not one of the allowed choices: %s",
			input, strings.Join(kind.Choices, ", "))

	case TagPath, TagFile, TagDirectory:
		return parsePath(input, kind)

	case TagURL:
		u, err := url.Parse(input)
		if err != nil {
			return Value{}, typeErr(kind, "%v", err)
		}
		if u.Scheme == "" {
			return Value{}, typeErr(kind, "relative URL without a base: '%s'", input)
		}
		return Value{tag: TagURL, raw: input, v: u}, nil

	case TagDateTime:
		t, err := time.Parse(time.RFC3339, input)
		if err != nil {
			return Value{}, typeErr(kind, "invalid RFC 3339 date-time '%s'", input)
		}
		return Value{tag: TagDateTime, raw: input, v: t}, nil

	case TagPattern:
		re, err := regexp.Compile(input)
		if err != nil {
			return Value{}, typeErr(kind, "%v", err)
		}
		return Value{tag: TagPattern, raw: input, v: re}, nil

	case TagList:
		return parseList(input, kind)

	case TagMap:
		return parseMap(input, kind)

	case TagJSONString:
		if !json.Valid([]byte(input)) {
			return Value{}, typeErr(kind, "invalid JSON")
		}
		return Value{tag: TagJSONString, raw: input, v: input}, nil

	case TagObject:
		var obj interface{}
		if err := json.Unmarshal([]byte(input), &obj); err != nil {
			return Value{}, typeErr(kind, "invalid JSON: %v", err)
		}
		return Value{tag: TagObject, raw: input, v: obj}, nil
	}

	return Value{}, typeErr(kind, "unsupported kind")
}

func parsePath(input string, kind Kind) (Value, error) {
	if input == "" {
		return Value{}, typeErr(kind, "path cannot be empty")
	}
	if kind.Tag == TagPath {
		return Value{tag: TagPath, raw: input, v: input}, nil
	}

	info, err := os.Stat(input)
	switch {
	case err != nil && kind.Tag == TagFile:
		return Value{}, typeErr(kind, "file not found at path: %s", input)
	case err != nil:
		return Value{}, typeErr(kind, "directory not found at path: %s", input)
	case kind.Tag == TagFile && info.IsDir():
		return Value{}, typeErr(kind, "expected a file, but found a directory")
	case kind.Tag == TagDirectory && !info.IsDir():
		return Value{}, typeErr(kind, "expected a directory, but found a file")
	}
	return Value{tag: kind.Tag, raw: input, v: input}, nil
}

func parseList(input string, kind Kind) (Value, error) {
	if input == "" {
		return Value{tag: TagList, raw: input, v: []Value{}}, nil
	}

	item := Scalar(TagString)
	if kind.Item != nil {
		item = *kind.Item
	}

	parts := strings.Split(input, string(kind.ItemSeparator()))
	items := make([]Value, 0, len(parts))
	for _, part := range parts {
		v, err := Parse(part, item)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	return Value{tag: TagList, raw: input, v: items}, nil
}

func parseMap(input string, kind Kind) (Value, error) {
	if input == "" {
		return Value{tag: TagMap, raw: input, v: map[string]Value{}}, nil
	}

	val := Scalar(TagString)
	if kind.Val != nil {
		val = *kind.Val
	}
	kv := string(kind.KeyValueSeparator())

	entries := strings.Split(input, string(kind.EntrySeparator()))
	m := make(map[string]Value, len(entries))
	for _, entry := range entries {
		key, raw, ok := strings.Cut(entry, kv)
		if !ok {
			return Value{}, typeErr(kind, "Invalid map entry: '%s'. Expected 'key%svalue'", entry, kv)
		}
		if kind.Key != nil {
			if _, err := Parse(key, *kind.Key); err != nil {
				return Value{}, err
			}
		}
		v, err := Parse(raw, val)
		if err != nil {
			return Value{}, err
		}
		m[key] = v
	}
	return Value{tag: TagMap, raw: input, v: m}, nil
}
