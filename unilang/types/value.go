// File: value.go
// Title: Typed Argument Values
// Description: Value holds a coerced argument together with the tag of the
//              kind it was parsed as and the raw text it came from.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package types

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Value is an immutable typed argument value
type Value struct {
	tag Tag
	raw string
	v   interface{}
}

// StringValue returns a String value
func StringValue(s string) Value {
	return Value{tag: TagString, raw: s, v: s}
}

// IntValue returns an Integer value
func IntValue(i int64) Value {
	return Value{tag: TagInteger, raw: strconv.FormatInt(i, 10), v: i}
}

// FloatValue returns a Float value
func FloatValue(f float64) Value {
	return Value{tag: TagFloat, raw: strconv.FormatFloat(f, 'g', -1, 64), v: f}
}

// BoolValue returns a Boolean value
func BoolValue(b bool) Value {
	return Value{tag: TagBoolean, raw: strconv.FormatBool(b), v: b}
}

// ListValue returns a List value holding items
func ListValue(items ...Value) Value {
	raws := make([]string, len(items))
	for i, it := range items {
		raws[i] = it.raw
	}
	return Value{tag: TagList, raw: strings.Join(raws, string(DefaultItemDelimiter)), v: append([]Value(nil), items...)}
}

// MapValue returns a Map value holding entries
func MapValue(entries map[string]Value) Value {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	m := make(map[string]Value, len(entries))
	for i, k := range keys {
		parts[i] = k + string(DefaultKeyValueDelimiter) + entries[k].raw
		m[k] = entries[k]
	}
	return Value{tag: TagMap, raw: strings.Join(parts, string(DefaultEntryDelimiter)), v: m}
}

// Tag returns the tag of the kind the value was parsed as
func (v Value) Tag() Tag {
	return v.tag
}

// Raw returns the text the value was parsed from
func (v Value) Raw() string {
	return v.raw
}

// IsZero reports whether v is the zero Value
func (v Value) IsZero() bool {
	return v.v == nil && v.raw == "" && v.tag == TagString
}

// Str returns the value as a string. It works for every textual tag
// (String, Enum, Path, File, Directory, JsonString) and returns false otherwise.
func (v Value) Str() (string, bool) {
	switch v.tag {
	case TagString, TagEnum, TagJSONString, TagPath, TagFile, TagDirectory:
		s, ok := v.v.(string)
		return s, ok
	}
	return "", false
}

// Int returns the value of an Integer
func (v Value) Int() (int64, bool) {
	i, ok := v.v.(int64)
	return i, ok
}

// Float returns the value of a Float. Integers are widened.
func (v Value) Float() (float64, bool) {
	switch n := v.v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Bool returns the value of a Boolean
func (v Value) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// Time returns the value of a DateTime
func (v Value) Time() (time.Time, bool) {
	t, ok := v.v.(time.Time)
	return t, ok
}

// URL returns the value of a Url
func (v Value) URL() (*url.URL, bool) {
	u, ok := v.v.(*url.URL)
	return u, ok
}

// Regexp returns the compiled Pattern
func (v Value) Regexp() (*regexp.Regexp, bool) {
	re, ok := v.v.(*regexp.Regexp)
	return re, ok
}

// List returns the items of a List
func (v Value) List() ([]Value, bool) {
	l, ok := v.v.([]Value)
	return l, ok
}

// Map returns the entries of a Map
func (v Value) Map() (map[string]Value, bool) {
	m, ok := v.v.(map[string]Value)
	return m, ok
}

// Interface returns the native Go value: string, int64, float64, bool,
// time.Time, *url.URL, *regexp.Regexp, []Value, map[string]Value, or the
// decoded JSON of an Object.
func (v Value) Interface() interface{} {
	return v.v
}

// Len returns the number of items of a List or Map, or the rune count of a
// textual value
func (v Value) Len() int {
	switch x := v.v.(type) {
	case []Value:
		return len(x)
	case map[string]Value:
		return len(x)
	case string:
		return utf8.RuneCountInString(x)
	}
	return utf8.RuneCountInString(v.raw)
}

// Equal reports whether two values have the same tag and native value
func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch a := v.v.(type) {
	case *regexp.Regexp:
		b, ok := other.v.(*regexp.Regexp)
		return ok && a.String() == b.String()
	case *url.URL:
		b, ok := other.v.(*url.URL)
		return ok && a.String() == b.String()
	case time.Time:
		b, ok := other.v.(time.Time)
		return ok && a.Equal(b)
	case []Value:
		b, ok := other.v.([]Value)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case map[string]Value:
		b, ok := other.v.(map[string]Value)
		if !ok || len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(v.v, other.v)
	}
}

// String renders the value for display
func (v Value) String() string {
	switch x := v.v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case *url.URL:
		return x.String()
	case *regexp.Regexp:
		return x.String()
	case []Value:
		parts := make([]string, len(x))
		for i, it := range x {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]Value:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + x[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case nil:
		return v.raw
	default:
		if b, err := json.Marshal(x); err == nil {
			return string(b)
		}
		return fmt.Sprint(x)
	}
}
