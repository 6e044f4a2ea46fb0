// File: kind.go
// Title: Argument Kinds
// Description: Recursive tagged union describing the type of a command
//              argument, together with its textual form used in manifests
//              and generated code (for example "List(Integer,;)").
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-05 v0.1.0: Added text marshalling for manifest decoding
// - 2025-11-12 v0.1.0: Quoted delimiters so every kind round-trips

package types

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tag identifies the variant of a Kind
type Tag int

const (
	TagString Tag = iota
	TagInteger
	TagFloat
	TagBoolean
	TagPath
	TagFile
	TagDirectory
	TagEnum
	TagURL
	TagDateTime
	TagPattern
	TagList
	TagMap
	TagJSONString
	TagObject
)

var tagNames = map[Tag]string{
	TagString:     "String",
	TagInteger:    "Integer",
	TagFloat:      "Float",
	TagBoolean:    "Boolean",
	TagPath:       "Path",
	TagFile:       "File",
	TagDirectory:  "Directory",
	TagEnum:       "Enum",
	TagURL:        "Url",
	TagDateTime:   "DateTime",
	TagPattern:    "Pattern",
	TagList:       "List",
	TagMap:        "Map",
	TagJSONString: "JsonString",
	TagObject:     "Object",
}

// String returns the name of the tag as written in manifests
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Default delimiters used when a collection kind does not set its own
const (
	DefaultItemDelimiter     = ','
	DefaultEntryDelimiter    = ','
	DefaultKeyValueDelimiter = '='
)

// Kind describes the type of an argument value. Item is set for lists, Key
// and Val for maps, Choices for enums. A zero delimiter means the default.
type Kind struct {
	Tag               Tag
	Choices           []string
	Item              *Kind
	Key               *Kind
	Val               *Kind
	ItemDelimiter     rune
	EntryDelimiter    rune
	KeyValueDelimiter rune
}

// Scalar returns a kind without parameters
func Scalar(tag Tag) Kind {
	return Kind{Tag: tag}
}

// EnumOf returns an Enum kind with the given choices
func EnumOf(choices ...string) Kind {
	return Kind{Tag: TagEnum, Choices: append([]string(nil), choices...)}
}

// ListOf returns a List kind; delimiter 0 selects the default
func ListOf(item Kind, delimiter rune) Kind {
	return Kind{Tag: TagList, Item: &item, ItemDelimiter: delimiter}
}

// MapOf returns a Map kind; zero delimiters select the defaults
func MapOf(key, val Kind, entry, keyValue rune) Kind {
	return Kind{Tag: TagMap, Key: &key, Val: &val, EntryDelimiter: entry, KeyValueDelimiter: keyValue}
}

// ItemSeparator returns the effective list item delimiter
func (k Kind) ItemSeparator() rune {
	if k.ItemDelimiter == 0 {
		return DefaultItemDelimiter
	}
	return k.ItemDelimiter
}

// EntrySeparator returns the effective map entry delimiter
func (k Kind) EntrySeparator() rune {
	if k.EntryDelimiter == 0 {
		return DefaultEntryDelimiter
	}
	return k.EntryDelimiter
}

// KeyValueSeparator returns the effective map key/value delimiter
func (k Kind) KeyValueSeparator() rune {
	if k.KeyValueDelimiter == 0 {
		return DefaultKeyValueDelimiter
	}
	return k.KeyValueDelimiter
}

// IsCollection reports whether the kind holds several values
func (k Kind) IsCollection() bool {
	return k.Tag == TagList || k.Tag == TagMap
}

// IsNumeric reports whether the kind is Integer or Float
func (k Kind) IsNumeric() bool {
	return k.Tag == TagInteger || k.Tag == TagFloat
}

// IsPath reports whether the kind is Path, File or Directory
func (k Kind) IsPath() bool {
	return k.Tag == TagPath || k.Tag == TagFile || k.Tag == TagDirectory
}

// Clone returns a deep copy of the kind
func (k Kind) Clone() Kind {
	c := k
	if k.Choices != nil {
		c.Choices = append([]string(nil), k.Choices...)
	}
	if k.Item != nil {
		item := k.Item.Clone()
		c.Item = &item
	}
	if k.Key != nil {
		key := k.Key.Clone()
		c.Key = &key
	}
	if k.Val != nil {
		val := k.Val.Clone()
		c.Val = &val
	}
	return c
}

// Equal reports whether two kinds describe the same type
func (k Kind) Equal(other Kind) bool {
	return k.String() == other.String()
}

// String renders the textual form accepted by ParseKind
func (k Kind) String() string {
	switch k.Tag {
	case TagEnum:
		return "Enum(" + strings.Join(k.Choices, ",") + ")"
	case TagList:
		item := Scalar(TagString)
		if k.Item != nil {
			item = *k.Item
		}
		if k.ItemSeparator() == DefaultItemDelimiter {
			return "List(" + item.String() + ")"
		}
		return "List(" + item.String() + "," + formatDelimiter(k.ItemDelimiter) + ")"
	case TagMap:
		key, val := Scalar(TagString), Scalar(TagString)
		if k.Key != nil {
			key = *k.Key
		}
		if k.Val != nil {
			val = *k.Val
		}
		if k.EntrySeparator() == DefaultEntryDelimiter && k.KeyValueSeparator() == DefaultKeyValueDelimiter {
			return "Map(" + key.String() + "," + val.String() + ")"
		}
		return "Map(" + key.String() + "," + val.String() + "," +
			formatDelimiter(k.EntrySeparator()) + "," + formatDelimiter(k.KeyValueSeparator()) + ")"
	default:
		return k.Tag.String()
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses the textual form of a kind. Tag names are matched
// case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Kind{}, fmt.Errorf("empty kind")
	}

	name, params, hasParams, err := splitKind(s)
	if err != nil {
		return Kind{}, err
	}

	tag, ok := lookupTag(name)
	if !ok {
		return Kind{}, fmt.Errorf("unknown kind %q", name)
	}

	switch tag {
	case TagEnum:
		if !hasParams {
			return Kind{}, fmt.Errorf("Enum requires a list of choices, e.g. Enum(a,b)")
		}
		choices := make([]string, 0, len(params))
		for _, c := range params {
			c = strings.TrimSpace(c)
			if c == "" {
				return Kind{}, fmt.Errorf("Enum choices must not be empty")
			}
			choices = append(choices, c)
		}
		return EnumOf(choices...), nil

	case TagList:
		if !hasParams {
			return ListOf(Scalar(TagString), 0), nil
		}
		if len(params) > 2 {
			return Kind{}, fmt.Errorf("List takes an item kind and an optional delimiter, got %q", s)
		}
		item, err := ParseKind(params[0])
		if err != nil {
			return Kind{}, fmt.Errorf("List item: %w", err)
		}
		var delim rune
		if len(params) == 2 {
			if delim, err = parseDelimiter(params[1]); err != nil {
				return Kind{}, err
			}
		}
		return ListOf(item, delim), nil

	case TagMap:
		if !hasParams {
			return MapOf(Scalar(TagString), Scalar(TagString), 0, 0), nil
		}
		if len(params) != 2 && len(params) != 4 {
			return Kind{}, fmt.Errorf("Map takes key and value kinds and optional delimiters, got %q", s)
		}
		key, err := ParseKind(params[0])
		if err != nil {
			return Kind{}, fmt.Errorf("Map key: %w", err)
		}
		val, err := ParseKind(params[1])
		if err != nil {
			return Kind{}, fmt.Errorf("Map value: %w", err)
		}
		var entry, kv rune
		if len(params) == 4 {
			if entry, err = parseDelimiter(params[2]); err != nil {
				return Kind{}, err
			}
			if kv, err = parseDelimiter(params[3]); err != nil {
				return Kind{}, err
			}
		}
		return MapOf(key, val, entry, kv), nil

	default:
		if hasParams {
			return Kind{}, fmt.Errorf("kind %s takes no parameters", tag)
		}
		return Scalar(tag), nil
	}
}

// MustParseKind is like ParseKind but panics on error. It is used by
// generated static tables.
func MustParseKind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		panic("types: " + err.Error())
	}
	return k
}

func lookupTag(name string) (Tag, bool) {
	for tag, n := range tagNames {
		if strings.EqualFold(n, name) {
			return tag, true
		}
	}
	return 0, false
}

// splitKind splits "Name(a,b(c,d))" into "Name" and the top-level parameters
func splitKind(s string) (string, []string, bool, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, false, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, false, fmt.Errorf("unbalanced parentheses in kind %q", s)
	}

	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	var params []string
	depth, start := 0, 0
	atParam := true
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if atParam && c == '\'' {
			end, ok := quotedEnd(inner, i)
			if !ok {
				return "", nil, false, fmt.Errorf("unterminated quoted delimiter in kind %q", s)
			}
			i = end
			atParam = false
			continue
		}
		switch c {
		case '(':
			depth++
			atParam = true
			continue
		case ')':
			depth--
			if depth < 0 {
				return "", nil, false, fmt.Errorf("unbalanced parentheses in kind %q", s)
			}
		case ',':
			if depth == 0 {
				params = append(params, inner[start:i])
				start = i + 1
			}
			atParam = true
			continue
		}
		if c != ' ' && c != '\t' {
			atParam = false
		}
	}
	if depth != 0 {
		return "", nil, false, fmt.Errorf("unbalanced parentheses in kind %q", s)
	}
	params = append(params, inner[start:])
	return name, params, true, nil
}

// quotedEnd returns the index of the quote closing the literal opened at
// s[open]. A backslash escapes the following byte.
func quotedEnd(s string, open int) (int, bool) {
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '\'':
			return i, true
		}
	}
	return 0, false
}

// formatDelimiter renders a delimiter rune, quoting it when the bare rune
// would be read as kind syntax or lost to trimming.
func formatDelimiter(r rune) string {
	switch {
	case r == '\'' || r == '\\':
		return "'\\" + string(r) + "'"
	case r == ',' || r == '(' || r == ')' || unicode.IsSpace(r):
		return "'" + string(r) + "'"
	default:
		return string(r)
	}
}

func parseDelimiter(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
		if strings.HasPrefix(s, "\\") {
			s = s[1:]
		}
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
