// Package frontmatter parses the simplified YAML-like metadata block that
// prefixes blog and project documents:
//
//	---
//	title: "Hello World"
//	tags: [go, markdown]
//	summary: first line
//	  continued here
//	---
//	Body text
//
// The parser is deliberately forgiving: malformed lines are skipped and it
// never returns an error.
package frontmatter

import (
	"regexp"
	"strings"
)

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// listItemPattern matches a "- item" or "* item" continuation line.
var listItemPattern = regexp.MustCompile(`^[-*]\s*(.+)$`)

// Kind discriminates the Value variants.
type Kind int

const (
	// KindScalar is a single string value.
	KindScalar Kind = iota
	// KindSequence is an ordered list of strings.
	KindSequence
)

// Value is either a scalar string or a sequence of strings.
type Value struct {
	kind   Kind
	scalar string
	items  []string
}

// Scalar returns a scalar Value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Sequence returns a sequence Value holding a copy of items.
func Sequence(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, items: cp}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsSequence reports whether v holds a sequence.
func (v Value) IsSequence() bool { return v.kind == KindSequence }

// String returns the scalar value, or the items joined by ", " for sequences.
func (v Value) String() string {
	if v.kind == KindSequence {
		return strings.Join(v.items, ", ")
	}
	return v.scalar
}

// Items returns the sequence items, or a one-element slice holding a
// non-empty scalar.
func (v Value) Items() []string {
	if v.kind == KindSequence {
		cp := make([]string, len(v.items))
		copy(cp, v.items)
		return cp
	}
	if v.scalar == "" {
		return nil
	}
	return []string{v.scalar}
}

// Data is an insertion-ordered set of frontmatter fields.
type Data struct {
	keys   []string
	fields map[string]Value
}

// NewData returns empty Data.
func NewData() *Data {
	return &Data{fields: make(map[string]Value)}
}

// Set stores v under key. A repeated key keeps its original position.
func (d *Data) Set(key string, v Value) {
	if _, ok := d.fields[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = v
}

// Get returns the value stored under key.
func (d *Data) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	v, ok := d.fields[key]
	return v, ok
}

// String returns the string form of key, or "" when absent.
func (d *Data) String(key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

// Strings returns the items of key, or nil when absent.
func (d *Data) Strings(key string) []string {
	v, ok := d.Get(key)
	if !ok {
		return nil
	}
	return v.Items()
}

// Keys returns the field names in first-seen order.
func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}
	cp := make([]string, len(d.keys))
	copy(cp, d.keys)
	return cp
}

// Len returns the number of fields.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Map returns the fields as plain Go values: string for scalars and
// []string for sequences.
func (d *Data) Map() map[string]any {
	out := make(map[string]any, d.Len())
	for _, k := range d.Keys() {
		v := d.fields[k]
		if v.IsSequence() {
			out[k] = v.Items()
		} else {
			out[k] = v.scalar
		}
	}
	return out
}

// Parse splits doc into its frontmatter fields and the remaining body.
// Documents without a complete leading block return empty Data and doc.
func Parse(doc string) (*Data, string) {
	data := NewData()

	block, body, ok := split(doc)
	if !ok {
		return data, doc
	}

	currentKey := ""
	for _, raw := range strings.Split(block, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if isIndented(raw) && currentKey != "" {
			data.Set(currentKey, continueValue(data.fields[currentKey], strings.TrimSpace(raw)))
			continue
		}

		key, value, found := strings.Cut(raw, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		data.Set(key, parseValue(key, strings.TrimSpace(value)))
		currentKey = key
	}

	return data, body
}

// split locates the delimited block at the start of doc.
func split(doc string) (block, body string, ok bool) {
	first, rest, found := strings.Cut(doc, "\n")
	if !found || !isDelimiter(first) {
		return "", "", false
	}

	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		end := strings.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}

		if isDelimiter(line) {
			block = strings.TrimSuffix(rest[:offset], "\n")
			if end < 0 {
				return block, "", true
			}
			return block, rest[offset+end+1:], true
		}

		if end < 0 {
			break
		}
		offset += end + 1
	}

	return "", "", false
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}

func isIndented(line string) bool {
	return line[0] == ' ' || line[0] == '\t'
}

// parseValue interprets a trimmed raw value: quote stripping, bracket lists,
// and comma-separated tags.
func parseValue(key, value string) Value {
	value = unquote(value)

	if len(value) >= 2 && value[0] == '[' && value[len(value)-1] == ']' {
		return Sequence(splitList(value[1 : len(value)-1])...)
	}
	if strings.EqualFold(key, "tags") && strings.Contains(value, ",") {
		return Sequence(splitList(value)...)
	}
	return Scalar(value)
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// continueValue folds an indented continuation line into the current value.
func continueValue(current Value, cont string) Value {
	if current.IsSequence() {
		if m := listItemPattern.FindStringSubmatch(cont); m != nil {
			return Sequence(append(current.Items(), m[1])...)
		}
		return Scalar(strings.Join(current.items, ",") + "\n" + cont)
	}
	return Scalar(current.scalar + "\n" + cont)
}
