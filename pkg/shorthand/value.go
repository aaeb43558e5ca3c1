package shorthand

import (
	"math/big"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a parsed shorthand value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	integer *big.Int
	float   float64
	text    string
	items   []Value
	mapping *Mapping
}

func Null() Value {
	return Value{kind: KindNull}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Int wraps an arbitrary precision integer. A nil n is treated as zero.
func Int(n *big.Int) Value {
	if n == nil {
		n = new(big.Int)
	}
	return Value{kind: KindInt, integer: n}
}

func Int64(n int64) Value {
	return Int(big.NewInt(n))
}

func Float(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// Map wraps m as a Value. A nil m is an empty mapping.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, mapping: m}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

func (v Value) AsInt() (*big.Int, bool) {
	if v.kind != KindInt {
		return nil, false
	}
	return new(big.Int).Set(v.integer), true
}

func (v Value) AsFloat() (float64, bool) {
	return v.float, v.kind == KindFloat
}

func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindString
}

func (v Value) Items() ([]Value, bool) {
	return v.items, v.kind == KindSequence
}

func (v Value) AsMapping() (*Mapping, bool) {
	return v.mapping, v.kind == KindMapping
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an insertion-ordered string keyed map. Setting an existing key
// replaces its value and keeps its original position. The zero value is an
// empty mapping ready to use.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

func (m *Mapping) Set(key string, value Value) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

func (m *Mapping) Get(key string) (Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

func (m *Mapping) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

func (m *Mapping) Len() int {
	return len(m.entries)
}

func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
