package ipc

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Params is a read-only view over a request's parameters.
//
// Numbers arrive as json.Number so that integer literals can be told apart
// from floating-point ones.
type Params struct {
	values map[string]interface{}
}

// NewParams wraps values. The map must not be modified afterwards.
func NewParams(values map[string]interface{}) *Params {
	if values == nil {
		values = map[string]interface{}{}
	}
	return &Params{values: values}
}

// String returns the textual value stored at key.
func (p *Params) String(key string) (string, error) {
	value, ok := p.values[key]
	if !ok {
		return "", noParam(key)
	}
	s, ok := value.(string)
	if !ok {
		return "", badParam(key)
	}
	return s, nil
}

// I32 returns the integer stored at key narrowed to 32 bits. Narrowing keeps
// the low 32 bits, so values outside the int32 range wrap (2^31 becomes -2^31).
// Values that are not 64-bit integer literals are incompatible.
func (p *Params) I32(key string) (int32, error) {
	value, ok := p.values[key]
	if !ok {
		return 0, noParam(key)
	}
	n, ok := asInt64(value)
	if !ok {
		return 0, badParam(key)
	}
	return int32(n), nil
}

// Has reports whether key is present, whatever its type.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns the parameter names in sorted order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.values)
}

func asInt64(value interface{}) (int64, bool) {
	switch n := value.(type) {
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}
