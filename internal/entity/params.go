package entity

import "math"

// Params carries template values into capability initializers. Missing or
// mistyped keys fall back to the caller's default.
type Params map[string]any

// Merge returns a copy of p with the entries of over applied on top.
func (p Params) Merge(over Params) Params {
	out := make(Params, len(p)+len(over))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Has reports whether key is set.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int returns key as an int.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(math.Round(v))
	default:
		return def
	}
}

// Bool returns key as a bool.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// String returns key as a string.
func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Strings returns key as a string slice. Decoded YAML lists arrive as []any.
func (p Params) Strings(key string, def []string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	default:
		return def
	}
}
