package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// IDKey is the attribute that carries the record identity in decoded payloads.
const IDKey = "id"

// Record is an immutable browsable item: an identity plus an open attribute bag.
// The engine never assumes a closed schema; readers go through Field accessors.
type Record struct {
	id    string
	attrs map[string]any
}

// New creates a Record. The attribute map is copied.
func New(id string, attrs map[string]any) Record {
	cp := make(map[string]any, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return Record{id: id, attrs: cp}
}

// FromMap builds a Record from a decoded JSON/YAML object.
// The identity is read from "id" and may be a string or an integer.
func FromMap(m map[string]any) (Record, error) {
	raw, ok := m[IDKey]
	if !ok || raw == nil {
		return Record{}, fmt.Errorf("record %q is required", IDKey)
	}
	id, err := normalizeID(raw)
	if err != nil {
		return Record{}, err
	}
	return New(id, m), nil
}

// FromMaps converts a decoded collection. The first invalid entry aborts the conversion.
func FromMaps(ms []map[string]any) ([]Record, error) {
	out := make([]Record, 0, len(ms))
	for i, m := range ms {
		r, err := FromMap(m)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func normalizeID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", fmt.Errorf("record id is empty")
		}
		return id, nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	case json.Number:
		return id.String(), nil
	case float64:
		if id != math.Trunc(id) {
			return "", fmt.Errorf("record id %v is not an integer", id)
		}
		return strconv.FormatInt(int64(id), 10), nil
	default:
		return "", fmt.Errorf("unsupported record id type %T", v)
	}
}

// ID returns the record identity.
func (r Record) ID() string { return r.id }

// Attr returns a raw attribute value.
func (r Record) Attr(name string) (any, bool) {
	v, ok := r.attrs[name]
	return v, ok && v != nil
}

// Attrs returns a copy of the attribute bag.
func (r Record) Attrs() map[string]any {
	cp := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		cp[k] = v
	}
	return cp
}

// MarshalJSON renders the attribute bag with the identity under "id".
func (r Record) MarshalJSON() ([]byte, error) {
	m := r.Attrs()
	m[IDKey] = r.id
	return json.Marshal(m) //nolint:wrapcheck // plain delegation
}
