package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFromMap_IDNormalization(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"int64", int64(7), "7"},
		{"float integral", float64(3), "3"},
		{"json number", json.Number("15"), "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromMap(map[string]any{"id": tt.id, "name": "x"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.ID() != tt.want {
				t.Errorf("ID() = %q, want %q", r.ID(), tt.want)
			}
		})
	}
}

func TestFromMap_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		m       map[string]any
		wantErr string
	}{
		{"missing id", map[string]any{"name": "x"}, "is required"},
		{"empty id", map[string]any{"id": ""}, "empty"},
		{"fractional id", map[string]any{"id": 1.5}, "not an integer"},
		{"bool id", map[string]any{"id": true}, "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.m)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q", err)
			}
		})
	}
}

func TestFromMaps_ReportsIndex(t *testing.T) {
	_, err := FromMaps([]map[string]any{{"id": 1}, {"name": "no id"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "record 1:") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_CopiesAttributes(t *testing.T) {
	attrs := map[string]any{"price": 10.0}
	r := New("a", attrs)
	attrs["price"] = 99.0

	got, _ := NumberField("price").Get(r)
	if got != 10 {
		t.Errorf("price = %v, want 10", got)
	}
}

func TestNumberField(t *testing.T) {
	r := New("a", map[string]any{
		"f": 1.5, "i": 3, "s": " 2.25 ", "bad": "abc", "nil": nil,
	})
	f := NumberField("f")
	if v, ok := f.Get(r); !ok || v != 1.5 {
		t.Errorf("f = %v, %v", v, ok)
	}
	if v, ok := NumberField("i").Get(r); !ok || v != 3 {
		t.Errorf("i = %v, %v", v, ok)
	}
	if v, ok := NumberField("s").Get(r); !ok || v != 2.25 {
		t.Errorf("s = %v, %v", v, ok)
	}
	if _, ok := NumberField("bad").Get(r); ok {
		t.Error("bad should not parse")
	}
	if _, ok := NumberField("nil").Get(r); ok {
		t.Error("nil should be absent")
	}
	if _, ok := NumberField("missing").Get(r); ok {
		t.Error("missing should be absent")
	}
}

func TestDecimalField(t *testing.T) {
	r := New("a", map[string]any{
		"f": 8.1, "i": 12, "s": "4.99", "n": json.Number("0.1"), "bad": "free",
	})
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"f", "8.1", true},
		{"i", "12", true},
		{"s", "4.99", true},
		{"n", "0.1", true},
		{"bad", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := DecimalField(tt.name).Get(r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && v.String() != tt.want {
				t.Errorf("value = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestStringsField(t *testing.T) {
	r := New("a", map[string]any{
		"one":   "spicy",
		"many":  []any{"vegan", 3, "gluten-free"},
		"typed": []string{"a", "b"},
	})

	if v, _ := StringsField("one").Get(r); len(v) != 1 || v[0] != "spicy" {
		t.Errorf("one = %v", v)
	}
	if v, _ := StringsField("many").Get(r); len(v) != 2 || v[1] != "gluten-free" {
		t.Errorf("many = %v", v)
	}
	if v, _ := StringsField("typed").Get(r); len(v) != 2 {
		t.Errorf("typed = %v", v)
	}
}

func TestTimeField(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := New("a", map[string]any{
		"t":    ts,
		"rfc":  "2024-03-01T12:00:00Z",
		"date": "2024-03-01",
		"bad":  "yesterday",
	})

	if v, ok := TimeField("t").Get(r); !ok || !v.Equal(ts) {
		t.Errorf("t = %v, %v", v, ok)
	}
	if v, ok := TimeField("rfc").Get(r); !ok || !v.Equal(ts) {
		t.Errorf("rfc = %v, %v", v, ok)
	}
	if v, ok := TimeField("date").Get(r); !ok || v.Day() != 1 {
		t.Errorf("date = %v, %v", v, ok)
	}
	if _, ok := TimeField("bad").Get(r); ok {
		t.Error("bad should not parse")
	}
}

func TestField_ZeroValue(t *testing.T) {
	var f Field[bool]
	if f.Valid() {
		t.Error("zero Field should be invalid")
	}
	if _, ok := f.Get(New("a", nil)); ok {
		t.Error("zero Field Get should report absent")
	}
}

func TestMarshalJSON(t *testing.T) {
	r := New("7", map[string]any{"name": "Soup"})
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), `"id":"7"`) || !strings.Contains(string(b), `"name":"Soup"`) {
		t.Errorf("json = %s", b)
	}
}
