package sorting

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

func ids(rs []record.Record) string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID()
	}
	return strings.Join(out, ",")
}

func dishes() []record.Record {
	return []record.Record{
		record.New("a", map[string]any{"name": "Samosa", "price": 5.0, "rating": 4.0, "popularity": 80, "dateAdded": "2024-01-10"}),
		record.New("b", map[string]any{"name": "éclair", "price": 7.0, "rating": 5.0, "popularity": 95, "dateAdded": "2024-03-02"}),
		record.New("c", map[string]any{"name": "biryani", "price": 5.0, "rating": 4.0, "popularity": 80, "dateAdded": "2023-12-25"}),
		record.New("d", map[string]any{"name": "Naan", "price": 2.5, "rating": 3.0, "popularity": 60, "dateAdded": "2024-03-02"}),
	}
}

func TestApply_Keys(t *testing.T) {
	lib := NewLibrary()
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"price default asc", Spec{Key: KeyPrice}, "d,a,c,b"},
		{"price desc", Spec{Key: KeyPrice, Direction: Desc}, "b,a,c,d"},
		{"rating default desc", Spec{Key: KeyRating}, "b,a,c,d"},
		{"rating asc", Spec{Key: KeyRating, Direction: Asc}, "d,a,c,b"},
		{"popularity default desc", Spec{Key: KeyPopularity}, "b,a,c,d"},
		{"date default newest first", Spec{Key: KeyDate}, "b,d,a,c"},
		{"date asc", Spec{Key: KeyDate, Direction: Asc}, "c,a,b,d"},
		{"name collated", Spec{Key: KeyName}, "c,b,d,a"},
		{"name desc", Spec{Key: KeyName, Direction: Desc}, "a,d,b,c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(lib.Apply(dishes(), tt.spec)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApply_StableTiesInBothDirections(t *testing.T) {
	lib := NewLibrary()
	// a and c tie on price, rating and popularity; their input order must survive.
	for _, key := range []Key{KeyPrice, KeyRating, KeyPopularity} {
		for _, dir := range []Direction{Asc, Desc} {
			got := ids(lib.Apply(dishes(), Spec{Key: key, Direction: dir}))
			if strings.Index(got, "a") > strings.Index(got, "c") {
				t.Errorf("%s %s: tie order broken: %s", key, dir, got)
			}
		}
	}

	// b and d tie on date.
	for _, dir := range []Direction{Asc, Desc} {
		got := ids(lib.Apply(dishes(), Spec{Key: KeyDate, Direction: dir}))
		if strings.Index(got, "b") > strings.Index(got, "d") {
			t.Errorf("date %s: tie order broken: %s", dir, got)
		}
	}
}

func TestApply_UnknownKeyFallsBackToDate(t *testing.T) {
	lib := NewLibrary()
	want := ids(lib.Apply(dishes(), Spec{Key: KeyDate}))

	for _, key := range []Key{"", "spiciness"} {
		if got := ids(lib.Apply(dishes(), Spec{Key: key})); got != want {
			t.Errorf("key %q: got %s, want %s", key, got, want)
		}
	}
	if got := ids(lib.Apply(dishes())); got != want {
		t.Errorf("no specs: got %s, want %s", got, want)
	}
	if lib.Known("spiciness") {
		t.Error("Known(spiciness) = true")
	}
}

func TestApply_UnknownDirectionUsesDefault(t *testing.T) {
	lib := NewLibrary()
	got := ids(lib.Apply(dishes(), Spec{Key: KeyPrice, Direction: "sideways"}))
	if got != "d,a,c,b" {
		t.Errorf("got %s", got)
	}
}

func TestApply_MultiKey(t *testing.T) {
	lib := NewLibrary()
	got := ids(lib.Apply(dishes(), Spec{Key: KeyPrice}, Spec{Key: KeyName}))
	// a and c tie on price; name breaks the tie (biryani < Samosa).
	if got != "d,c,a,b" {
		t.Errorf("got %s", got)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := dishes()
	_ = NewLibrary().Apply(in, Spec{Key: KeyPrice})
	if ids(in) != "a,b,c,d" {
		t.Errorf("input mutated: %s", ids(in))
	}
}

func TestApply_EmptyAndSingle(t *testing.T) {
	lib := NewLibrary()
	if got := lib.Apply(nil, Spec{Key: KeyPrice}); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil, got %v", got)
	}
	one := dishes()[:1]
	if got := lib.Apply(one, Spec{Key: KeyPrice}); ids(got) != "a" {
		t.Errorf("got %s", ids(got))
	}
}

func TestApply_MissingValuesReadAsZero(t *testing.T) {
	rs := []record.Record{
		record.New("x", map[string]any{"price": 3.0}),
		record.New("y", nil),
	}
	if got := ids(NewLibrary().Apply(rs, Spec{Key: KeyPrice})); got != "y,x" {
		t.Errorf("got %s", got)
	}
}

func TestApply_ExampleScenario(t *testing.T) {
	rs := []record.Record{
		record.New("2", map[string]any{"price": 25, "rating": 3}),
		record.New("3", map[string]any{"price": 15, "rating": 5}),
	}
	got := ids(NewLibrary().Apply(rs, Spec{Key: KeyRating, Direction: Desc}))
	if got != "3,2" {
		t.Errorf("got %s", got)
	}
}

func TestNewLibrary_Overrides(t *testing.T) {
	lib := NewLibrary(
		WithLocale(language.Swedish),
		WithTime(KeyDate, record.TimeField("date"), Desc),
		WithNumber("spice", record.NumberField("spiciness"), Asc),
	)
	if !lib.Known("spice") {
		t.Fatal("custom key not registered")
	}

	rs := []record.Record{
		record.New("old", map[string]any{"date": "2020-01-01"}),
		record.New("new", map[string]any{"date": "2024-01-01"}),
	}
	if got := ids(lib.Apply(rs, Spec{Key: KeyDate})); got != "new,old" {
		t.Errorf("got %s", got)
	}

	keys := lib.Keys()
	if len(keys) != 7 || keys[0] != KeyDate {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestReverse_KeepsTies(t *testing.T) {
	c := Reverse(ByNumber(record.NumberField("price")))
	a := record.New("a", map[string]any{"price": 1.0})
	b := record.New("b", map[string]any{"price": 1.0})
	if c(a, b) != 0 {
		t.Error("reversed tie should stay a tie")
	}
}
