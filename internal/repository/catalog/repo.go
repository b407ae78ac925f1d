package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/dinekit/internal/domain"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// file is the on-disk catalog layout.
type file struct {
	Collections map[string][]map[string]any `yaml:"collections"`
	Restaurants []domain.Restaurant         `yaml:"restaurants"`
}

// Repo is a read-only, in-memory catalog of record collections and restaurants.
// It is safe for concurrent use; nothing mutates it after construction.
type Repo struct {
	collections map[string][]record.Record
	index       map[string]map[string]record.Record
	restaurants map[string]domain.Restaurant
}

// Load reads a catalog YAML file.
func Load(path string) (*Repo, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	repo, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return repo, nil
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*Repo, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	repo := &Repo{
		collections: make(map[string][]record.Record, len(f.Collections)),
		index:       make(map[string]map[string]record.Record, len(f.Collections)),
		restaurants: make(map[string]domain.Restaurant, len(f.Restaurants)),
	}

	for name, raw := range f.Collections {
		recs, err := record.FromMaps(raw)
		if err != nil {
			return nil, fmt.Errorf("collection %q: %w", name, err)
		}
		idx := make(map[string]record.Record, len(recs))
		for _, r := range recs {
			if _, dup := idx[r.ID()]; dup {
				return nil, fmt.Errorf("collection %q: duplicate id %q", name, r.ID())
			}
			idx[r.ID()] = r
		}
		repo.collections[name] = recs
		repo.index[name] = idx
	}

	for _, r := range f.Restaurants {
		if r.ID == "" {
			return nil, fmt.Errorf("restaurant id is required")
		}
		if _, dup := repo.restaurants[r.ID]; dup {
			return nil, fmt.Errorf("duplicate restaurant id %q", r.ID)
		}
		repo.restaurants[r.ID] = r
	}

	return repo, nil
}

// Records returns a copy of the named collection.
func (r *Repo) Records(_ context.Context, collection string) ([]record.Record, error) {
	recs, ok := r.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
	}
	out := make([]record.Record, len(recs))
	copy(out, recs)
	return out, nil
}

// Record returns one record by id.
func (r *Repo) Record(_ context.Context, collection, id string) (record.Record, error) {
	idx, ok := r.index[collection]
	if !ok {
		return record.Record{}, fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
	}
	rec, ok := idx[id]
	if !ok {
		return record.Record{}, fmt.Errorf("%s/%s: %w", collection, id, domain.ErrItemNotFound)
	}
	return rec, nil
}

// Restaurant returns booking hours by restaurant id.
func (r *Repo) Restaurant(_ context.Context, id string) (domain.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return domain.Restaurant{}, fmt.Errorf("restaurant %q: %w", id, domain.ErrNotFound)
	}
	return rest, nil
}

// Collections returns the collection names in sorted order.
func (r *Repo) Collections() []string {
	names := make([]string, 0, len(r.collections))
	for n := range r.collections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ping reports an error when the catalog holds no collections.
func (r *Repo) Ping(_ context.Context) error {
	if len(r.collections) == 0 {
		return fmt.Errorf("catalog is empty: %w", domain.ErrNotFound)
	}
	return nil
}
