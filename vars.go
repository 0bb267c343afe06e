package argtree

import (
	orderedmap "github.com/wk8/go-ordered-map"
)

// varStore maps variable names to the values resolved at one parser level, in the order the
// rules declaring them were seen
type varStore struct {
	values *orderedmap.OrderedMap
}

func newVarStore() *varStore {
	return &varStore{values: orderedmap.New()}
}

func (s *varStore) set(name string, value any) {
	s.values.Set(name, value)
}

func (s *varStore) get(name string) (any, bool) {
	return s.values.Get(name)
}

func (s *varStore) each(fn func(name string, value any)) {
	for pair := s.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key.(string), pair.Value)
	}
}

// mergeStores overlays stores, ordered from the root level down to the deepest one. A name
// keeps the position of its first declaration and the value of its deepest one.
func mergeStores(stores []*varStore) *orderedmap.OrderedMap {
	merged := orderedmap.New()
	for _, s := range stores {
		s.each(func(name string, value any) {
			merged.Set(name, value)
		})
	}

	return merged
}
