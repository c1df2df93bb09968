package generator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cmmoran/buildergen/internal/model"
)

// Registry is an ordered, read-only set of generators. Order is priority
// descending, then name, and is the order in which generators run.
type Registry struct {
	gens []Generator
}

// NewRegistry sorts gens into a registry. Duplicate names are rejected.
func NewRegistry(gens ...Generator) (*Registry, error) {
	seen := make(map[string]bool, len(gens))
	out := make([]Generator, 0, len(gens))
	for _, g := range gens {
		if seen[g.Name()] {
			return nil, fmt.Errorf("duplicate generator %q", g.Name())
		}
		seen[g.Name()] = true
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return out[i].Name() < out[j].Name()
	})
	return &Registry{gens: out}, nil
}

// Generators returns the registry contents in run order.
func (r *Registry) Generators() []Generator {
	return append([]Generator(nil), r.gens...)
}

func (r *Registry) Lookup(name string) (Generator, bool) {
	for _, g := range r.gens {
		if g.Name() == name {
			return g, true
		}
	}
	return nil, false
}

// Without returns a registry lacking the named generators.
func (r *Registry) Without(names ...string) *Registry {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Registry{}
	for _, g := range r.gens {
		if !drop[g.Name()] {
			out.gens = append(out.gens, g)
		}
	}
	return out
}

// Generate runs every applicable generator on f and concatenates their
// candidates. Candidates are stamped with the contributing generator when
// the generator left it unset.
func (r *Registry) Generate(f *model.Field, ctx *Context) []*model.Method {
	var out []*model.Method
	for _, g := range r.gens {
		if !g.AppliesTo(f, ctx) {
			continue
		}
		for _, m := range g.Generate(f, ctx) {
			if m.Generator == "" {
				m.Generator = g.Name()
			}
			if m.Priority == 0 {
				m.Priority = g.Priority()
			}
			if m.Field == "" {
				m.Field = f.Name
			}
			out = append(out, m)
		}
	}
	return out
}

var (
	registerMu sync.Mutex
	registered = []Generator{
		Setter{},
		Supplier{},
		InPlaceConsumer{},
		NestedBuilderConsumer{},
		CollectionLiterals{},
		CollectionConsumer{},
		AddElement{},
		StringHelpers{},
	}
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Register adds a generator to the default registry. It must be called
// before the first call to Default, typically from an init function.
func Register(g Generator) {
	registerMu.Lock()
	defer registerMu.Unlock()
	if defaultReg != nil {
		panic(fmt.Sprintf("generator %q registered after the default registry was built", g.Name()))
	}
	registered = append(registered, g)
}

// Default returns the process-wide registry, built once on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		registerMu.Lock()
		defer registerMu.Unlock()
		r, err := NewRegistry(registered...)
		if err != nil {
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}
