package normalize

import (
	"fmt"
	"sort"

	"orderetl/pkg/contracts/domain"
)

// Normalizer names accepted in the pipeline configuration
const (
	NameDTX           = "dtx"
	NameAddressSuffix = "address_suffix"
	NameNone          = "none"
)

// Normalizer rewrites the rows and columns of a source table in place
type Normalizer interface {
	// Name returns the configuration name of the normalizer
	Name() string
	// Normalize cleans the table. Columns the table does not carry are left alone.
	Normalize(t *domain.Table)
}

// New returns the normalizer registered under name
func New(name string) (Normalizer, error) {
	switch name {
	case NameDTX:
		return NewDTX(), nil
	case NameAddressSuffix:
		return NewAddressSuffix(), nil
	case NameNone, "":
		return Passthrough{}, nil
	default:
		return nil, fmt.Errorf("unknown normalizer %q", name)
	}
}

// Registry resolves the normalizer bound to each source
type Registry struct {
	bySource map[string]Normalizer
}

// NewRegistry builds a registry from source -> normalizer name bindings
func NewRegistry(bindings map[string]string) (*Registry, error) {
	r := &Registry{bySource: make(map[string]Normalizer, len(bindings))}

	sources := make([]string, 0, len(bindings))
	for source := range bindings {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		n, err := New(bindings[source])
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", source, err)
		}
		r.bySource[source] = n
	}
	return r, nil
}

// For returns the normalizer for source, Passthrough when none is bound
func (r *Registry) For(source string) Normalizer {
	if r != nil {
		if n, ok := r.bySource[source]; ok {
			return n
		}
	}
	return Passthrough{}
}

// Passthrough leaves tables untouched
type Passthrough struct{}

// Name implements Normalizer
func (Passthrough) Name() string { return NameNone }

// Normalize implements Normalizer
func (Passthrough) Normalize(*domain.Table) {}
