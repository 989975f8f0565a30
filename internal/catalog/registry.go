package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrCatalogNotFound indicates no process catalog exists for a namespace.
	ErrCatalogNotFound = errors.New("catalog: no process configured for namespace")
	// ErrDuplicateCatalog indicates two catalogs were registered under the same namespace.
	ErrDuplicateCatalog = errors.New("catalog: duplicate namespace")
)

// CatalogNotFoundError captures the namespace that failed to resolve. Callers
// decide whether a missing catalog is fatal or renders an empty workflow.
type CatalogNotFoundError struct {
	Namespace string
}

func (e *CatalogNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Namespace) == "" {
		return ErrCatalogNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCatalogNotFound.Error(), e.Namespace)
}

func (e *CatalogNotFoundError) Unwrap() error {
	return ErrCatalogNotFound
}

// Registry maps tenant namespaces to compiled catalogs. It is immutable after
// construction: onboarding a tenant means registering another catalog, never
// mutating an existing one at runtime.
type Registry struct {
	catalogs map[string]Catalog
}

// NewRegistry builds a registry from compiled catalogs.
func NewRegistry(catalogs ...Catalog) (*Registry, error) {
	registry := &Registry{catalogs: make(map[string]Catalog, len(catalogs))}
	for _, c := range catalogs {
		if c.namespace == "" {
			return nil, ErrNamespaceRequired
		}
		if _, exists := registry.catalogs[c.namespace]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCatalog, c.namespace)
		}
		registry.catalogs[c.namespace] = c
	}
	return registry, nil
}

// Get resolves the catalog for a namespace, failing with CatalogNotFoundError
// when the tenant has no configured process.
func (r *Registry) Get(namespace string) (Catalog, error) {
	key := strings.ToLower(strings.TrimSpace(namespace))
	if r == nil || key == "" {
		return Catalog{}, &CatalogNotFoundError{Namespace: namespace}
	}
	c, ok := r.catalogs[key]
	if !ok {
		return Catalog{}, &CatalogNotFoundError{Namespace: key}
	}
	return c, nil
}

// Namespaces lists the registered namespaces in stable order.
func (r *Registry) Namespaces() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.catalogs))
	for ns := range r.catalogs {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
