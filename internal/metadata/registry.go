package metadata

import (
	"sort"
	"sync"
)

// Registry maps layer names and header field keys to annotation text.
// It is read-only once built.
type Registry struct {
	layers map[string]string
	fields map[string]string
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the fixed annotation tables.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New(layerText, fieldText)
	})
	return defaultReg
}

// New builds a registry from copies of the given tables.
func New(layers, fields map[string]string) *Registry {
	return &Registry{layers: copyTable(layers), fields: copyTable(fields)}
}

// DescribeLayer returns the annotation for a layer name.
func (r *Registry) DescribeLayer(name string) (string, bool) {
	text, ok := r.layers[name]
	return text, ok
}

// DescribeField returns the annotation for a header field key.
func (r *Registry) DescribeField(key string) (string, bool) {
	text, ok := r.fields[key]
	return text, ok
}

// Layers returns a copy of the layer table.
func (r *Registry) Layers() map[string]string { return copyTable(r.layers) }

// Fields returns a copy of the field table.
func (r *Registry) Fields() map[string]string { return copyTable(r.fields) }

// Keys returns the field keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyTable(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
