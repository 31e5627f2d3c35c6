package jobs

import "sort"

// DefaultPlugins maps plugin identifiers to the variants they provide.
// Every call returns a new map.
func DefaultPlugins() map[string]Variant {
	return map[string]Variant{
		"workflow-job": Pipeline{},
		"maven-plugin": Maven{},
	}
}

// Factory classifies job configurations and builds jobs out of them.
type Factory struct {
	freestyle Variant
	plugins   map[string]Variant
}

// NewFactory returns a factory dispatching plugin based jobs through plugins.
// The map is copied, later changes to it are not seen by the factory.
func NewFactory(plugins map[string]Variant) *Factory {
	f := &Factory{
		freestyle: Freestyle{},
		plugins:   make(map[string]Variant, len(plugins)),
	}
	for plugin, variant := range plugins {
		f.plugins[plugin] = variant
	}
	return f
}

// Build classifies cfg and builds the matching job. Freestyle jobs are
// recognized by their root element since they carry no plugin attribute;
// every other job is dispatched on its plugin identifier.
func (f *Factory) Build(name string, cfg RawConfig) (*Job, error) {
	if _, ok := cfg[f.freestyle.RootNode()]; ok {
		return New(name, cfg, f.freestyle)
	}
	plugin, err := Plugin(cfg)
	if err != nil {
		return nil, err
	}
	variant, ok := f.plugins[plugin]
	if !ok {
		return nil, &UnknownJobTypeError{JobType: plugin}
	}
	return New(name, cfg, variant)
}

// Plugins lists the registered plugin identifiers, sorted.
func (f *Factory) Plugins() []string {
	names := make([]string, 0, len(f.plugins))
	for name := range f.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
