package jobs

import "sort"

// RawConfig is a job's XML configuration parsed into nested maps. Child
// elements are keyed by tag name, attributes by "@" plus the attribute name,
// and element text sitting next to attributes by "#text". Leaf values are
// strings; empty elements are "" or nil.
type RawConfig map[string]interface{}

const (
	textKey    = "#text"
	pluginAttr = "@plugin"

	// rootElement names the missing key when a config has no top-level element at all.
	rootElement = "root element"
)

func asMap(node interface{}) (map[string]interface{}, bool) {
	switch m := node.(type) {
	case RawConfig:
		return m, true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}

// child returns node[key]. It reports false when node is not a mapping or
// does not hold key, so empty elements behave like missing ones.
func child(node interface{}, key string) (interface{}, bool) {
	m, ok := asMap(node)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// lookup walks keys from node and stops at the first one that is absent,
// returning its name.
func lookup(node interface{}, keys ...string) (value interface{}, missing string, ok bool) {
	value = node
	for _, key := range keys {
		next, found := child(value, key)
		if !found {
			return nil, key, false
		}
		value = next
	}
	return value, "", true
}

// text returns the character data of an element, or nil for empty elements
// and elements without text.
func text(node interface{}) *string {
	switch v := node.(type) {
	case string:
		return &v
	case map[string]interface{}, RawConfig:
		if t, ok := child(v, textKey); ok {
			return text(t)
		}
	}
	return nil
}

// rootKeys lists the top-level elements of cfg in a stable order.
func rootKeys(cfg RawConfig) []string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
