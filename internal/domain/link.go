package domain

// Kind names a view link shape.
type Kind string

// Link kinds.
const (
	KindBrowse  Kind = "browse"
	KindEdit    Kind = "edit"
	KindGeneric Kind = "generic"
)

// Configuration is the validated view link configuration.
// It has no knowledge of where the raw settings came from.
type Configuration struct {
	// Hosts maps a stage name to the base host (scheme + domain + optional port).
	Hosts map[string]string
}

// Host returns the base host for stage.
func (c *Configuration) Host(stage string) (string, bool) {
	if c == nil {
		return "", false
	}

	host, ok := c.Hosts[stage]

	return host, ok
}

// Param is a single query-string pair.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query-string pairs.
// Unlike a map it keeps insertion order and allows repeated keys.
type Params []Param

// Add appends a pair and returns the extended list.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// LinkRequest is the transient input of a single link operation.
// Fields are loosely typed because requests usually come from decoded JSON, YAML or CLI args.
type LinkRequest struct {
	Kind     Kind
	Service  any
	Entity   any
	EntityID any
	Entries  any
	Params   any
}
