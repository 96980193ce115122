package discover

// Registry manages named generators so callers can select a content source
// at runtime (e.g. "openai" in production, "offline" for demos and tests).
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates an empty generator registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds a generator under name, replacing any previous one.
func (r *Registry) Register(name string, gen Generator) {
	r.generators[name] = gen
}

// Get retrieves a generator by name.
func (r *Registry) Get(name string) (Generator, bool) {
	gen, exists := r.generators[name]
	return gen, exists
}

// List returns all registered generator names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}
