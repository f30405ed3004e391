package tool

import (
	"errors"
	"fmt"
	"sync"

	"keynote-mcp/internal/llm"
	"keynote-mcp/internal/validate"
)

type entry struct {
	def    Definition
	schema *validate.Schema
}

// Registry holds tool definitions in registration order
type Registry struct {
	tools map[string]*entry
	order []string
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*entry),
	}
}

// Register adds a tool. Names must be unique and the input schema must compile.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errors.New("tool name is required")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %s has no handler", def.Name)
	}
	if def.InputSchema == nil {
		def.InputSchema = map[string]any{"type": "object", "properties": map[string]any{}}
	}

	schema, err := validate.CompileSchema(def.InputSchema)
	if err != nil {
		return fmt.Errorf("tool %s: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %s already registered", def.Name)
	}

	r.tools[def.Name] = &entry{def: def, schema: schema}
	r.order = append(r.order, def.Name)
	return nil
}

// RegisterAll registers defs in order, stopping at the first error
func (r *Registry) RegisterAll(defs []Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) get(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.tools[name]
	return e, exists
}

// Has reports whether a tool is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.get(name)
	return ok
}

// List returns descriptors in registration order
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Descriptor, len(r.order))
	for i, name := range r.order {
		list[i] = r.tools[name].def.Descriptor
	}
	return list
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// GetToolDefinitions converts the registry into function definitions for
// the chat model
func (r *Registry) GetToolDefinitions() []*llm.ToolDefinition {
	tools := r.List()
	defs := make([]*llm.ToolDefinition, len(tools))

	for i, t := range tools {
		defs[i] = &llm.ToolDefinition{
			Type: "function",
			Function: &llm.FunctionDef{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			},
		}
	}

	return defs
}
