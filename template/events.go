// template/events.go
package template

import (
	"fmt"
	"strings"

	"github.com/menukit/menukit/render"
)

// BindingOptions carries platform dispatch options for a listener.
type BindingOptions struct {
	// Once removes the listener after its first invocation.
	Once bool
}

// EventBinding is a named callback that template lines reference through
// the @name suffix. Bindings live in a Registry from Bind until Clear,
// independent of any single render pass.
type EventBinding struct {
	Name     string
	Type     string
	Callback func(*render.Element)
	Options  BindingOptions
}

// BindingError reports a Bind call with a missing required field.
type BindingError struct {
	Field string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("template: event binding is missing required field %q", e.Field)
}

// Registry is an ordered, mutable list of event bindings. Duplicate names
// are permitted; Find returns the first match. The registry holds no
// render-scoped isolation: callers must clear it between unrelated renders
// (Builder.Render does this on return).
type Registry struct {
	bindings []EventBinding
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Bind validates and appends a binding. A leading "on" prefix on the name
// is stripped before storage, so "onclick" and "click" resolve identically.
// The registry is left untouched when validation fails.
func (r *Registry) Bind(b EventBinding) error {
	switch {
	case b.Name == "":
		return &BindingError{Field: "name"}
	case b.Type == "":
		return &BindingError{Field: "type"}
	case b.Callback == nil:
		return &BindingError{Field: "callback"}
	}
	b.Name = strings.TrimPrefix(b.Name, "on")
	if b.Name == "" {
		return &BindingError{Field: "name"}
	}
	r.bindings = append(r.bindings, b)
	return nil
}

// Find returns the first binding registered under name, or nil.
func (r *Registry) Find(name string) *EventBinding {
	for i := range r.bindings {
		if r.bindings[i].Name == name {
			return &r.bindings[i]
		}
	}
	return nil
}

// Clear drops all bindings. Idempotent.
func (r *Registry) Clear() {
	r.bindings = nil
}

// Len reports the number of registered bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}
