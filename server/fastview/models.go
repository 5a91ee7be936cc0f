// Package fastview implements small server-driven views: a builder wires a
// data-model channel through a view-model conversion and fans the result out
// to view components, each of which emits element updates suitable for
// pushing to a browser over a websocket.
package fastview

import (
	"html/template"
)

// EleUpdate is an element identifier and a set of operations to apply to its
// attributes or content.
type EleUpdate struct {
	// EleId is the id by which the client finds the element.
	EleId string
	// Ops keys are attribute names, or the reserved key 'textContent' to set
	// the element text instead of an attribute.
	Ops []Op
}

// Op is a key and value, e.g. an html attribute and its new value.
type Op struct {
	Key   string
	Value string
}

// ViewComponent is a server side view: Parse adds the component's template to
// the passed parent template and returns the template name, and Updates
// exposes the chan on which the component emits its element updates.
type ViewComponent interface {
	Updates() <-chan []EleUpdate
	Parse(*template.Template) (string, error)
}
