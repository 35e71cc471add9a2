// Package livetest provides an in-memory host object graph implementing
// live.Object/live.Client, for resolver and tool tests.
package livetest

import (
	"fmt"

	"github.com/tonelang-ai/tonelang-go/live"
)

// CallRecord is one recorded host API call, in invocation order.
type CallRecord struct {
	Path     string
	Function string
	Args     []any
}

// Graph is a fake Live object model rooted at "live_set".
type Graph struct {
	root   *Node
	byPath map[string]*Node
	byID   map[string]*Node
	nextID int

	// Calls records every Call across the graph, in order.
	Calls []CallRecord
}

// New creates an empty graph with just the root object.
func New() *Graph {
	g := &Graph{
		byPath: map[string]*Node{},
		byID:   map[string]*Node{},
	}
	g.root = g.newNode("live_set")
	return g
}

// Root returns the "live_set" node.
func (g *Graph) Root() *Node { return g.root }

func (g *Graph) newNode(path string) *Node {
	g.nextID++
	n := &Node{
		graph:    g,
		id:       fmt.Sprintf("id %d", g.nextID),
		path:     path,
		props:    map[string]any{},
		children: map[string][]*Node{},
		single:   map[string]*Node{},
		exists:   true,
	}
	g.byPath[path] = n
	g.byID[n.id] = n
	return n
}

// FromPath implements live.Client. Unknown paths yield a dangling handle.
func (g *Graph) FromPath(path string) live.Object {
	if n, ok := g.byPath[path]; ok {
		return n
	}
	return &Node{graph: g, path: path, id: "id 0"}
}

// FromID implements live.Client.
func (g *Graph) FromID(id string) live.Object {
	if n, ok := g.byID[id]; ok {
		return n
	}
	return &Node{graph: g, id: id}
}

// Node is one object in the fake graph.
type Node struct {
	graph       *Graph
	id          string
	path        string
	props       map[string]any
	children    map[string][]*Node
	single      map[string]*Node
	callResults map[string]any
	exists      bool
}

// AddChild appends a node to the named child collection ("tracks",
// "devices", "chains", "return_chains", "drum_pads") and returns it.
func (n *Node) AddChild(collection string, props map[string]any) *Node {
	idx := len(n.children[collection])
	child := n.graph.newNode(fmt.Sprintf("%s %s %d", n.path, collection, idx))
	for k, v := range props {
		child.props[k] = v
	}
	n.children[collection] = append(n.children[collection], child)
	return child
}

// SetSingle attaches a singular child such as "master_track".
func (n *Node) SetSingle(name string, props map[string]any) *Node {
	child := n.graph.newNode(fmt.Sprintf("%s %s", n.path, name))
	for k, v := range props {
		child.props[k] = v
	}
	n.single[name] = child
	return child
}

// Remove marks the node dangling, as the host does after a delete.
func (n *Node) Remove() { n.exists = false }

func (n *Node) Get(property string) (any, error) {
	if !n.exists {
		return nil, fmt.Errorf("object %q does not exist", n.path)
	}
	if kids, ok := n.children[property]; ok {
		out := make([]live.Object, len(kids))
		for i, k := range kids {
			out[i] = k
		}
		return out, nil
	}
	if child, ok := n.single[property]; ok {
		return live.Object(child), nil
	}
	if v, ok := n.props[property]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("object %q has no property %q", n.path, property)
}

func (n *Node) Set(property string, value any) error {
	if !n.exists {
		return fmt.Errorf("object %q does not exist", n.path)
	}
	n.props[property] = value
	return nil
}

// SetCallResult fixes the value returned by a named Call on this node.
func (n *Node) SetCallResult(function string, result any) {
	if n.callResults == nil {
		n.callResults = map[string]any{}
	}
	n.callResults[function] = result
}

func (n *Node) Call(function string, args ...any) (any, error) {
	if !n.exists {
		return nil, fmt.Errorf("object %q does not exist", n.path)
	}
	n.graph.Calls = append(n.graph.Calls, CallRecord{Path: n.path, Function: function, Args: args})
	return n.callResults[function], nil
}

func (n *Node) Exists() bool { return n.exists }
func (n *Node) Path() string { return n.path }
func (n *Node) ID() string   { return n.id }
