package menu

import "strings"

// Node represents a submenu within the menu tree.
type Node struct {
	ID       string
	Loader   Loader
	Children map[string]*Node
}

// Tree exposes lookup utilities for menu definitions.
type Tree struct {
	root  *Node
	nodes map[string]*Node
}

// BuildTree constructs the tree from the category loaders.
func BuildTree() *Tree {
	nodes := make(map[string]*Node)

	ensure := func(id string) *Node {
		if node, ok := nodes[id]; ok {
			return node
		}
		node := &Node{ID: id, Children: make(map[string]*Node)}
		nodes[id] = node
		return node
	}

	root := ensure("root")
	root.Loader = func(Context) ([]Item, error) { return RootItems(), nil }

	for id, loader := range CategoryLoaders() {
		ensure(id).Loader = loader
	}

	for id, node := range nodes {
		if id == "root" {
			continue
		}
		parentID, key := parentKey(id)
		ensure(parentID).Children[key] = node
	}

	return &Tree{root: root, nodes: nodes}
}

// Root returns the tree root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Find locates a node by ID.
func (t *Tree) Find(id string) (*Node, bool) {
	node, ok := t.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (t *Tree) Child(parentID, key string) (*Node, bool) {
	parent, ok := t.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

// Title returns the display label of a node as listed by its parent.
func (t *Tree) Title(ctx Context, id string) string {
	parentID, key := parentKey(id)
	parent, ok := t.nodes[parentID]
	if !ok || parent.Loader == nil {
		return key
	}
	items, err := parent.Loader(ctx)
	if err != nil {
		return key
	}
	for _, item := range items {
		if item.ID == key {
			return item.Label
		}
	}
	return key
}

func parentKey(id string) (string, string) {
	if id == "" {
		return "root", ""
	}
	if !strings.Contains(id, ":") {
		return "root", id
	}
	idx := strings.LastIndex(id, ":")
	return id[:idx], id[idx+1:]
}
