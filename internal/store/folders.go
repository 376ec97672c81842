package store

import (
	"github.com/google/uuid"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/persist"
)

type folderEntry struct {
	id       string
	name     string
	kind     domain.FolderType
	parent   string
	children []string
}

// FolderTree is the country/city/category hierarchy. Nodes live in an arena
// keyed by id and link by id; the nested FolderNode shape is produced by
// walking from the root. Every mutation persists the whole tree.
type FolderTree struct {
	rootID string
	nodes  map[string]*folderEntry
	saver  Saver
	newID  func() string
}

// NewFolderTree indexes root into an arena. A node whose id was already seen
// earlier in a pre-order walk gets a fresh id; those original ids are returned.
func NewFolderTree(root domain.FolderNode, saver Saver) (*FolderTree, []string) {
	t := &FolderTree{
		rootID: root.ID,
		nodes:  make(map[string]*folderEntry),
		saver:  saver,
		newID:  uuid.NewString,
	}

	var rekeyed []string
	var index func(node domain.FolderNode, parent string) string
	index = func(node domain.FolderNode, parent string) string {
		id := node.ID
		if _, dup := t.nodes[id]; dup {
			rekeyed = append(rekeyed, id)
			id = t.newID()
		}

		entry := &folderEntry{
			id:     id,
			name:   node.Name,
			kind:   node.Type,
			parent: parent,
		}
		t.nodes[id] = entry

		for _, child := range node.Children {
			entry.children = append(entry.children, index(child, id))
		}
		return id
	}
	index(root, "")

	return t, rekeyed
}

// Len returns the number of reachable nodes
func (t *FolderTree) Len() int {
	return len(t.nodes)
}

// RootID returns the fixed id of the root node
func (t *FolderTree) RootID() string {
	return t.rootID
}

// Snapshot renders the full tree in its nested, persisted shape
func (t *FolderTree) Snapshot() domain.FolderNode {
	return t.render(t.rootID)
}

// Find renders the subtree rooted at id
func (t *FolderTree) Find(id string) (domain.FolderNode, bool) {
	if _, ok := t.nodes[id]; !ok {
		return domain.FolderNode{}, false
	}
	return t.render(id), true
}

func (t *FolderTree) render(id string) domain.FolderNode {
	entry := t.nodes[id]
	node := domain.FolderNode{
		ID:       entry.id,
		Name:     entry.name,
		Type:     entry.kind,
		Children: make([]domain.FolderNode, 0, len(entry.children)),
	}
	for _, childID := range entry.children {
		node.Children = append(node.Children, t.render(childID))
	}
	return node
}

// AddChild appends a new, empty node under parentID and persists.
// Nothing changes when the parent is unknown or kind is not the legal child
// type of the parent; ok reports whether the node was added.
func (t *FolderTree) AddChild(parentID, name string, kind domain.FolderType) (node domain.FolderNode, ok bool, err error) {
	parent, found := t.nodes[parentID]
	if !found {
		return domain.FolderNode{}, false, nil
	}
	if legal, hasChild := parent.kind.ChildType(); !hasChild || legal != kind {
		return domain.FolderNode{}, false, nil
	}

	entry := &folderEntry{
		id:     t.newID(),
		name:   name,
		kind:   kind,
		parent: parentID,
	}
	t.nodes[entry.id] = entry
	parent.children = append(parent.children, entry.id)

	return t.render(entry.id), true, t.persist()
}

// Rename replaces the name of node id and persists. Leads tagged with the old
// name are not touched. Unknown ids are a silent no-op.
func (t *FolderTree) Rename(id, name string) (bool, error) {
	entry, found := t.nodes[id]
	if !found {
		return false, nil
	}
	entry.name = name
	return true, t.persist()
}

// Remove splices node id out of its parent's child list, drops its subtree
// and persists. The root cannot be removed; unknown ids are a silent no-op.
func (t *FolderTree) Remove(id string) (bool, error) {
	entry, found := t.nodes[id]
	if !found || entry.parent == "" {
		return false, nil
	}

	parent := t.nodes[entry.parent]
	siblings := make([]string, 0, len(parent.children))
	for _, childID := range parent.children {
		if childID != id {
			siblings = append(siblings, childID)
		}
	}
	parent.children = siblings
	t.drop(id)

	return true, t.persist()
}

func (t *FolderTree) drop(id string) {
	for _, childID := range t.nodes[id].children {
		t.drop(childID)
	}
	delete(t.nodes, id)
}

func (t *FolderTree) persist() error {
	return t.saver.Save(persist.KeyFolders, t.Snapshot())
}
