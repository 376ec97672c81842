package domain

// FolderType is the level of a node in the folder hierarchy
type FolderType string

const (
	FolderRoot     FolderType = "root"
	FolderCountry  FolderType = "country"
	FolderCity     FolderType = "city"
	FolderCategory FolderType = "category"
)

// ChildType returns the only legal type one level below t.
// Category is a leaf, so ok is false for it.
func (t FolderType) ChildType() (child FolderType, ok bool) {
	switch t {
	case FolderRoot:
		return FolderCountry, true
	case FolderCountry:
		return FolderCity, true
	case FolderCity:
		return FolderCategory, true
	}
	return "", false
}

// Valid reports whether t is a known folder type
func (t FolderType) Valid() bool {
	switch t {
	case FolderRoot, FolderCountry, FolderCity, FolderCategory:
		return true
	}
	return false
}

// FolderNode is the persisted, nested shape of the folder tree.
type FolderNode struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     FolderType   `json:"type"`
	Children []FolderNode `json:"children"`
}

// Count returns the number of nodes in the subtree rooted at n
func (n FolderNode) Count() int {
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}
