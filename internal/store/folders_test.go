package store

import (
	"encoding/json"
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderTreeAddChild(t *testing.T) {
	saver := newRecordingSaver()
	tree, rekeyed := NewFolderTree(DefaultSeeds().Folders, saver)
	require.Empty(t, rekeyed)

	nepal, ok, err := tree.AddChild(RootFolderID, "Nepal", domain.FolderCountry)
	require.NoError(t, err)
	require.True(t, ok)

	kathmandu, ok, err := tree.AddChild(nepal.ID, "Kathmandu", domain.FolderCity)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, nepal.ID, kathmandu.ID)

	root := tree.Snapshot()
	require.Len(t, root.Children, 2)
	assert.Equal(t, "India", root.Children[0].Name)
	require.Len(t, root.Children[1].Children, 1)
	assert.Equal(t, "Kathmandu", root.Children[1].Children[0].Name)
	assert.Equal(t, domain.FolderCity, root.Children[1].Children[0].Type)

	assert.Equal(t, 2, saver.count(persist.KeyFolders))
}

func TestFolderTreeAddChildRejects(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		kind   domain.FolderType
	}{
		{name: "UnknownParent", parent: "nowhere", kind: domain.FolderCountry},
		{name: "CityUnderRoot", parent: RootFolderID, kind: domain.FolderCity},
		{name: "CountryUnderCountry", parent: "in", kind: domain.FolderCountry},
		{name: "AnythingUnderCategory", parent: "mum-cafe", kind: domain.FolderCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := newRecordingSaver()
			tree, _ := NewFolderTree(DefaultSeeds().Folders, saver)
			before := tree.Snapshot()

			_, ok, err := tree.AddChild(tt.parent, "X", tt.kind)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, before, tree.Snapshot())
			assert.Zero(t, saver.count(persist.KeyFolders))
		})
	}
}

func TestFolderTreeRemove(t *testing.T) {
	t.Run("DropsSubtree", func(t *testing.T) {
		tree, _ := NewFolderTree(DefaultSeeds().Folders, newRecordingSaver())
		total := tree.Len()

		changed, err := tree.Remove("mumbai")
		require.NoError(t, err)
		assert.True(t, changed)

		assert.Equal(t, total-4, tree.Len())
		_, ok := tree.Find("mum-cafe")
		assert.False(t, ok)

		india, ok := tree.Find("in")
		require.True(t, ok)
		require.Len(t, india.Children, 1)
		assert.Equal(t, "Delhi", india.Children[0].Name)
	})

	t.Run("RootIsNeverRemoved", func(t *testing.T) {
		saver := newRecordingSaver()
		tree, _ := NewFolderTree(DefaultSeeds().Folders, saver)

		changed, err := tree.Remove(RootFolderID)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, DefaultSeeds().Folders, tree.Snapshot())
		assert.Zero(t, saver.count(persist.KeyFolders))
	})

	t.Run("UnknownIDIsSilentNoOp", func(t *testing.T) {
		tree, _ := NewFolderTree(DefaultSeeds().Folders, newRecordingSaver())
		changed, err := tree.Remove("missing")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("AddThenRemoveRestoresTree", func(t *testing.T) {
		tree, _ := NewFolderTree(DefaultSeeds().Folders, newRecordingSaver())
		before := tree.Snapshot()

		node, ok, err := tree.AddChild("delhi", "Gyms", domain.FolderCategory)
		require.NoError(t, err)
		require.True(t, ok)

		changed, err := tree.Remove(node.ID)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, before, tree.Snapshot())
	})
}

func TestFolderTreeRename(t *testing.T) {
	saver := newRecordingSaver()
	tree, _ := NewFolderTree(DefaultSeeds().Folders, saver)

	changed, err := tree.Rename("mumbai", "Mumbai Metro")
	require.NoError(t, err)
	assert.True(t, changed)

	node, ok := tree.Find("mumbai")
	require.True(t, ok)
	assert.Equal(t, "Mumbai Metro", node.Name)
	assert.Len(t, node.Children, 3)

	changed, err = tree.Rename("missing", "x")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, saver.count(persist.KeyFolders))
}

func TestFolderTreeDuplicateIDsAreRekeyed(t *testing.T) {
	root := domain.FolderNode{
		ID: RootFolderID, Name: "Global", Type: domain.FolderRoot,
		Children: []domain.FolderNode{
			{ID: "dup", Name: "India", Type: domain.FolderCountry},
			{ID: "dup", Name: "Nepal", Type: domain.FolderCountry},
		},
	}

	tree, rekeyed := NewFolderTree(root, newRecordingSaver())
	assert.Equal(t, []string{"dup"}, rekeyed)
	assert.Equal(t, 3, tree.Len())

	snap := tree.Snapshot()
	require.Len(t, snap.Children, 2)
	assert.Equal(t, "dup", snap.Children[0].ID)
	assert.NotEqual(t, "dup", snap.Children[1].ID)
	assert.Equal(t, "Nepal", snap.Children[1].Name)
}

func TestFolderTreePersistedShape(t *testing.T) {
	saver := newRecordingSaver()
	tree, _ := NewFolderTree(EmptySeeds().Folders, saver)

	_, _, err := tree.AddChild(RootFolderID, "India", domain.FolderCountry)
	require.NoError(t, err)

	var saved domain.FolderNode
	require.NoError(t, json.Unmarshal([]byte(saver.saves[persist.KeyFolders][0]), &saved))
	assert.Equal(t, tree.Snapshot(), saved)
	assert.Equal(t, 2, saved.Count())
}

func TestFolderTreeLeavesPersistEmptyChildren(t *testing.T) {
	saver := newRecordingSaver()
	tree, _ := NewFolderTree(EmptySeeds().Folders, saver)

	india, _, err := tree.AddChild(RootFolderID, "India", domain.FolderCountry)
	require.NoError(t, err)
	assert.NotNil(t, india.Children)
	assert.Empty(t, india.Children)

	saves := saver.saves[persist.KeyFolders]
	require.Len(t, saves, 1)
	assert.JSONEq(t,
		`{"id":"root","name":"Global Database","type":"root","children":[`+
			`{"id":"`+india.ID+`","name":"India","type":"country","children":[]}]}`,
		saves[0])
}
