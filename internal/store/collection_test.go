package store

import (
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionAdd(t *testing.T) {
	saver := newRecordingSaver()
	c := NewCollection("leads", []domain.Lead{}, saver)

	require.NoError(t, c.Add(domain.Lead{ID: "a", Name: "One"}))
	require.NoError(t, c.Add(domain.Lead{ID: "a", Name: "Duplicate"}))

	assert.Equal(t, 2, c.Len(), "ids are not checked for uniqueness")
	assert.Equal(t, 2, saver.count("leads"))

	lead, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "One", lead.Name, "Get returns the first match")
}

func TestCollectionUpdate(t *testing.T) {
	t.Run("MergesOnlyGivenFields", func(t *testing.T) {
		saver := newRecordingSaver()
		c := NewCollection("leads", []domain.Lead{{ID: "a", Name: "Cafe", City: "Pune", Status: domain.LeadStatusNew}}, saver)

		changed, err := c.Update("a", domain.LeadPatch{Status: ptr(domain.LeadStatusFollowUp)})
		require.NoError(t, err)
		assert.True(t, changed)

		lead, _ := c.Get("a")
		assert.Equal(t, domain.LeadStatusFollowUp, lead.Status)
		assert.Equal(t, "Cafe", lead.Name)
		assert.Equal(t, "Pune", lead.City)
		assert.Equal(t, 1, saver.count("leads"))
	})

	t.Run("UnknownIDIsSilentNoOp", func(t *testing.T) {
		saver := newRecordingSaver()
		items := []domain.Lead{{ID: "a", Name: "Cafe"}}
		c := NewCollection("leads", items, saver)

		changed, err := c.Update("zzz", domain.LeadPatch{Name: ptr("x")})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, items, c.All())
		assert.Zero(t, saver.count("leads"), "no-op must not persist")
	})

	t.Run("AppliesToEveryMatch", func(t *testing.T) {
		c := NewCollection("leads", []domain.Lead{{ID: "a"}, {ID: "b"}, {ID: "a"}}, newRecordingSaver())

		_, err := c.Update("a", domain.LeadPatch{Remarks: ptr("dup")})
		require.NoError(t, err)

		all := c.All()
		assert.Equal(t, "dup", all[0].Remarks)
		assert.Empty(t, all[1].Remarks)
		assert.Equal(t, "dup", all[2].Remarks)
	})
}

func TestCollectionRemove(t *testing.T) {
	saver := newRecordingSaver()
	c := NewCollection("reports", []domain.Report{{ID: "1"}, {ID: "2"}}, saver)

	changed, err := c.Remove("1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []domain.Report{{ID: "2"}}, c.All())

	changed, err = c.Remove("1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, saver.count("reports"))
}

func TestCollectionAllIsACopy(t *testing.T) {
	c := NewCollection("reports", []domain.Report{{ID: "1", FileName: "a.pdf"}}, newRecordingSaver())

	all := c.All()
	all[0].FileName = "mutated.pdf"

	report, _ := c.Get("1")
	assert.Equal(t, "a.pdf", report.FileName)
}

func TestCollectionSaveFailureKeepsChange(t *testing.T) {
	saver := newRecordingSaver()
	saver.err = errWriteFailed
	c := NewCollection("leads", []domain.Lead{}, saver)

	err := c.Add(domain.Lead{ID: "a"})
	assert.ErrorIs(t, err, errWriteFailed)
	assert.Equal(t, 1, c.Len())
}
