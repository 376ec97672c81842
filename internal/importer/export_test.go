package importer

import (
	"bytes"
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = xl.Close() })

	rows, err := xl.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExportLeadsXLSX(t *testing.T) {
	data, err := ExportLeadsXLSX([]domain.Lead{
		{ID: "1", Name: "Supreme Interiors", City: "Mumbai", Category: "Interior Designers", Phone: "099201 61633", Status: domain.LeadStatusInterestedBooked, MeetingDate: "2023-10-15T14:00", SocialMediaLinks: []string{"a", "b"}},
		{ID: "2", Name: "Bandra Cafe", City: "Mumbai", Category: "Cafes", Status: domain.LeadStatusNew},
	})
	require.NoError(t, err)

	rows := readSheet(t, data, "Leads")
	require.Len(t, rows, 3)
	assert.Equal(t, leadHeader, rows[0])
	assert.Equal(t, []string{"1", "Supreme Interiors", "Mumbai", "Interior Designers", "099201 61633", string(domain.LeadStatusInterestedBooked), "", "2023-10-15T14:00", "a b"}, rows[1])
	assert.Equal(t, "Bandra Cafe", rows[2][1])
}

func TestExportCampaignXLSX(t *testing.T) {
	campaign := domain.Campaign{
		ID: "3", Name: "Influencer: Collab", Platform: domain.PlatformInstagram,
		Leads: []domain.CampaignLead{
			{ID: "i1", Status: domain.FunnelContacted, Contact: domain.InstagramContact{InstagramHandle: "@design_daily", FollowersCount: "12.5k"}},
		},
	}

	data, err := ExportCampaignXLSX(campaign)
	require.NoError(t, err)

	rows := readSheet(t, data, "Influencer_ Collab")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "instagram_handle", "followers", "status"}, rows[0])
	assert.Equal(t, []string{"i1", "@design_daily", "12.5k", string(domain.FunnelContacted)}, rows[1])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Campaign", sheetName("  "))
	assert.Equal(t, "a_b_c", sheetName("a/b?c"))
	assert.Len(t, []rune(sheetName("a very long campaign name that keeps going")), 31)
}
