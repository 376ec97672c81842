package importer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs makes generated ids predictable for the duration of a test
func sequentialIDs(t *testing.T) {
	t.Helper()
	n := 0
	original := newID
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { newID = original })
}

var (
	rootNode    = domain.FolderNode{ID: "root", Name: "Global Database", Type: domain.FolderRoot}
	puneNode    = domain.FolderNode{ID: "pune", Name: "Pune", Type: domain.FolderCity}
	cafesNode   = domain.FolderNode{ID: "cafes", Name: "Cafes", Type: domain.FolderCategory}
	countryNode = domain.FolderNode{ID: "in", Name: "India", Type: domain.FolderCountry}
)

func TestParseLeadPaste(t *testing.T) {
	sequentialIDs(t)

	batch := ParseLeadPaste("Acme\tPune\tRetail\t9998887770", rootNode)

	require.Len(t, batch.Leads, 1)
	assert.Equal(t, 0, batch.Skipped)
	assert.Equal(t, domain.Lead{
		ID:               "id-1",
		Name:             "Acme",
		City:             "Pune",
		Category:         "Retail",
		Phone:            "9998887770",
		Status:           domain.LeadStatusNew,
		SocialMediaLinks: []string{},
	}, batch.Leads[0])
}

func TestParseLeadPasteRows(t *testing.T) {
	text := strings.Join([]string{
		"Acme\tPune\tRetail\t9998887770",
		"single column row",
		"",
		"Beta Labs\t\t\t",
		"Gamma\tNashik\r",
	}, "\n")

	batch := ParseLeadPaste(text, rootNode)

	require.Len(t, batch.Leads, 3)
	assert.Equal(t, 1, batch.Skipped, "rows with fewer than two columns are skipped")
	assert.Equal(t, []string{"Acme", "Beta Labs", "Gamma"}, []string{batch.Leads[0].Name, batch.Leads[1].Name, batch.Leads[2].Name})
	assert.Equal(t, "Unknown", batch.Leads[1].City)
	assert.Equal(t, "General", batch.Leads[1].Category)
	assert.Equal(t, "Nashik", batch.Leads[2].City)
	assert.Empty(t, batch.Leads[2].Phone)
	assert.NotEqual(t, batch.Leads[0].ID, batch.Leads[1].ID)
}

func TestParseLeadPasteDefaultsFromNode(t *testing.T) {
	tests := []struct {
		name     string
		node     domain.FolderNode
		city     string
		category string
	}{
		{"Root", rootNode, "Unknown", "General"},
		{"Country", countryNode, "Unknown", "General"},
		{"City", puneNode, "Pune", "General"},
		{"Category", cafesNode, "Unknown", "Cafes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := ParseLeadPaste("Acme\t\t\t555", tt.node)
			require.Len(t, batch.Leads, 1)
			assert.Equal(t, tt.city, batch.Leads[0].City)
			assert.Equal(t, tt.category, batch.Leads[0].Category)
		})
	}
}

func TestParseLeadPasteEmpty(t *testing.T) {
	batch := ParseLeadPaste("  \n\n", rootNode)
	assert.Empty(t, batch.Leads)
	assert.NotNil(t, batch.Leads)
	assert.Equal(t, 0, batch.Skipped)
}

func TestParseLeadCSV(t *testing.T) {
	sequentialIDs(t)

	input := "Name,City,Category,Phone\n" +
		"\"Acme, Inc\",Pune,Retail,9998887770\n" +
		"  Beta Labs ,,,\n" +
		",,,\n" +
		"Gamma\n"

	batch, err := ParseLeadCSV(strings.NewReader(input), rootNode)
	require.NoError(t, err)

	require.Len(t, batch.Leads, 3)
	assert.Equal(t, domain.Lead{
		ID:               "id-1",
		Name:             "Acme, Inc",
		City:             "Pune",
		Category:         "Retail",
		Phone:            "9998887770",
		Status:           domain.LeadStatusNew,
		Remarks:          "Imported via CSV",
		SocialMediaLinks: []string{},
	}, batch.Leads[0])

	assert.Equal(t, "Beta Labs", batch.Leads[1].Name)
	assert.Equal(t, "Imported", batch.Leads[1].City)
	assert.Equal(t, "General", batch.Leads[1].Category)
	assert.Equal(t, "Gamma", batch.Leads[2].Name)
}

func TestParseLeadCSVWithoutHeader(t *testing.T) {
	batch, err := ParseLeadCSV(strings.NewReader("Acme,,,123\nBeta,Pune,,456\n"), cafesNode)
	require.NoError(t, err)

	require.Len(t, batch.Leads, 2, "first row is data when it has no header words")
	assert.Equal(t, "Imported", batch.Leads[0].City)
	assert.Equal(t, "Cafes", batch.Leads[0].Category)
	assert.Equal(t, "Pune", batch.Leads[1].City)
}

func TestParseLeadCSVCityNode(t *testing.T) {
	batch, err := ParseLeadCSV(strings.NewReader("Acme\n"), puneNode)
	require.NoError(t, err)

	require.Len(t, batch.Leads, 1)
	assert.Equal(t, "Pune", batch.Leads[0].City)
}
