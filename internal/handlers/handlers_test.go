package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/importer"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, target, field, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestListLeadsFilters(t *testing.T) {
	app, _ := helpers.SetupTestApp(t, store.DefaultSeeds())

	tests := []struct {
		name string
		url  string
		want []string
	}{
		{"All", "/api/leads", []string{"1", "2", "3", "4"}},
		{"CategoryNode", "/api/leads?node=mum-cafe", []string{"3"}},
		{"CityNode", "/api/leads?node=delhi", []string{"4"}},
		{"Search", "/api/leads?q=DESIGN", []string{"2"}},
		{"Status", "/api/leads?node=mumbai&status=" + url.QueryEscape(string(domain.LeadStatusInterestedBooked)), []string{"1"}},
		{"UnknownNode", "/api/leads?node=nope", []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := helpers.DoJSON(t, app, http.MethodGet, tt.url, nil)
			helpers.AssertStatus(t, resp, http.StatusOK)

			var leads []domain.Lead
			helpers.ParseJSON(t, resp, &leads)
			got := make([]string, 0, len(leads))
			for _, l := range leads {
				got = append(got, l.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateLeads(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.EmptySeeds())

	t.Run("Single", func(t *testing.T) {
		resp := helpers.DoJSON(t, app, http.MethodPost, "/api/leads", map[string]any{"name": "Acme", "city": "Pune"})
		helpers.AssertStatus(t, resp, http.StatusCreated)

		var created []domain.Lead
		helpers.ParseJSON(t, resp, &created)
		require.Len(t, created, 1)
		assert.NotEmpty(t, created[0].ID)
		assert.Equal(t, domain.LeadStatusNew, created[0].Status)
		assert.Equal(t, []string{}, created[0].SocialMediaLinks)
	})

	t.Run("Array", func(t *testing.T) {
		resp := helpers.DoJSON(t, app, http.MethodPost, "/api/leads", []map[string]any{
			{"id": "b", "name": "Beta"},
			{"id": "c", "name": "Gamma", "status": string(domain.LeadStatusNotInterested)},
		})
		helpers.AssertStatus(t, resp, http.StatusCreated)
		assert.Len(t, s.Leads(), 3)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		resp := helpers.DoJSON(t, app, http.MethodPost, "/api/leads", map[string]any{"name": "Bad", "status": "Maybe"})
		helpers.AssertStatus(t, resp, http.StatusBadRequest)
		assert.Len(t, s.Leads(), 3)
	})

	t.Run("MissingName", func(t *testing.T) {
		resp := helpers.DoJSON(t, app, http.MethodPost, "/api/leads", map[string]any{"city": "Pune"})
		helpers.AssertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestLeadMutations(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodPatch, "/api/leads/2", map[string]any{"status": string(domain.LeadStatusInterestedBooked), "meetingDate": "2024-02-01T10:00"})
	helpers.AssertChanged(t, resp, true)
	lead, _ := s.Lead("2")
	assert.Equal(t, domain.LeadStatusInterestedBooked, lead.Status)
	assert.Equal(t, "Busy, call later", lead.Remarks, "fields absent from the patch are kept")

	resp = helpers.DoJSON(t, app, http.MethodPatch, "/api/leads/missing", map[string]any{"name": "x"})
	helpers.AssertChanged(t, resp, false)

	resp = helpers.DoJSON(t, app, http.MethodDelete, "/api/leads/4", nil)
	helpers.AssertChanged(t, resp, true)

	resp = helpers.DoJSON(t, app, http.MethodDelete, "/api/leads/4", nil)
	helpers.AssertChanged(t, resp, false)
	assert.Len(t, s.Leads(), 3)

	resp = helpers.DoJSON(t, app, http.MethodGet, "/api/leads/4", nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestImportLeadsPaste(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodPost, "/api/leads/import?node=mum-cafe", map[string]string{
		"text": "Acme\tPune\tRetail\t9998887770\nBlue Tokai\t\t\t022\nbad",
	})
	helpers.AssertImported(t, resp, 2, 1)

	leads := s.Leads()
	require.Len(t, leads, 6)
	assert.Equal(t, "Acme", leads[4].Name)
	assert.Equal(t, domain.LeadStatusNew, leads[4].Status)
	assert.Equal(t, "Unknown", leads[5].City)
	assert.Equal(t, "Cafes", leads[5].Category)
}

func TestImportLeadsCSV(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.EmptySeeds())

	req := multipartRequest(t, "/api/leads/import", "file", "leads.csv", []byte("name,city,category,phone\nAcme,Pune,Retail,999\n"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertImported(t, resp, 1, 0)

	leads := s.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, "Imported via CSV", leads[0].Remarks)
}

func TestExportLeads(t *testing.T) {
	app, _ := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodGet, "/api/leads/export?node=delhi", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, importer.XLSXContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx is a zip archive")
}

func TestFolderRoutes(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodPost, "/api/folders", map[string]string{"parentId": "in", "name": "Pune", "type": "city"})
	helpers.AssertStatus(t, resp, http.StatusCreated)
	var pune domain.FolderNode
	helpers.ParseJSON(t, resp, &pune)
	assert.Equal(t, "Pune", pune.Name)
	assert.NotEmpty(t, pune.ID)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/folders", map[string]string{"parentId": "in", "name": "Retail", "type": "category"})
	helpers.AssertChanged(t, resp, false)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/folders", map[string]string{"parentId": "in", "name": "X", "type": "planet"})
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	resp = helpers.DoJSON(t, app, http.MethodPatch, "/api/folders/mumbai", map[string]string{"name": "Bombay"})
	helpers.AssertChanged(t, resp, true)
	for _, l := range s.Leads() {
		assert.NotEqual(t, "Bombay", l.City)
	}

	resp = helpers.DoJSON(t, app, http.MethodDelete, "/api/folders/"+store.RootFolderID, nil)
	helpers.AssertChanged(t, resp, false)

	resp = helpers.DoJSON(t, app, http.MethodDelete, "/api/folders/delhi", nil)
	helpers.AssertChanged(t, resp, true)
	_, ok := s.FindFolder("del-real")
	assert.False(t, ok)

	resp = helpers.DoJSON(t, app, http.MethodGet, "/api/folders/delhi", nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestProjectRoutes(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodPatch, "/api/projects/2", map[string]any{"progress": "40", "status": string(domain.ProjectOngoing)})
	helpers.AssertChanged(t, resp, true)
	p, _ := s.Project("2")
	assert.Equal(t, 40, p.Progress)
	assert.Equal(t, domain.ProjectOngoing, p.Status)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/projects/2/milestones/m4/toggle", nil)
	helpers.AssertChanged(t, resp, true)
	p, _ = s.Project("2")
	assert.True(t, p.Milestones[0].IsCompleted)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"name": "Site Revamp", "client": "Acme"})
	helpers.AssertStatus(t, resp, http.StatusCreated)
	assert.Len(t, s.Projects(), 4)
}

func TestCampaignRoutes(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodGet, "/api/campaigns?platform=LinkedIn", nil)
	var linkedIn []domain.Campaign
	helpers.ParseJSON(t, resp, &linkedIn)
	require.Len(t, linkedIn, 1)
	assert.Equal(t, "2", linkedIn[0].ID)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/campaigns/1/leads", map[string]string{"name": "Ravi", "email": "ravi@acme.in"})
	helpers.AssertChanged(t, resp, true)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/campaigns/1/import", map[string]string{"text": "Priya, priya@beta.io, Beta\n, nobody"})
	helpers.AssertImported(t, resp, 1, 1)

	c, _ := s.Campaign("1")
	assert.Len(t, c.Leads, 4)
	assert.Equal(t, 4, c.LeadsGenerated)

	resp = helpers.DoJSON(t, app, http.MethodDelete, "/api/campaigns/1/leads/not-there", nil)
	helpers.AssertChanged(t, resp, false)
	c, _ = s.Campaign("1")
	assert.Equal(t, 4, c.LeadsGenerated)

	resp = helpers.DoJSON(t, app, http.MethodPatch, "/api/campaigns/1/leads/e1", map[string]string{"status": string(domain.FunnelConverted)})
	helpers.AssertChanged(t, resp, true)

	resp = helpers.DoJSON(t, app, http.MethodPost, "/api/campaigns/missing/import", map[string]string{"text": "A,b"})
	helpers.AssertImported(t, resp, 0, 0)

	resp = helpers.DoJSON(t, app, http.MethodGet, "/api/campaigns/3/export", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, importer.XLSXContentType, resp.Header.Get(fiber.HeaderContentType))
}

func TestCreateCampaign(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.EmptySeeds())

	resp := helpers.DoJSON(t, app, http.MethodPost, "/api/campaigns", map[string]any{
		"name":     "Handles",
		"platform": "Instagram",
		"leads":    []map[string]string{{"id": "i1", "instagramHandle": "@shop", "status": "Pending"}},
	})
	helpers.AssertStatus(t, resp, http.StatusCreated)

	var created domain.Campaign
	helpers.ParseJSON(t, resp, &created)
	assert.Equal(t, 1, created.LeadsGenerated)
	assert.Equal(t, domain.CampaignActive, created.Status)
	assert.Len(t, s.Campaigns(), 1)
}

func TestReportUploadAndOpen(t *testing.T) {
	app, s := helpers.SetupTestApp(t, store.EmptySeeds())

	req := multipartRequest(t, "/api/reports", "file", "daily.txt", []byte("calls: 40\nbooked: 3\n"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, http.StatusCreated)

	var report domain.Report
	helpers.ParseJSON(t, resp, &report)
	assert.Equal(t, "daily.txt", report.FileName)
	assert.Equal(t, "Sales Manager", report.Uploader)
	assert.Len(t, s.Reports(), 1)

	resp = helpers.DoJSON(t, app, http.MethodGet, "/api/reports/"+report.ID+"/file", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/plain"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "calls: 40\nbooked: 3\n", string(body))

	resp = helpers.DoJSON(t, app, http.MethodGet, "/api/reports/unknown/file", nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)

	req = httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestOverviewAndNotFound(t *testing.T) {
	app, _ := helpers.SetupTestApp(t, store.DefaultSeeds())

	resp := helpers.DoJSON(t, app, http.MethodGet, "/api/overview", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var overview store.Overview
	helpers.ParseJSON(t, resp, &overview)
	assert.Equal(t, 4, overview.TotalLeads)
	assert.Equal(t, 25, overview.ConversionRate)

	resp = helpers.DoJSON(t, app, http.MethodGet, "/api/nothing-here", nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestSwaggerDocCoversRoutes(t *testing.T) {
	app, _ := helpers.SetupTestApp(t, store.EmptySeeds())

	resp := helpers.DoJSON(t, app, http.MethodGet, "/swagger/doc.json", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "Raulo CRM API", doc.Info.Title)
	assert.Equal(t, "/api", doc.BasePath)

	documented := 0
	for _, route := range app.GetRoutes(true) {
		if route.Method == http.MethodHead || !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		segments := strings.Split(strings.TrimPrefix(route.Path, "/api"), "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path := strings.Join(segments, "/")

		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "undocumented path %s", path) {
			_, ok = ops[strings.ToLower(route.Method)]
			assert.True(t, ok, "undocumented %s %s", route.Method, path)
		}
		documented++
	}
	assert.Equal(t, 34, documented)
}
