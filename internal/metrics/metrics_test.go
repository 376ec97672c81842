package metrics

import (
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/logging"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/tests/helpers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaugeValues flattens gathered gauges into name or name{status} keys
func gaugeValues(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			key := family.GetName()
			for _, label := range m.GetLabel() {
				key += "{" + label.GetValue() + "}"
			}
			values[key] = m.GetGauge().GetValue()
		}
	}
	return values
}

func TestCollectorObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.Observe(store.Overview{
		TotalLeads:         4,
		TotalCampaigns:     3,
		TotalCampaignLeads: 5,
		TotalFolders:       8,
		ConversionRate:     25,
		StatusDistribution: []store.StatusCount{{Status: domain.LeadStatusNew, Count: 3}},
	})

	values := gaugeValues(t, reg)
	assert.Equal(t, 4.0, values["crm_leads_total"])
	assert.Equal(t, 5.0, values["crm_campaign_leads_total"])
	assert.Equal(t, 3.0, values["crm_campaigns_total"])
	assert.Equal(t, 8.0, values["crm_folders_total"])
	assert.Equal(t, 25.0, values["crm_conversion_rate_percent"])
	assert.Equal(t, 3.0, values["crm_leads_by_status{New}"])
	assert.Equal(t, 0.0, values["crm_leads_by_status{Follow Up}"])
}

func TestCollectorAttach(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := store.New(helpers.SetupTestAdapter(t), store.DefaultSeeds(), logging.Discard())

	New(reg).Attach(s)
	assert.Equal(t, 4.0, gaugeValues(t, reg)["crm_leads_total"])

	_, err := s.DeleteLead("3")
	require.NoError(t, err)

	values := gaugeValues(t, reg)
	assert.Equal(t, 3.0, values["crm_leads_total"])
	assert.Equal(t, 0.0, values["crm_leads_by_status{New}"], "statuses that drop out are reset")
}
