// metrics.go
//
// Local lead-organization store for the Raulo CRM dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of raulo-crmdb.
// raulo-crmdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// raulo-crmdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with raulo-crmdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package metrics

import (
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector mirrors the dashboard overview as prometheus gauges
type Collector struct {
	leadsTotal         prometheus.Gauge
	leadsByStatus      *prometheus.GaugeVec
	campaignLeadsTotal prometheus.Gauge
	campaignsTotal     prometheus.Gauge
	foldersTotal       prometheus.Gauge
	conversionRate     prometheus.Gauge
}

// New registers the CRM gauges with reg
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		leadsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crm_leads_total",
			Help: "Number of telecaller leads in the store",
		}),
		leadsByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "crm_leads_by_status",
			Help: "Number of leads per funnel status",
		}, []string{"status"}),
		campaignLeadsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crm_campaign_leads_total",
			Help: "Leads generated across every campaign",
		}),
		campaignsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crm_campaigns_total",
			Help: "Number of campaigns in the store",
		}),
		foldersTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crm_folders_total",
			Help: "Number of folder nodes including the root",
		}),
		conversionRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crm_conversion_rate_percent",
			Help: "Booked meetings as a rounded percentage of all leads",
		}),
	}
}

// Observe sets every gauge from overview. Statuses absent from the
// distribution are reset to zero.
func (c *Collector) Observe(overview store.Overview) {
	c.leadsTotal.Set(float64(overview.TotalLeads))
	c.campaignLeadsTotal.Set(float64(overview.TotalCampaignLeads))
	c.campaignsTotal.Set(float64(overview.TotalCampaigns))
	c.foldersTotal.Set(float64(overview.TotalFolders))
	c.conversionRate.Set(float64(overview.ConversionRate))

	for _, status := range domain.LeadStatuses {
		c.leadsByStatus.WithLabelValues(string(status)).Set(0)
	}
	for _, entry := range overview.StatusDistribution {
		c.leadsByStatus.WithLabelValues(string(entry.Status)).Set(float64(entry.Count))
	}
}

// Attach seeds the gauges from s and keeps them current after every mutation
func (c *Collector) Attach(s *store.Store) {
	c.Observe(s.Overview())
	s.OnChange(c.Observe)
}
