package store

import (
	"math"

	"github.com/localnerve/raulo-crmdb/internal/domain"
)

// StatusCount is one slice of the lead status distribution
type StatusCount struct {
	Label  string            `json:"name"`
	Status domain.LeadStatus `json:"status"`
	Count  int               `json:"value"`
}

// CampaignPerformance is the lead count of one campaign
type CampaignPerformance struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Leads int    `json:"leads"`
}

// Overview is the aggregate view shown to the boss
type Overview struct {
	TotalLeads          int                   `json:"totalLeads"`
	InterestedLeads     int                   `json:"interestedLeads"`
	BookedMeetings      int                   `json:"bookedMeetings"`
	ConversionRate      int                   `json:"conversionRate"`
	ResponseRate        int                   `json:"responseRate"`
	StatusDistribution  []StatusCount         `json:"statusDistribution"`
	TotalProjects       int                   `json:"totalProjects"`
	OngoingProjects     int                   `json:"ongoingProjects"`
	TotalCampaigns      int                   `json:"totalCampaigns"`
	TotalCampaignLeads  int                   `json:"totalCampaignLeads"`
	CampaignPerformance []CampaignPerformance `json:"campaignPerformance"`
	TotalReports        int                   `json:"totalReports"`
	TotalFolders        int                   `json:"totalFolders"`
}

// distribution order and labels follow the boss chart
var statusLabels = []struct {
	status domain.LeadStatus
	label  string
}{
	{domain.LeadStatusInterestedBooked, "Booked"},
	{domain.LeadStatusInterestedNotBooked, "Interested"},
	{domain.LeadStatusNotInterested, "Not Interested"},
	{domain.LeadStatusNew, "New"},
	{domain.LeadStatusFollowUp, "Follow Up"},
}

func computeOverview(leads []domain.Lead, projects []domain.Project, campaigns []domain.Campaign, reports, folders int) Overview {
	o := Overview{
		TotalLeads:          len(leads),
		TotalProjects:       len(projects),
		TotalCampaigns:      len(campaigns),
		TotalReports:        reports,
		TotalFolders:        folders,
		StatusDistribution:  []StatusCount{},
		CampaignPerformance: make([]CampaignPerformance, 0, len(campaigns)),
	}

	byStatus := make(map[domain.LeadStatus]int)
	for _, l := range leads {
		byStatus[l.Status]++
	}
	o.BookedMeetings = byStatus[domain.LeadStatusInterestedBooked]
	o.InterestedLeads = o.BookedMeetings + byStatus[domain.LeadStatusInterestedNotBooked]
	o.ConversionRate = percent(o.BookedMeetings, o.TotalLeads)
	o.ResponseRate = percent(o.InterestedLeads, o.TotalLeads)

	for _, sl := range statusLabels {
		if n := byStatus[sl.status]; n > 0 {
			o.StatusDistribution = append(o.StatusDistribution, StatusCount{Label: sl.label, Status: sl.status, Count: n})
		}
	}

	for _, p := range projects {
		if p.Status == domain.ProjectOngoing {
			o.OngoingProjects++
		}
	}

	for _, c := range campaigns {
		o.TotalCampaignLeads += c.LeadsGenerated
		o.CampaignPerformance = append(o.CampaignPerformance, CampaignPerformance{ID: c.ID, Name: c.Name, Leads: c.LeadsGenerated})
	}

	return o
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
