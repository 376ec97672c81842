package store

import (
	"time"

	"github.com/localnerve/raulo-crmdb/internal/domain"
)

// Seeds are the defaults used for any snapshot that has never been saved
type Seeds struct {
	Leads     []domain.Lead
	Projects  []domain.Project
	Campaigns []domain.Campaign
	Reports   []domain.Report
	Folders   domain.FolderNode
}

// RootFolderID is the fixed id of the folder tree root
const RootFolderID = "root"

// EmptySeeds starts with no records and a bare root folder
func EmptySeeds() Seeds {
	return Seeds{
		Leads:     []domain.Lead{},
		Projects:  []domain.Project{},
		Campaigns: []domain.Campaign{},
		Reports:   []domain.Report{},
		Folders:   domain.FolderNode{ID: RootFolderID, Name: "Global Database", Type: domain.FolderRoot, Children: []domain.FolderNode{}},
	}
}

// DefaultSeeds is the demo data a fresh dashboard starts with
func DefaultSeeds() Seeds {
	today := time.Now().Format("2006-01-02")

	return Seeds{
		Leads: []domain.Lead{
			{ID: "1", Name: "Supreme Interiors", City: "Mumbai", Category: "Interior Designers", Phone: "099201 61633", Status: domain.LeadStatusInterestedBooked, MeetingDate: "2023-10-15T14:00", SocialMediaLinks: []string{"https://instagram.com/supreme_interiors"}},
			{ID: "2", Name: "Artneit Designs", City: "Mumbai", Category: "Interior Designers", Phone: "075068 03602", Status: domain.LeadStatusInterestedNotBooked, Remarks: "Busy, call later", SocialMediaLinks: []string{}},
			{ID: "3", Name: "Bandra Cafe", City: "Mumbai", Category: "Cafes", Phone: "098765 43210", Status: domain.LeadStatusNew, SocialMediaLinks: []string{"https://facebook.com/bandracafe", "https://instagram.com/bandracafe"}},
			{ID: "4", Name: "Delhi Estate", City: "Delhi", Category: "Real Estate", Phone: "011223 34455", Status: domain.LeadStatusNotInterested, SocialMediaLinks: []string{}},
		},
		Projects: []domain.Project{
			{
				ID: "1", Name: "Raulo CRM V1", Client: "Internal", Status: domain.ProjectOngoing,
				Description: "Developing the internal CRM system.", Progress: 65,
				Documents: []string{"specs.pdf"},
				Milestones: []domain.Milestone{
					{ID: "m1", Title: "UI Design", IsCompleted: true},
					{ID: "m2", Title: "Frontend Dev", IsCompleted: true},
					{ID: "m3", Title: "Backend Integration", IsCompleted: false},
				},
			},
			{
				ID: "2", Name: "E-commerce Redesign", Client: "ShopifyClient", Status: domain.ProjectUpcoming,
				Description: "Redesigning the checkout flow.", Progress: 0,
				Documents:  []string{},
				Milestones: []domain.Milestone{{ID: "m4", Title: "Kickoff Meeting", IsCompleted: false}},
			},
			{
				ID: "3", Name: "Social Booster", Client: "InfluencerAgency", Status: domain.ProjectCompleted,
				Description: "Setting up social media handles and content.", Progress: 100,
				Documents:  []string{},
				Milestones: []domain.Milestone{{ID: "m5", Title: "Create Accounts", IsCompleted: true}},
			},
		},
		Campaigns: []domain.Campaign{
			{
				ID: "1", Name: "Winter Email Blast", Platform: domain.PlatformEmail, LeadsGenerated: 2,
				Status: domain.CampaignActive, Date: today, Documents: []string{"email_copy_v1.pdf"},
				Leads: []domain.CampaignLead{
					{ID: "e1", Status: domain.FunnelContacted, Contact: domain.EmailContact{Name: "John Doe", Email: "john@corp.com", CompanyName: "MegaCorp"}},
					{ID: "e2", Status: domain.FunnelReplied, Contact: domain.EmailContact{Name: "Jane Smith", Email: "jane@start.up", CompanyName: "StartUp Inc"}},
				},
			},
			{
				ID: "2", Name: "CEO Outreach", Platform: domain.PlatformLinkedIn, LeadsGenerated: 1,
				Status: domain.CampaignActive, Date: today, Documents: []string{},
				Leads: []domain.CampaignLead{
					{ID: "l1", Status: domain.FunnelConverted, Contact: domain.LinkedInContact{Name: "Michael Scott", LinkedinProfile: "linkedin.com/in/mscott"}},
				},
			},
			{
				ID: "3", Name: "Influencer Collab", Platform: domain.PlatformInstagram, LeadsGenerated: 2,
				Status: domain.CampaignActive, Date: today, Documents: []string{"influencer_list.xlsx"},
				Leads: []domain.CampaignLead{
					{ID: "i1", Status: domain.FunnelContacted, Contact: domain.InstagramContact{InstagramHandle: "@design_daily", FollowersCount: "12.5k"}},
					{ID: "i2", Status: domain.FunnelPending, Contact: domain.InstagramContact{InstagramHandle: "@arch_lovers", FollowersCount: "45k"}},
				},
			},
		},
		Reports: []domain.Report{},
		Folders: domain.FolderNode{
			ID: RootFolderID, Name: "Global Database", Type: domain.FolderRoot,
			Children: []domain.FolderNode{
				{
					ID: "in", Name: "India", Type: domain.FolderCountry,
					Children: []domain.FolderNode{
						{
							ID: "mumbai", Name: "Mumbai", Type: domain.FolderCity,
							Children: []domain.FolderNode{
								category("mum-real", "Real Estate"),
								category("mum-cafe", "Cafes"),
								category("mum-int", "Interior Designers"),
							},
						},
						{
							ID: "delhi", Name: "Delhi", Type: domain.FolderCity,
							Children: []domain.FolderNode{
								category("del-real", "Real Estate"),
							},
						},
					},
				},
			},
		},
	}
}

func category(id, name string) domain.FolderNode {
	return domain.FolderNode{ID: id, Name: name, Type: domain.FolderCategory, Children: []domain.FolderNode{}}
}
