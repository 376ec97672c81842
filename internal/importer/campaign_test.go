package importer

import (
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCampaignLeads(t *testing.T) {
	tests := []struct {
		name     string
		platform domain.Platform
		text     string
		want     []domain.Contact
		skipped  int
	}{
		{
			name:     "Email",
			platform: domain.PlatformEmail,
			text:     "Ravi Kumar, ravi@acme.in, Acme\nPriya\tpriya@beta.io\n, orphan@x.in",
			want: []domain.Contact{
				domain.EmailContact{Name: "Ravi Kumar", Email: "ravi@acme.in", CompanyName: "Acme"},
				domain.EmailContact{Name: "Priya", Email: "priya@beta.io"},
			},
			skipped: 1,
		},
		{
			name:     "LinkedIn",
			platform: domain.PlatformLinkedIn,
			text:     "Michael Scott,linkedin.com/in/mscott",
			want: []domain.Contact{
				domain.LinkedInContact{Name: "Michael Scott", LinkedinProfile: "linkedin.com/in/mscott"},
			},
		},
		{
			name:     "Instagram",
			platform: domain.PlatformInstagram,
			text:     "@design_daily\t12.5k\n\n@arch_lovers,,45k\r\n",
			want: []domain.Contact{
				domain.InstagramContact{InstagramHandle: "@design_daily", FollowersCount: "12.5k"},
				domain.InstagramContact{InstagramHandle: "@arch_lovers", FollowersCount: "45k"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := ParseCampaignLeads(tt.text, tt.platform)

			require.Len(t, batch.Leads, len(tt.want))
			assert.Equal(t, tt.skipped, batch.Skipped)
			for i, lead := range batch.Leads {
				assert.Equal(t, tt.want[i], lead.Contact)
				assert.Equal(t, domain.FunnelPending, lead.Status)
				assert.Equal(t, tt.platform, lead.Platform())
				assert.NotEmpty(t, lead.ID)
			}
		})
	}
}

func TestParseCampaignLeadsEmpty(t *testing.T) {
	batch := ParseCampaignLeads("", domain.PlatformEmail)
	assert.Empty(t, batch.Leads)
	assert.Equal(t, 0, batch.Skipped)
}
