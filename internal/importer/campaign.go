// campaign.go
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

package importer

import (
	"regexp"
	"strings"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/utils"
)

var campaignSeparator = regexp.MustCompile(`[\t,]+`)

// CampaignBatch is the parsed, validated output of a campaign lead import
type CampaignBatch struct {
	Leads   []domain.CampaignLead
	Skipped int
}

// ParseCampaignLeads reads one contact per row, columns split on runs of tabs
// or commas, mapped by position for platform:
//   - Email: name, email, company
//   - LinkedIn: name, profile
//   - Instagram: handle, followers
//
// Rows with an empty first column are skipped.
func ParseCampaignLeads(text string, platform domain.Platform) CampaignBatch {
	batch := CampaignBatch{Leads: []domain.CampaignLead{}}

	for _, row := range strings.Split(strings.TrimSpace(text), "\n") {
		row = strings.TrimRight(row, "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}
		cols := campaignSeparator.Split(row, -1)
		if column(cols, 0) == "" {
			batch.Skipped++
			continue
		}

		contact := contactFor(platform, cols)
		if err := utils.ValidateStruct(contact); err != nil {
			batch.Skipped++
			continue
		}
		batch.Leads = append(batch.Leads, domain.CampaignLead{
			ID:      newID(),
			Status:  domain.FunnelPending,
			Contact: contact,
		})
	}

	return batch
}

func contactFor(platform domain.Platform, cols []string) domain.Contact {
	switch platform {
	case domain.PlatformInstagram:
		return domain.InstagramContact{
			InstagramHandle: column(cols, 0),
			FollowersCount:  column(cols, 1),
		}
	case domain.PlatformLinkedIn:
		return domain.LinkedInContact{
			Name:            column(cols, 0),
			LinkedinProfile: column(cols, 1),
		}
	default:
		return domain.EmailContact{
			Name:        column(cols, 0),
			Email:       column(cols, 1),
			CompanyName: column(cols, 2),
		}
	}
}
