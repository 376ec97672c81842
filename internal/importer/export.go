// export.go
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
	"fmt"
	"strings"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var leadHeader = []string{"id", "name", "city", "category", "phone", "status", "remarks", "meeting_date", "social_media_links"}

// ExportLeadsXLSX writes leads to a single sheet workbook
func ExportLeadsXLSX(leads []domain.Lead) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Leads"
	if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	if err := xl.SetSheetRow(sheet, "A1", &leadHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, lead := range leads {
		record := []string{
			lead.ID,
			lead.Name,
			lead.City,
			lead.Category,
			lead.Phone,
			string(lead.Status),
			lead.Remarks,
			lead.MeetingDate,
			strings.Join(lead.SocialMediaLinks, " "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, fmt.Errorf("write lead %s: %w", lead.ID, err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportCampaignXLSX writes a campaign's leads with the columns of its platform
func ExportCampaignXLSX(campaign domain.Campaign) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := sheetName(campaign.Name)
	if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := campaignHeader(campaign.Platform)
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, lead := range campaign.Leads {
		record := campaignRecord(lead.Reshape(campaign.Platform))
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, fmt.Errorf("write campaign lead %s: %w", lead.ID, err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func campaignHeader(platform domain.Platform) []string {
	switch platform {
	case domain.PlatformInstagram:
		return []string{"id", "instagram_handle", "followers", "status"}
	case domain.PlatformLinkedIn:
		return []string{"id", "name", "linkedin_profile", "status"}
	default:
		return []string{"id", "name", "email", "company", "status"}
	}
}

func campaignRecord(lead domain.CampaignLead) []string {
	switch c := lead.Contact.(type) {
	case domain.InstagramContact:
		return []string{lead.ID, c.InstagramHandle, c.FollowersCount, string(lead.Status)}
	case domain.LinkedInContact:
		return []string{lead.ID, c.Name, c.LinkedinProfile, string(lead.Status)}
	case domain.EmailContact:
		return []string{lead.ID, c.Name, c.Email, c.CompanyName, string(lead.Status)}
	}
	return []string{lead.ID}
}

// sheetName strips the characters Excel rejects and caps the length at 31
func sheetName(name string) string {
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	safe := strings.TrimSpace(replacer.Replace(name))
	if runes := []rune(safe); len(runes) > 31 {
		safe = string(runes[:31])
	}
	if safe == "" {
		return "Campaign"
	}
	return safe
}
