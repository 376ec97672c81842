// leads.go
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

// Package importer turns pasted or uploaded delimited text into candidate
// leads and campaign leads, and renders them back out as spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/utils"
)

const (
	unknownLabel  = "Unknown"
	importedLabel = "Imported"
	generalLabel  = "General"
	csvRemarks    = "Imported via CSV"
)

var newID = uuid.NewString

// Result summarizes a bulk import
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// LeadBatch is the parsed, validated output of a lead import
type LeadBatch struct {
	Leads   []domain.Lead
	Skipped int
}

// labelDefaults picks the city and category used for columns left empty
func labelDefaults(node domain.FolderNode, cityFallback string) (city, category string) {
	city, category = cityFallback, generalLabel
	switch node.Type {
	case domain.FolderCity:
		city = node.Name
	case domain.FolderCategory:
		category = node.Name
	}
	return city, category
}

func column(cols []string, i int) string {
	if i < len(cols) {
		return strings.TrimSpace(cols[i])
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// ParseLeadPaste reads tab separated rows of name, city, category, phone.
// Rows with fewer than two columns are skipped. Empty city and category
// columns take the name of the selected city or category node.
func ParseLeadPaste(text string, node domain.FolderNode) LeadBatch {
	city, category := labelDefaults(node, unknownLabel)
	batch := LeadBatch{Leads: []domain.Lead{}}

	for _, row := range strings.Split(strings.TrimSpace(text), "\n") {
		row = strings.TrimRight(row, "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}
		cols := strings.Split(row, "\t")
		if len(cols) < 2 {
			batch.Skipped++
			continue
		}

		lead := domain.Lead{
			ID:               newID(),
			Name:             orDefault(column(cols, 0), unknownLabel),
			City:             orDefault(column(cols, 1), city),
			Category:         orDefault(column(cols, 2), category),
			Phone:            column(cols, 3),
			Status:           domain.LeadStatusNew,
			SocialMediaLinks: []string{},
		}
		if err := utils.ValidateStruct(lead); err != nil {
			batch.Skipped++
			continue
		}
		batch.Leads = append(batch.Leads, lead)
	}

	return batch
}

// ParseLeadCSV reads comma separated rows of name, city, category, phone.
// A first row mentioning "name" or "phone" is treated as a header.
func ParseLeadCSV(r io.Reader, node domain.FolderNode) (LeadBatch, error) {
	city, category := labelDefaults(node, importedLabel)
	batch := LeadBatch{Leads: []domain.Lead{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				batch.Skipped++
				first = false
				continue
			}
			return batch, fmt.Errorf("read csv: %w", err)
		}

		if first {
			first = false
			header := strings.ToLower(strings.Join(record, ","))
			if strings.Contains(header, "name") || strings.Contains(header, "phone") {
				continue
			}
		}
		if blank(record) {
			continue
		}

		lead := domain.Lead{
			ID:               newID(),
			Name:             orDefault(column(record, 0), unknownLabel),
			City:             orDefault(column(record, 1), city),
			Category:         orDefault(column(record, 2), category),
			Phone:            column(record, 3),
			Status:           domain.LeadStatusNew,
			Remarks:          csvRemarks,
			SocialMediaLinks: []string{},
		}
		if err := utils.ValidateStruct(lead); err != nil {
			batch.Skipped++
			continue
		}
		batch.Leads = append(batch.Leads, lead)
	}

	return batch, nil
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
