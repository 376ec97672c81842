// routes.go
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

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/sirupsen/logrus"
)

// Register mounts every CRM route under router
func Register(router fiber.Router, s *store.Store, log logrus.FieldLogger) {
	leads := &LeadHandler{Store: s, Log: log}
	folders := &FolderHandler{Store: s, Log: log}
	projects := &ProjectHandler{Store: s, Log: log}
	campaigns := &CampaignHandler{Store: s, Log: log}
	reports := &ReportHandler{Store: s, Log: log}
	overview := &OverviewHandler{Store: s}

	router.Get("/leads", leads.ListLeads)
	router.Post("/leads", leads.CreateLeads)
	router.Post("/leads/import", leads.ImportLeads)
	router.Get("/leads/export", leads.ExportLeads)
	router.Get("/leads/:id", leads.GetLead)
	router.Patch("/leads/:id", leads.UpdateLead)
	router.Delete("/leads/:id", leads.DeleteLead)

	router.Get("/folders", folders.GetTree)
	router.Post("/folders", folders.AddFolder)
	router.Get("/folders/:id", folders.GetFolder)
	router.Patch("/folders/:id", folders.RenameFolder)
	router.Delete("/folders/:id", folders.DeleteFolder)

	router.Get("/projects", projects.ListProjects)
	router.Post("/projects", projects.CreateProject)
	router.Get("/projects/:id", projects.GetProject)
	router.Patch("/projects/:id", projects.UpdateProject)
	router.Delete("/projects/:id", projects.DeleteProject)
	router.Post("/projects/:id/milestones/:milestoneId/toggle", projects.ToggleMilestone)

	router.Get("/campaigns", campaigns.ListCampaigns)
	router.Post("/campaigns", campaigns.CreateCampaign)
	router.Get("/campaigns/:id", campaigns.GetCampaign)
	router.Patch("/campaigns/:id", campaigns.UpdateCampaign)
	router.Delete("/campaigns/:id", campaigns.DeleteCampaign)
	router.Post("/campaigns/:id/leads", campaigns.AddCampaignLead)
	router.Patch("/campaigns/:id/leads/:leadId", campaigns.UpdateCampaignLead)
	router.Delete("/campaigns/:id/leads/:leadId", campaigns.DeleteCampaignLead)
	router.Post("/campaigns/:id/import", campaigns.ImportCampaignLeads)
	router.Get("/campaigns/:id/export", campaigns.ExportCampaign)

	router.Get("/reports", reports.ListReports)
	router.Post("/reports", reports.UploadReport)
	router.Patch("/reports/:id", reports.UpdateReport)
	router.Delete("/reports/:id", reports.DeleteReport)
	router.Get("/reports/:id/file", reports.OpenReport)

	router.Get("/overview", overview.GetOverview)
}

// NotFound answers every unmatched route
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   "[404] Resource Not Found",
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
