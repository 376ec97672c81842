// campaigns.go
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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/importer"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/internal/types"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// CampaignHandler handles sales campaign routes, including each campaign's lead list
type CampaignHandler struct {
	Store *store.Store
	Log   logrus.FieldLogger
}

// ListCampaigns handles GET /api/campaigns?platform=
// @Summary List campaigns
// @Description List campaigns, optionally for one platform
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param platform query string false "Platform, or All"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.VisibleCampaigns(c.Query("platform", domain.StatusAll)), fiber.StatusOK)
}

// GetCampaign handles GET /api/campaigns/:id
// @Summary Get a campaign
// @Description Get one campaign with its leads
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id := c.Params("id")
	campaign, ok := h.Store.Campaign(id)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Campaign '%s' not found", id))
	}
	return utils.SuccessResponse(c, campaign, fiber.StatusOK)
}

// CreateCampaign handles POST /api/campaigns. New campaigns start Active, dated today.
// @Summary Create a campaign
// @Description Create a campaign. New campaigns start Active, dated today
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param body body object true "Name and platform"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var campaign domain.Campaign
	if err := c.BodyParser(&campaign); err != nil {
		return types.BadRequest("createCampaign", "Invalid request body: %v", err)
	}
	if campaign.ID == "" {
		campaign.ID = uuid.NewString()
	}
	if campaign.Status == "" {
		campaign.Status = domain.CampaignActive
	}
	if campaign.Date == "" {
		campaign.Date = today()
	}
	if campaign.Documents == nil {
		campaign.Documents = []string{}
	}
	if campaign.Leads == nil {
		campaign.Leads = []domain.CampaignLead{}
	}
	if err := validate(campaign, "createCampaign"); err != nil {
		return err
	}

	if err := h.Store.AddCampaign(campaign); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createCampaign")
	}

	created, _ := h.Store.Campaign(campaign.ID)
	return utils.SuccessResponse(c, created, fiber.StatusCreated)
}

// UpdateCampaign handles PATCH /api/campaigns/:id
// @Summary Update a campaign
// @Description Merge the given fields into a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param body body object true "Fields to change"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id} [patch]
func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	var patch domain.CampaignPatch
	if err := parseBody(c, &patch, "updateCampaign"); err != nil {
		return err
	}
	changed, err := h.Store.UpdateCampaign(c.Params("id"), patch)
	return mutationResult(c, h.Log, changed, err, "updateCampaign")
}

// DeleteCampaign handles DELETE /api/campaigns/:id
// @Summary Delete a campaign
// @Description Delete a campaign and its leads
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	changed, err := h.Store.DeleteCampaign(c.Params("id"))
	return mutationResult(c, h.Log, changed, err, "deleteCampaign")
}

// AddCampaignLead handles POST /api/campaigns/:id/leads
// @Summary Add a campaign lead
// @Description Add a lead to a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param body body object true "Campaign lead for the campaign platform"
// @Success 201 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id}/leads [post]
func (h *CampaignHandler) AddCampaignLead(c *fiber.Ctx) error {
	var lead domain.CampaignLead
	if err := c.BodyParser(&lead); err != nil {
		return types.BadRequest("addCampaignLead", "Invalid request body: %v", err)
	}
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.FunnelPending
	}

	changed, err := h.Store.AddCampaignLead(c.Params("id"), lead)
	return mutationResult(c, h.Log, changed, err, "addCampaignLead")
}

// UpdateCampaignLead handles PATCH /api/campaigns/:id/leads/:leadId
// @Summary Update a campaign lead
// @Description Merge the given fields into a campaign lead
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param leadId path string true "Campaign lead ID"
// @Param body body object true "Fields to change"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id}/leads/{leadId} [patch]
func (h *CampaignHandler) UpdateCampaignLead(c *fiber.Ctx) error {
	var patch domain.CampaignLeadPatch
	if err := parseBody(c, &patch, "updateCampaignLead"); err != nil {
		return err
	}
	changed, err := h.Store.UpdateCampaignLead(c.Params("id"), c.Params("leadId"), patch)
	return mutationResult(c, h.Log, changed, err, "updateCampaignLead")
}

// DeleteCampaignLead handles DELETE /api/campaigns/:id/leads/:leadId
// @Summary Delete a campaign lead
// @Description Remove a lead from a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param leadId path string true "Campaign lead ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id}/leads/{leadId} [delete]
func (h *CampaignHandler) DeleteCampaignLead(c *fiber.Ctx) error {
	changed, err := h.Store.DeleteCampaignLead(c.Params("id"), c.Params("leadId"))
	return mutationResult(c, h.Log, changed, err, "deleteCampaignLead")
}

// ImportCampaignLeads handles POST /api/campaigns/:id/import with pasted rows
// @Summary Import campaign leads
// @Description Import pasted tab separated rows into a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param body body object true "Pasted rows as {"text": ...}"
// @Success 200 {object} utils.ImportResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id}/import [post]
func (h *CampaignHandler) ImportCampaignLeads(c *fiber.Ctx) error {
	id := c.Params("id")
	campaign, ok := h.Store.Campaign(id)
	if !ok {
		return utils.ImportResponse(c, 0, 0)
	}

	text, err := importText(c)
	if err != nil {
		return err
	}
	batch := importer.ParseCampaignLeads(text, campaign.Platform)

	changed, err := h.Store.ImportCampaignLeads(id, batch.Leads)
	if err != nil {
		h.Log.WithError(err).WithField("campaign", id).Error("Campaign lead import was applied but not saved")
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "importCampaignLeads")
	}

	imported := 0
	if changed {
		imported = len(batch.Leads)
	}
	return utils.ImportResponse(c, imported, batch.Skipped)
}

// ExportCampaign handles GET /api/campaigns/:id/export
// @Summary Export a campaign
// @Description Export the leads of a campaign as a spreadsheet
// @Tags Campaigns
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Campaign ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /campaigns/{id}/export [get]
func (h *CampaignHandler) ExportCampaign(c *fiber.Ctx) error {
	id := c.Params("id")
	campaign, ok := h.Store.Campaign(id)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Campaign '%s' not found", id))
	}

	data, err := importer.ExportCampaignXLSX(campaign)
	if err != nil {
		return fmt.Errorf("export campaign: %w", err)
	}
	return sendAttachment(c, "campaign-"+campaign.ID+".xlsx", importer.XLSXContentType, data)
}
