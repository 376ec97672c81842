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

// LeadHandler handles telecaller lead routes
type LeadHandler struct {
	Store *store.Store
	Log   logrus.FieldLogger
}

// ListLeads handles GET /api/leads?node=&q=&status=
// @Summary List leads
// @Description List the leads visible under a folder node, filtered by search text and status
// @Tags Leads
// @Accept json
// @Produce json
// @Param node query string false "Folder node ID, defaults to the root"
// @Param q query string false "Case-insensitive search over name, phone and category"
// @Param status query string false "Lead status, or All"
// @Success 200 {array} domain.Lead
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	var q store.LeadQuery
	if err := c.QueryParser(&q); err != nil {
		return types.BadRequest("listLeads", "Invalid query: %v", err)
	}
	return utils.SuccessResponse(c, h.Store.VisibleLeads(c.Query("node"), q), fiber.StatusOK)
}

// GetLead handles GET /api/leads/:id
// @Summary Get a lead
// @Description Get one lead by ID
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.Lead
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	id := c.Params("id")
	lead, ok := h.Store.Lead(id)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Lead '%s' not found", id))
	}
	return utils.SuccessResponse(c, lead, fiber.StatusOK)
}

// CreateLeads handles POST /api/leads with one lead or an array of leads.
// Missing ids are generated and a missing status starts at New.
// @Summary Create leads
// @Description Create one lead or an array of leads
// @Tags Leads
// @Accept json
// @Produce json
// @Param body body []domain.Lead true "Lead or array of leads"
// @Success 201 {object} utils.ImportResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads [post]
func (h *LeadHandler) CreateLeads(c *fiber.Ctx) error {
	var body types.FlexList[domain.Lead]
	if err := c.BodyParser(&body); err != nil {
		return types.BadRequest("createLeads", "Invalid request body: %v", err)
	}
	if len(body) == 0 {
		return types.BadRequest("createLeads", "At least one lead is required")
	}

	leads := body.Slice()
	for i := range leads {
		if leads[i].ID == "" {
			leads[i].ID = uuid.NewString()
		}
		if leads[i].Status == "" {
			leads[i].Status = domain.LeadStatusNew
		}
		if leads[i].SocialMediaLinks == nil {
			leads[i].SocialMediaLinks = []string{}
		}
		if err := validate(leads[i], "createLeads"); err != nil {
			return err
		}
	}

	for _, lead := range leads {
		if err := h.Store.AddLead(lead); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createLeads")
		}
	}

	return utils.SuccessResponse(c, leads, fiber.StatusCreated)
}

// UpdateLead handles PATCH /api/leads/:id
// @Summary Update a lead
// @Description Merge the given fields into a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param body body domain.LeadPatch true "Fields to change"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads/{id} [patch]
func (h *LeadHandler) UpdateLead(c *fiber.Ctx) error {
	var patch domain.LeadPatch
	if err := parseBody(c, &patch, "updateLead"); err != nil {
		return err
	}
	changed, err := h.Store.UpdateLead(c.Params("id"), patch)
	return mutationResult(c, h.Log, changed, err, "updateLead")
}

// DeleteLead handles DELETE /api/leads/:id
// @Summary Delete a lead
// @Description Delete a lead by ID
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	changed, err := h.Store.DeleteLead(c.Params("id"))
	return mutationResult(c, h.Log, changed, err, "deleteLead")
}

// ImportLeads handles POST /api/leads/import?node=
// A multipart "file" field is read as CSV, anything else as tab separated paste.
// @Summary Import leads
// @Description Import pasted tab separated rows or an uploaded spreadsheet into the selected folder
// @Tags Leads
// @Accept mpfd
// @Produce json
// @Param node query string false "Folder node ID the leads are filed under"
// @Param file formData file false "CSV or XLSX file"
// @Param text formData string false "Pasted rows"
// @Success 200 {object} utils.ImportResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads/import [post]
func (h *LeadHandler) ImportLeads(c *fiber.Ctx) error {
	node := selectedNode(c, h.Store)

	var batch importer.LeadBatch
	if isMultipart(c) {
		fh, err := c.FormFile("file")
		if err != nil {
			return types.BadRequest("importLeads", "Missing CSV file: %v", err)
		}
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		batch, err = importer.ParseLeadCSV(f, node)
		if err != nil {
			return types.Unprocessable("importLeads", "Unreadable CSV: %v", err)
		}
	} else {
		text, err := importText(c)
		if err != nil {
			return err
		}
		batch = importer.ParseLeadPaste(text, node)
	}

	imported, err := h.Store.ImportLeads(batch.Leads)
	if err != nil {
		h.Log.WithError(err).WithField("imported", imported).Error("Lead import stopped on a failed save")
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "importLeads")
	}

	h.Log.WithFields(logrus.Fields{
		"node":     node.ID,
		"imported": imported,
		"skipped":  batch.Skipped,
	}).Info("Leads imported")

	return utils.ImportResponse(c, imported, batch.Skipped)
}

// ExportLeads handles GET /api/leads/export with the same filters as ListLeads
// @Summary Export leads
// @Description Export the visible leads as a spreadsheet
// @Tags Leads
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param node query string false "Folder node ID, defaults to the root"
// @Param q query string false "Search text"
// @Param status query string false "Lead status, or All"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leads/export [get]
func (h *LeadHandler) ExportLeads(c *fiber.Ctx) error {
	var q store.LeadQuery
	if err := c.QueryParser(&q); err != nil {
		return types.BadRequest("exportLeads", "Invalid query: %v", err)
	}

	data, err := importer.ExportLeadsXLSX(h.Store.VisibleLeads(c.Query("node"), q))
	if err != nil {
		return fmt.Errorf("export leads: %w", err)
	}
	return sendAttachment(c, "leads-"+today()+".xlsx", importer.XLSXContentType, data)
}
