// reports.go
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
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/internal/types"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

const defaultUploader = "Sales Manager"

// ReportHandler handles daily report routes and the session file handles behind them
type ReportHandler struct {
	Store *store.Store
	Log   logrus.FieldLogger
}

// ListReports handles GET /api/reports
// @Summary List reports
// @Description List daily report metadata
// @Tags Reports
// @Accept json
// @Produce json
// @Success 200 {array} domain.Report
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.Reports(), fiber.StatusOK)
}

// UploadReport handles POST /api/reports as multipart with a "file" field.
// The content stays openable until the process exits; only metadata is saved.
// @Summary Upload a report
// @Description Upload a daily report file
// @Tags Reports
// @Accept mpfd
// @Produce json
// @Param file formData file true "Report file"
// @Param uploader formData string false "Uploader name"
// @Success 201 {object} domain.Report
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports [post]
func (h *ReportHandler) UploadReport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return types.BadRequest("uploadReport", "Missing report file: %v", err)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	report := domain.Report{
		ID:       uuid.NewString(),
		FileName: fh.Filename,
		Date:     today(),
		Uploader: c.FormValue("uploader", defaultUploader),
	}
	if err := validate(report, "uploadReport"); err != nil {
		return err
	}

	handle := h.Store.RegisterFileHandle(report.ID, report.FileName, content)
	if err := h.Store.AddReport(report); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "uploadReport")
	}

	h.Log.WithFields(logrus.Fields{
		"report":       report.ID,
		"content_type": handle.ContentType,
		"size":         handle.Size,
	}).Info("Report uploaded")

	return utils.SuccessResponse(c, report, fiber.StatusCreated)
}

// UpdateReport handles PATCH /api/reports/:id
// @Summary Update a report
// @Description Merge the given fields into report metadata
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param body body domain.ReportPatch true "Fields to change"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/{id} [patch]
func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	var patch domain.ReportPatch
	if err := parseBody(c, &patch, "updateReport"); err != nil {
		return err
	}
	changed, err := h.Store.UpdateReport(c.Params("id"), patch)
	return mutationResult(c, h.Log, changed, err, "updateReport")
}

// DeleteReport handles DELETE /api/reports/:id
// @Summary Delete a report
// @Description Delete report metadata. The session file stays openable
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	changed, err := h.Store.DeleteReport(c.Params("id"))
	return mutationResult(c, h.Log, changed, err, "deleteReport")
}

// OpenReport handles GET /api/reports/:id/file. Reports whose content was
// uploaded in an earlier session have no file and answer 404.
// @Summary Open a report file
// @Description Stream a report file uploaded in this session
// @Tags Reports
// @Accept json
// @Produce octet-stream
// @Param id path string true "Report ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /reports/{id}/file [get]
func (h *ReportHandler) OpenReport(c *fiber.Ctx) error {
	id := c.Params("id")
	handle, ok := h.Store.FileHandle(id)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("No file for report '%s' in this session", id))
	}

	c.Set(fiber.HeaderContentType, handle.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", handle.Name))
	return c.Status(fiber.StatusOK).SendStream(handle.Open(), int(handle.Size))
}
