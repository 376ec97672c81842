// folders.go
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
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// FolderHandler handles folder tree routes
type FolderHandler struct {
	Store *store.Store
	Log   logrus.FieldLogger
}

type addFolderRequest struct {
	ParentID string            `json:"parentId" validate:"required"`
	Name     string            `json:"name" validate:"required"`
	Type     domain.FolderType `json:"type" validate:"required,oneof=country city category"`
}

type renameFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

// GetTree handles GET /api/folders
// @Summary Get the folder tree
// @Description Get the full nested folder tree
// @Tags Folders
// @Accept json
// @Produce json
// @Success 200 {object} domain.FolderNode
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /folders [get]
func (h *FolderHandler) GetTree(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.Folders(), fiber.StatusOK)
}

// GetFolder handles GET /api/folders/:id
// @Summary Get a folder
// @Description Get the subtree rooted at a folder
// @Tags Folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} domain.FolderNode
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /folders/{id} [get]
func (h *FolderHandler) GetFolder(c *fiber.Ctx) error {
	id := c.Params("id")
	node, ok := h.Store.FindFolder(id)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Folder '%s' not found", id))
	}
	return utils.SuccessResponse(c, node, fiber.StatusOK)
}

// AddFolder handles POST /api/folders. An unknown parent or a type that is
// not legal below the parent is reported as unchanged.
// @Summary Add a folder
// @Description Add a child folder. The type must be the legal child type of the parent
// @Tags Folders
// @Accept json
// @Produce json
// @Param body body handlers.addFolderRequest true "Parent, name and type"
// @Success 201 {object} domain.FolderNode
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /folders [post]
func (h *FolderHandler) AddFolder(c *fiber.Ctx) error {
	var req addFolderRequest
	if err := parseBody(c, &req, "addFolder"); err != nil {
		return err
	}

	node, ok, err := h.Store.AddFolder(req.ParentID, req.Name, req.Type)
	if err != nil || !ok {
		return mutationResult(c, h.Log, ok, err, "addFolder")
	}
	return utils.SuccessResponse(c, node, fiber.StatusCreated)
}

// RenameFolder handles PATCH /api/folders/:id
// @Summary Rename a folder
// @Description Rename a folder. Leads filed under the old name are not moved
// @Tags Folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param body body handlers.renameFolderRequest true "New name"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /folders/{id} [patch]
func (h *FolderHandler) RenameFolder(c *fiber.Ctx) error {
	var req renameFolderRequest
	if err := parseBody(c, &req, "renameFolder"); err != nil {
		return err
	}
	changed, err := h.Store.RenameFolder(c.Params("id"), req.Name)
	return mutationResult(c, h.Log, changed, err, "renameFolder")
}

// DeleteFolder handles DELETE /api/folders/:id
// @Summary Delete a folder
// @Description Delete a folder and its subtree. The root is never removed
// @Tags Folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /folders/{id} [delete]
func (h *FolderHandler) DeleteFolder(c *fiber.Ctx) error {
	changed, err := h.Store.DeleteFolder(c.Params("id"))
	return mutationResult(c, h.Log, changed, err, "deleteFolder")
}
