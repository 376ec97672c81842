// projects.go
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
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/internal/types"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// ProjectHandler handles project routes
type ProjectHandler struct {
	Store *store.Store
	Log   logrus.FieldLogger
}

// projectPatchRequest accepts progress as a number or a numeric string
type projectPatchRequest struct {
	domain.ProjectPatch
	Progress *types.FlexInt `json:"progress,omitempty"`
}

func (r projectPatchRequest) patch() domain.ProjectPatch {
	p := r.ProjectPatch
	if r.Progress != nil {
		progress := r.Progress.Int()
		p.Progress = &progress
	}
	return p
}

// ListProjects handles GET /api/projects
// @Summary List projects
// @Description List every project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {array} domain.Project
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.Projects(), fiber.StatusOK)
}

// GetProject handles GET /api/projects/:id
// @Summary Get a project
// @Description Get one project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.Project
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id := c.Params("id")
	project, ok := h.Store.Project(id)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Project '%s' not found", id))
	}
	return utils.SuccessResponse(c, project, fiber.StatusOK)
}

// CreateProject handles POST /api/projects
// @Summary Create a project
// @Description Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body domain.Project true "Project"
// @Success 201 {object} domain.Project
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var project domain.Project
	if err := c.BodyParser(&project); err != nil {
		return types.BadRequest("createProject", "Invalid request body: %v", err)
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = domain.ProjectUpcoming
	}
	if project.Documents == nil {
		project.Documents = []string{}
	}
	if project.Milestones == nil {
		project.Milestones = []domain.Milestone{}
	}
	for i := range project.Milestones {
		if project.Milestones[i].ID == "" {
			project.Milestones[i].ID = uuid.NewString()
		}
	}
	if err := validate(project, "createProject"); err != nil {
		return err
	}

	if err := h.Store.AddProject(project); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createProject")
	}
	return utils.SuccessResponse(c, project, fiber.StatusCreated)
}

// UpdateProject handles PATCH /api/projects/:id
// @Summary Update a project
// @Description Merge the given fields into a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body domain.ProjectPatch true "Fields to change"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	var req projectPatchRequest
	if err := parseBody(c, &req, "updateProject"); err != nil {
		return err
	}
	changed, err := h.Store.UpdateProject(c.Params("id"), req.patch())
	return mutationResult(c, h.Log, changed, err, "updateProject")
}

// DeleteProject handles DELETE /api/projects/:id
// @Summary Delete a project
// @Description Delete a project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	changed, err := h.Store.DeleteProject(c.Params("id"))
	return mutationResult(c, h.Log, changed, err, "deleteProject")
}

// ToggleMilestone handles POST /api/projects/:id/milestones/:milestoneId/toggle
// @Summary Toggle a milestone
// @Description Flip the completion flag of one milestone
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/milestones/{milestoneId}/toggle [post]
func (h *ProjectHandler) ToggleMilestone(c *fiber.Ctx) error {
	changed, err := h.Store.ToggleMilestone(c.Params("id"), c.Params("milestoneId"))
	return mutationResult(c, h.Log, changed, err, "toggleMilestone")
}
