// common.go
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
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/internal/types"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

var now = time.Now

// ErrorHandler renders every error returned by a handler in the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fe *fiber.Error
	var ce *types.CustomError
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// parseBody decodes the request body into dst and checks its validate tags
func parseBody(c *fiber.Ctx, dst interface{}, errorType string) error {
	if err := c.BodyParser(dst); err != nil {
		return types.BadRequest(errorType, "Invalid request body: %v", err)
	}
	return validate(dst, errorType)
}

func validate(v interface{}, errorType string) error {
	if err := utils.ValidateStruct(v); err != nil {
		return types.BadRequest(errorType, "%v", err)
	}
	return nil
}

// mutationResult turns a store mutation outcome into a response.
// Only persistence failures are errors.
func mutationResult(c *fiber.Ctx, log logrus.FieldLogger, changed bool, err error, errorType string) error {
	if err != nil {
		log.WithError(err).WithField("type", errorType).Error("Mutation was applied but not saved")
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
	return utils.MutationResponse(c, changed)
}

// selectedNode resolves the node query parameter, defaulting to the root
func selectedNode(c *fiber.Ctx, s *store.Store) domain.FolderNode {
	if id := c.Query("node"); id != "" {
		if node, ok := s.FindFolder(id); ok {
			return node
		}
	}
	return s.Folders()
}

// importText reads pasted rows from a JSON {"text": ...} body or a raw text body
func importText(c *fiber.Ctx) (string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var body struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil {
			return "", types.BadRequest("import", "Invalid request body: %v", err)
		}
		return body.Text, nil
	}
	return string(c.Body()), nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

func sendAttachment(c *fiber.Ctx, filename, contentType string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(data)
}

func today() string {
	return now().Format(dateLayout)
}
