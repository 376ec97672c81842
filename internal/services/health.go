// health.go
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

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

const serverDialTimeout = 1500 * time.Millisecond

// HealthCheckResult represents the health status of the service
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Storage      string            `json:"storage"`
	Server       string            `json:"server,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Pinger is any snapshot backend that can report its reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck checks the snapshot backend and, when serverURL is set, that
// the HTTP server accepts connections.
func HealthCheck(ctx context.Context, cfg *config.Config, backend Pinger, serverURL string, log logrus.FieldLogger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.Details["storage_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Snapshot backend ping failed: %v", err)
		log.WithError(err).Warn("Health check failed - snapshot backend")
	} else {
		result.Storage = "ok"
		result.Details["store_backend"] = cfg.StoreBackend
		if cfg.StoreBackend == "gorm" {
			result.Details["database_type"] = cfg.DBType
		}
	}

	if serverURL != "" {
		dialCtx, cancelDial := context.WithTimeout(ctx, serverDialTimeout)
		err := utils.DialURL(dialCtx, serverURL)
		cancelDial()
		if err != nil {
			result.Status = "unhealthy"
			result.Server = "unreachable"
			result.Details["server_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Server ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; Server ping failed: %v", err)
			}
			log.WithError(err).Warn("Health check failed - server port")
		} else {
			result.Server = "ok"
		}
	}

	if result.Status == "healthy" {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}
