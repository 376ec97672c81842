// main.go
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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/localnerve/raulo-crmdb/internal/database"
	"github.com/localnerve/raulo-crmdb/internal/logging"
	"github.com/localnerve/raulo-crmdb/internal/services"
	"github.com/localnerve/raulo-crmdb/internal/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg)

	backend, closeBackend, err := database.OpenBackend(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open snapshot backend")
	}

	result := services.HealthCheck(context.Background(), cfg, backend, utils.LocalServerURL(cfg.Port), log)
	_ = closeBackend()

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("Failed to marshal health check result")
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
