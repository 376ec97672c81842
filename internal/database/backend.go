// backend.go
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

package database

import (
	"fmt"

	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/sirupsen/logrus"
)

// OpenBackend builds the snapshot backend selected by STORE_BACKEND.
// The returned close func releases its connections.
func OpenBackend(cfg *config.Config, log *logrus.Logger) (persist.Backend, func() error, error) {
	switch cfg.StoreBackend {
	case "redis":
		backend := persist.NewRedisBackend(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		log.WithField("addr", cfg.RedisAddr).Info("Using redis snapshot backend")
		return backend, backend.Close, nil

	case "gorm", "":
		db, err := Connect(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := AutoMigrate(db); err != nil {
			_ = Close(db)
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return persist.NewGormBackend(db), func() error { return Close(db) }, nil
	}

	return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
}
