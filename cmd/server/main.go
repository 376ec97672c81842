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
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/localnerve/raulo-crmdb/internal/database"
	"github.com/localnerve/raulo-crmdb/internal/handlers"
	"github.com/localnerve/raulo-crmdb/internal/logging"
	"github.com/localnerve/raulo-crmdb/internal/metrics"
	"github.com/localnerve/raulo-crmdb/internal/middleware"
	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// @title Raulo CRM API
// @version 1.0.0
// @description Lead organization store behind the Raulo CRM dashboard
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/raulo-crmdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// A missing .env is fine; the environment may already be set
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.New(cfg)
	if envErr != nil {
		log.Debug("No .env file loaded, using process environment")
	}

	backend, closeBackend, err := database.OpenBackend(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open snapshot backend")
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.WithError(err).Warn("Failed to close snapshot backend")
		}
	}()

	adapter := persist.NewAdapter(backend, cfg.StoreKeyPrefix, cfg.StoreTimeout, log)
	crm := store.New(adapter, store.DefaultSeeds(), log)

	collector := metrics.New(prometheus.DefaultRegisterer)
	collector.Attach(crm)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		BodyLimit:             int(cfg.MaxUploadBytes),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(compress.New())

	prom := fiberprometheus.New("raulo-crmdb")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	health := &handlers.HealthHandler{Config: cfg, Backend: backend, Log: log}
	app.Get("/healthz", health.GetHealth)

	// Swagger documentation
	handlers.RegisterDocs(app)

	handlers.Register(app.Group("/api"), crm, log)

	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"backend": cfg.StoreBackend,
		"leads":   len(crm.Leads()),
	}).Info("Starting server")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	log.Info("Server stopped")
}
