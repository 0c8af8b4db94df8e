package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/swbase/swb/internal/api"
	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/storage"
)

// uploadExport sends the backend's export file to the results server when uploads are on.
func uploadExport(ctx context.Context, log *slog.Logger, backend storage.Backend, s *core.Session, simulated time.Duration) {
	cfg := config.GetAPIConfig()
	if !cfg.Upload {
		return
	}
	exp, ok := backend.(storage.Exporter)
	if !ok || exp.ExportedFilePath() == "" {
		log.Warn("upload enabled but the storage backend wrote no export")
		return
	}

	client := api.New(cfg.ServerURL, cfg.APIKey)
	if err := client.Healthcheck(ctx); err != nil {
		log.Warn("results server unreachable, skipping upload", "url", cfg.ServerURL, "error", err)
		return
	}
	err := client.Upload(ctx, exp.ExportedFilePath(), api.UploadMetadata{
		SessionName: s.Name,
		Map:         s.Map,
		Realm:       s.Realm,
		Duration:    simulated,
		Tag:         s.Tag,
	})
	if err != nil {
		log.Error("upload failed", "path", exp.ExportedFilePath(), "error", err)
		return
	}
	log.Info("session uploaded", "path", exp.ExportedFilePath(), "url", cfg.ServerURL)
}
