package main

import (
	"context"
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/db"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/catalog"
	toolrepo "github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/tool"
)

// seedParams requires Redis: seeding without a database is a config error.
type seedParams struct {
	dig.In

	Store db.Store
}

// seed copies a YAML catalog into Redis hashes for the redis source driver.
func seed(ctx context.Context, path string, p seedParams, logger *zap.Logger) error {
	defer p.Store.Close()

	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	repo := toolrepo.New(p.Store)
	if err := repo.UpsertBatch(ctx, cat.All()); err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}

	logger.Info("Seeded tool catalog", zap.String("path", path), zap.Int("tools", cat.Len()))
	return nil
}
