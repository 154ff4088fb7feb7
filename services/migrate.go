package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/database"
)

// MigrationResult counts per-project outcomes of a snapshot import.
type MigrationResult struct {
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`
}

// MigrateSnapshot imports every project from the static snapshot into the
// live store, preserving snapshot ids so existing deep links keep working.
// Individual failures are logged and counted; the import never aborts on one
// bad record.
func MigrateSnapshot(ctx context.Context, source, target database.RecordStore) (MigrationResult, error) {
	logger := log.With().Str("component", "migration").Logger()

	projects, err := source.GetAll(ctx)
	if err != nil {
		return MigrationResult{}, err
	}

	var result MigrationResult
	for _, project := range projects {
		record := project
		if err := target.CreateWithID(ctx, project.ID, &record); err != nil {
			logger.Error().Err(err).Str("projectID", project.ID).Msg("Failed to migrate project")
			result.Failed++
			continue
		}
		result.Migrated++
	}

	logger.Info().
		Int("migrated", result.Migrated).
		Int("failed", result.Failed).
		Msg("Snapshot migration finished")
	return result, nil
}
