package repository

import (
	"context"
	"fmt"
)

const projectsDDL = `
CREATE TABLE IF NOT EXISTS projects (
    id            uuid PRIMARY KEY,
    title         text NOT NULL,
    scenario_id   text NOT NULL,
    diagram_data  jsonb,
    chat_history  jsonb,
    evaluation    jsonb,
    last_modified timestamptz NOT NULL
);
`

// EnsureSchema creates the projects table when it does not exist yet.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, projectsDDL); err != nil {
		return fmt.Errorf("ensure projects schema: %w", err)
	}
	return nil
}
