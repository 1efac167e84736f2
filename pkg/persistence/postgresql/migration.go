package postgresql

// migrations returns the ordered schema migrations for the checklist store.
// Template sections and checklist responses are stored as jsonb documents:
// the engine always reads and writes them whole.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS templates (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				version VARCHAR(64) NOT NULL DEFAULT '',
				resource_type VARCHAR(255) NOT NULL DEFAULT '',
				sections JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX IF NOT EXISTS idx_templates_name ON templates (name) WHERE deleted_at IS NULL;

			CREATE TABLE IF NOT EXISTS checklists (
				id VARCHAR(255) PRIMARY KEY,
				template_id VARCHAR(255) NOT NULL,
				responses JSONB NOT NULL DEFAULT '{}',
				notes JSONB NOT NULL DEFAULT '{}',
				validation_summary JSONB,
				total_items INTEGER NOT NULL DEFAULT 0,
				completed_items INTEGER NOT NULL DEFAULT 0,
				correct_count INTEGER NOT NULL DEFAULT 0,
				warning_count INTEGER NOT NULL DEFAULT 0,
				error_count INTEGER NOT NULL DEFAULT 0,
				percent_complete INTEGER NOT NULL DEFAULT 0,
				state VARCHAR(32) NOT NULL DEFAULT 'in_progress',
				requires_review BOOLEAN NOT NULL DEFAULT FALSE,
				effective_date TIMESTAMP WITH TIME ZONE,
				created_by VARCHAR(255) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_checklists_template_id ON checklists (template_id);
			CREATE INDEX IF NOT EXISTS idx_checklists_state ON checklists (state);
		`,
	}
}
