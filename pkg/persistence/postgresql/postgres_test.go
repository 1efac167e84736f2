package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/persistence"
	"github.com/dukex/fleetcheck/pkg/persistence/postgresql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresContainer *postgres.PostgresContainer

func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"checklists", "templates", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("fleetcheck_test"),
			postgres.WithUsername("fleetcheck"),
			postgres.WithPassword("fleetcheck"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDb(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err = p.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return p, ctx
}

func integrationTemplate() *models.Template {
	now := time.Now().UTC().Truncate(time.Millisecond)

	return &models.Template{
		ID:      uuid.New().String(),
		Name:    "Pre-trip inspection",
		Version: "3",
		Sections: []*models.Section{
			{
				ID:    "cabin",
				Title: "Cabin",
				Items: []*models.Item{
					{
						ID:                 "seatbelt",
						Description:        "Seatbelt functional",
						ValidationType:     models.ValidationTypeYesNo,
						ValidationBehavior: models.BehaviorRaisesError,
						Required:           true,
						Config:             &models.ItemConfig{ErrorValues: []string{"no"}},
					},
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTemplateRepository_RoundTrip(t *testing.T) {
	p, ctx := setupTestDB(t)
	repo := p.TemplateRepository()

	template := integrationTemplate()
	require.NoError(t, repo.SaveTemplate(ctx, template))

	loaded, err := repo.TemplateByID(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, template.Name, loaded.Name)
	require.Len(t, loaded.Sections, 1)
	assert.Equal(t, "seatbelt", loaded.Sections[0].Items[0].ID)
	assert.Equal(t, []string{"no"}, loaded.Sections[0].Items[0].Config.ErrorValues)

	byName, err := repo.TemplateByName(ctx, "Pre-trip inspection")
	require.NoError(t, err)
	assert.Equal(t, template.ID, byName.ID)

	require.NoError(t, repo.DeleteTemplate(ctx, template.ID))

	_, err = repo.TemplateByID(ctx, template.ID)
	assert.True(t, persistence.IsTemplateNotFound(err))
}

func TestTemplateRepository_NotFound(t *testing.T) {
	p, ctx := setupTestDB(t)

	_, err := p.TemplateRepository().TemplateByID(ctx, uuid.New().String())
	assert.True(t, persistence.IsTemplateNotFound(err))
}

func TestChecklistRepository_RoundTrip(t *testing.T) {
	p, ctx := setupTestDB(t)
	repo := p.ChecklistRepository()

	now := time.Now().UTC().Truncate(time.Millisecond)
	checklist := &models.Checklist{
		ID:         uuid.New().String(),
		TemplateID: "tpl-1",
		Responses: map[string]*models.Response{
			"seatbelt": {Value: "yes", Timestamp: now},
		},
		Notes:           map[string]string{"cabin": "all good"},
		Summary:         models.NewValidationSummary(),
		TotalItems:      1,
		CompletedItems:  1,
		CorrectCount:    1,
		PercentComplete: 100,
		State:           models.StateInProgress,
		EffectiveDate:   now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	require.NoError(t, repo.SaveChecklist(ctx, checklist))

	loaded, err := repo.ChecklistByID(ctx, checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateInProgress, loaded.State)
	assert.Equal(t, "yes", loaded.Responses["seatbelt"].Value)
	assert.Equal(t, "all good", loaded.Notes["cabin"])
	require.NotNil(t, loaded.Summary)

	byTemplate, err := repo.ChecklistsByTemplate(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Len(t, byTemplate, 1)
}

func TestChecklistRepository_Overwrite(t *testing.T) {
	p, ctx := setupTestDB(t)
	repo := p.ChecklistRepository()

	now := time.Now().UTC().Truncate(time.Millisecond)
	checklist := &models.Checklist{
		ID:            uuid.New().String(),
		TemplateID:    "tpl-1",
		Responses:     map[string]*models.Response{"seatbelt": {Value: "yes", Timestamp: now}},
		State:         models.StateInProgress,
		EffectiveDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	require.NoError(t, repo.SaveChecklist(ctx, checklist))

	checklist.Responses["seatbelt"].Value = "no"
	require.NoError(t, repo.SaveChecklist(ctx, checklist))

	loaded, err := repo.ChecklistByID(ctx, checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, "no", loaded.Responses["seatbelt"].Value)
}

func TestChecklistRepository_FinalizedImmutable(t *testing.T) {
	p, ctx := setupTestDB(t)
	repo := p.ChecklistRepository()

	now := time.Now().UTC().Truncate(time.Millisecond)
	checklist := &models.Checklist{
		ID:            uuid.New().String(),
		TemplateID:    "tpl-1",
		Responses:     map[string]*models.Response{},
		State:         models.StateCompleted,
		EffectiveDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	require.NoError(t, repo.SaveChecklist(ctx, checklist))

	err := repo.SaveChecklist(ctx, checklist)
	require.Error(t, err)
	assert.True(t, persistence.IsChecklistFinalized(err))
}
