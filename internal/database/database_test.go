package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/scrum-board-api/internal/config"
	"github.com/yukikurage/scrum-board-api/internal/models"
	"github.com/yukikurage/scrum-board-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBName: "scrum"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateDatabase_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, MigrateDatabase(db))
	require.NoError(t, MigrateDatabase(db))

	assert.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_sprint_status"))
	assert.True(t, db.Migrator().HasTable(&models.Token{}))
}

func TestPaginate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Sprint{}))

	for i := 1; i <= 5; i++ {
		require.NoError(t, db.Create(&models.Sprint{Name: "s", End: models.NewDate(2026, 1, i)}).Error)
	}

	var sprints []models.Sprint
	err = db.Order("id").Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).Find(&sprints).Error
	require.NoError(t, err)

	require.Len(t, sprints, 2)
	assert.Equal(t, uint64(3), sprints[0].ID)
}
