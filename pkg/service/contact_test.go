package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bookvault/bookvault/pkg/db"
	"github.com/bookvault/bookvault/pkg/model"
	"github.com/bookvault/bookvault/pkg/repository"
	"github.com/bookvault/bookvault/pkg/service"
)

func newContactService(t *testing.T) (*service.ContactService, repository.Repository[model.ContactMessage]) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gormDB.AutoMigrate(&model.ContactMessage{}))

	manager := db.NewManagerWithDB(gormDB, nil)
	t.Cleanup(func() { manager.Close() })

	repo := repository.NewGenericRepository[model.ContactMessage](manager, model.ContactMessageSchema())
	return service.NewContactService(repo, nil), repo
}

func TestCreateContactMessageStampsSenderAsActor(t *testing.T) {
	svc, repo := newContactService(t)
	ctx := context.Background()

	msg, err := svc.CreateContactMessage(ctx, service.ContactMessageInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "I would like to know more about your catalog.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Jane Doe | jane@example.com", msg.CreatedBy)

	stored, err := repo.GetSingleByID(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "I would like to know more about your catalog.", stored.Message)
}
