package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func TestCreateUser(t *testing.T) {
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.CreateUser(context.Background(), CreateUserDTO{
		Username:  "casey",
		FirstName: "Casey",
		LastName:  "Reyes",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, "casey", created.Username)

	loaded, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, loaded.ID)
	require.Equal(t, "Casey", loaded.FirstName)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserDTO{Username: "casey"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserDTO{Username: "casey"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateUserValidation(t *testing.T) {
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserDTO{Username: "   "})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetUserNotFound(t *testing.T) {
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestExists(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	created, err := repo.Create(context.Background(), CreateUserDTO{Username: "dana"})
	require.NoError(t, err)

	ok, err := repo.Exists(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, ok)

	byName, err := repo.FindByUsername(context.Background(), "dana")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
}
