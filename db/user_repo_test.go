package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

func TestUserRepo_FindUserByID(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewUserRepo(gdb)
	roleID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fullname", "role_id"}).
			AddRow(7, "Wanda Fieldsworth", roleID.String()))
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE "roles"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(roleID.String(), models.RoleWorker))

	user, err := repo.FindUserByID(7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.True(t, user.IsWorker())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindUserByID_NotFound(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewUserRepo(gdb)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindUserByID(404)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
