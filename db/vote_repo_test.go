package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

func TestVoteRepo_CastVote_InsertsAndBumpsCounter(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewVoteRepo(gdb)
	reportID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "reports" SET "support_count"=support_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "support_count", "opposition_count"}).
			AddRow(reportID.String(), "pending", 3, 1))
	mock.ExpectCommit()

	report, err := repo.CastVote(&models.Vote{ReportID: reportID, VoterID: 5, VoteType: models.VoteSupport})
	require.NoError(t, err)
	assert.Equal(t, 3, report.SupportCount)
	assert.Equal(t, 1, report.OppositionCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_CastVote_OppositionBumpsOtherColumn(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewVoteRepo(gdb)
	reportID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec(`UPDATE "reports" SET "opposition_count"=opposition_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "opposition_count"}).
			AddRow(reportID.String(), "pending", 2))
	mock.ExpectCommit()

	report, err := repo.CastVote(&models.Vote{ReportID: reportID, VoterID: 5, VoteType: models.VoteOppose})
	require.NoError(t, err)
	assert.Equal(t, 2, report.OppositionCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_CastVote_DuplicateRollsBack(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewVoteRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "votes"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_votes_report_voter"})
	mock.ExpectRollback()

	_, err := repo.CastVote(&models.Vote{ReportID: uuid.New(), VoterID: 5, VoteType: models.VoteSupport})
	require.ErrorIs(t, err, errs.ErrDuplicateVote)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_CastVote_MissingReportRollsBack(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewVoteRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`UPDATE "reports" SET "support_count"=support_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.CastVote(&models.Vote{ReportID: uuid.New(), VoterID: 5, VoteType: models.VoteSupport})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_GetVote_NotFound(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	repo := NewVoteRepo(gdb)

	mock.ExpectQuery(`SELECT \* FROM "votes" WHERE report_id = \$1 AND voter_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetVote(uuid.New(), 5)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
