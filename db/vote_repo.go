package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

type VoteRepository interface {
	// CastVote inserts the vote and bumps the matching report counter in one
	// transaction, returning the report with fresh tallies. The unique index
	// on (report_id, voter_id) makes the duplicate check atomic; a violation
	// surfaces as errs.ErrDuplicateVote. The counter bump is a SQL increment,
	// not a read-modify-write, so concurrent votes from distinct voters all
	// land.
	CastVote(vote *models.Vote) (*models.Report, error)
	GetVote(reportID uuid.UUID, voterID uint) (*models.Vote, error)
	CountVotes(reportID uuid.UUID) (support int64, opposition int64, err error)
}

type voteRepo struct {
	DB *gorm.DB
}

func NewVoteRepo(db *GormDB) VoteRepository {
	return &voteRepo{db.DB}
}

func (r *voteRepo) CastVote(vote *models.Vote) (*models.Report, error) {
	var report models.Report
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.ErrDuplicateVote
			}
			return errors.Wrap(err, "recording vote")
		}

		column := "support_count"
		if vote.VoteType == models.VoteOppose {
			column = "opposition_count"
		}
		res := tx.Model(&models.Report{}).
			Where("id = ?", vote.ReportID).
			Update(column, gorm.Expr(column+" + 1"))
		if res.Error != nil {
			return errors.Wrap(res.Error, "updating vote counter")
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}

		return tx.First(&report, "id = ?", vote.ReportID).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *voteRepo) GetVote(reportID uuid.UUID, voterID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.DB.First(&vote, "report_id = ? AND voter_id = ?", reportID, voterID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "fetching vote")
	}
	return &vote, nil
}

func (r *voteRepo) CountVotes(reportID uuid.UUID) (int64, int64, error) {
	var support, opposition int64
	err := r.DB.Model(&models.Vote{}).
		Where("report_id = ? AND vote_type = ?", reportID, models.VoteSupport).
		Count(&support).Error
	if err != nil {
		return 0, 0, errors.Wrap(err, "counting support votes")
	}
	err = r.DB.Model(&models.Vote{}).
		Where("report_id = ? AND vote_type = ?", reportID, models.VoteOppose).
		Count(&opposition).Error
	if err != nil {
		return 0, 0, errors.Wrap(err, "counting opposition votes")
	}
	return support, opposition, nil
}

// isUniqueViolation covers both gorm's translated error and the raw postgres
// duplicate-key code, since TranslateError only applies to the live driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
