package services

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civicgridhq/civicgrid/db"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

// In-memory doubles for the storage interfaces. The vote fake mirrors the
// real repo's atomicity: duplicate detection and counter bumps happen under
// one lock, so concurrency tests exercise the same guarantees the unique
// index and SQL increments give in production.

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*models.Report
}

func newFakeReportRepo(reports ...*models.Report) *fakeReportRepo {
	r := &fakeReportRepo{reports: make(map[uuid.UUID]*models.Report)}
	for _, report := range reports {
		cp := *report
		r.reports[report.ID] = &cp
	}
	return r
}

func (r *fakeReportRepo) CreateReport(report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *report
	cp.CreatedAt = time.Now()
	r.reports[report.ID] = &cp
	return nil
}

func (r *fakeReportRepo) GetReportByID(id uuid.UUID) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *report
	return &cp, nil
}

func (r *fakeReportRepo) ListReports(filter db.ReportFilter) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Report
	for _, report := range r.reports {
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if filter.Type != "" && report.Type != filter.Type {
			continue
		}
		out = append(out, *report)
	}
	return out, nil
}

func (r *fakeReportRepo) UpdateStatus(id uuid.UUID, from, to models.ReportStatus) error {
	if !from.CanTransition(to) {
		return errs.ErrInvalidState
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok || report.Status != from {
		return errs.ErrConflict
	}
	report.Status = to
	return nil
}

func (r *fakeReportRepo) AssignWorker(id uuid.UUID, workerID uint, from, to models.ReportStatus) error {
	if !from.CanTransition(to) {
		return errs.ErrInvalidState
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok || report.Status != from {
		return errs.ErrConflict
	}
	report.Status = to
	report.AssignedWorkerID = &workerID
	return nil
}

func (r *fakeReportRepo) AttachResolutionProof(id uuid.UUID, imageURL, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok || (report.Status != models.StatusAssigned && report.Status != models.StatusWorking) {
		return errs.ErrConflict
	}
	report.Status = models.StatusWorking
	report.ResolvedImageURL = imageURL
	report.ResolvedNotes = notes
	return nil
}

func (r *fakeReportRepo) ListAssignedTo(workerID uint, statuses []models.ReportStatus) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	allowed := make(map[models.ReportStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []models.Report
	for _, report := range r.reports {
		if report.AssignedWorkerID != nil && *report.AssignedWorkerID == workerID && allowed[report.Status] {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) GetStatusCounts() ([]models.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tally := make(map[models.ReportStatus]int64)
	for _, report := range r.reports {
		tally[report.Status]++
	}
	var out []models.StatusCount
	for status, count := range tally {
		out = append(out, models.StatusCount{Status: status, Count: count})
	}
	return out, nil
}

func (r *fakeReportRepo) GetTypeCounts() ([]models.TypeCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tally := make(map[models.ReportType]int64)
	for _, report := range r.reports {
		tally[report.Type]++
	}
	var out []models.TypeCount
	for reportType, count := range tally {
		out = append(out, models.TypeCount{Type: reportType, Count: count})
	}
	return out, nil
}

type voteKey struct {
	reportID uuid.UUID
	voterID  uint
}

type fakeVoteRepo struct {
	mu      sync.Mutex
	votes   map[voteKey]models.Vote
	reports *fakeReportRepo
}

func newFakeVoteRepo(reports *fakeReportRepo) *fakeVoteRepo {
	return &fakeVoteRepo{
		votes:   make(map[voteKey]models.Vote),
		reports: reports,
	}
}

func (r *fakeVoteRepo) CastVote(vote *models.Vote) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey{reportID: vote.ReportID, voterID: vote.VoterID}
	if _, exists := r.votes[key]; exists {
		return nil, errs.ErrDuplicateVote
	}

	r.reports.mu.Lock()
	defer r.reports.mu.Unlock()
	report, ok := r.reports.reports[vote.ReportID]
	if !ok {
		return nil, errs.ErrNotFound
	}

	vote.CreatedAt = time.Now()
	r.votes[key] = *vote
	if vote.VoteType == models.VoteOppose {
		report.OppositionCount++
	} else {
		report.SupportCount++
	}

	cp := *report
	return &cp, nil
}

func (r *fakeVoteRepo) GetVote(reportID uuid.UUID, voterID uint) (*models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vote, ok := r.votes[voteKey{reportID: reportID, voterID: voterID}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &vote, nil
}

func (r *fakeVoteRepo) CountVotes(reportID uuid.UUID) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var support, opposition int64
	for key, vote := range r.votes {
		if key.reportID != reportID {
			continue
		}
		if vote.VoteType == models.VoteOppose {
			opposition++
		} else {
			support++
		}
	}
	return support, opposition, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, user := range users {
		r.users[user.ID] = user
	}
	return r
}

func (r *fakeUserRepo) FindUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) UpdateWorkerLocation(ctx context.Context, workerID uint, lat, lng float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[workerID]
	if !ok {
		return errs.ErrNotFound
	}
	now := time.Now()
	user.LastLatitude = &lat
	user.LastLongitude = &lng
	user.LastSeenAt = &now
	return nil
}

func (r *fakeUserRepo) ListWorkersWithLocation() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, user := range r.users {
		if user.Role.Name == models.RoleWorker && user.LastLatitude != nil {
			out = append(out, *user)
		}
	}
	return out, nil
}

type notifyEvent struct {
	userID   uint
	kind     models.NotificationKind
	reportID *uuid.UUID
	message  string
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifyEvent
}

func (n *fakeNotifier) Emit(userID uint, message string, kind models.NotificationKind, reportID *uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifyEvent{userID: userID, kind: kind, reportID: reportID, message: message})
}

func (n *fakeNotifier) ListForUser(userID uint) ([]models.Notification, error) {
	return nil, nil
}

func (n *fakeNotifier) MarkRead(userID, notificationID uint) error {
	return nil
}

func (n *fakeNotifier) countKind(kind models.NotificationKind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, e := range n.events {
		if e.kind == kind {
			count++
		}
	}
	return count
}

type fakeMedia struct {
	url string
	err error
}

func (m *fakeMedia) UploadProofPhoto(fileHeader *multipart.FileHeader, reportID uuid.UUID) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}
