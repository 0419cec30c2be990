package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgridhq/civicgrid/config"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
)

const (
	workerID  uint = 7
	citizenID uint = 8
)

func newAssignmentFixture(t *testing.T, reports ...*models.Report) (AssignmentService, *fakeReportRepo, *fakeNotifier) {
	t.Helper()
	reportRepo := newFakeReportRepo(reports...)
	userRepo := newFakeUserRepo(
		&models.User{Model: models.Model{ID: workerID}, Fullname: "Wanda Fieldsworth", Role: models.Role{Name: models.RoleWorker}},
		&models.User{Model: models.Model{ID: citizenID}, Fullname: "Carl Reyes", Role: models.Role{Name: models.RoleCitizen}},
	)
	notifier := &fakeNotifier{}
	svc := NewAssignmentService(reportRepo, userRepo, notifier, &config.Config{EscalationThreshold: 3})
	return svc, reportRepo, notifier
}

func newEscalatedReport() *models.Report {
	report := newPendingReport()
	report.Status = models.StatusEscalated
	report.SupportCount = 3
	return report
}

func TestAssign_RequiresEscalatedStatus(t *testing.T) {
	report := newPendingReport()
	svc, reportRepo, _ := newAssignmentFixture(t, report)

	_, err := svc.Assign(report.ID, workerID)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	stored, err := reportRepo.GetReportByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.AssignedWorkerID)
}

func TestAssign_RejectsNonWorker(t *testing.T) {
	report := newEscalatedReport()
	svc, _, _ := newAssignmentFixture(t, report)

	_, err := svc.Assign(report.ID, citizenID)
	require.Error(t, err)
	assert.Equal(t, 400, errs.StatusFor(err))
}

func TestAssign_RejectsUnknownWorker(t *testing.T) {
	report := newEscalatedReport()
	svc, _, _ := newAssignmentFixture(t, report)

	_, err := svc.Assign(report.ID, 999)
	require.Error(t, err)
	assert.Equal(t, 400, errs.StatusFor(err))
}

func TestAssign_BindsWorkerAndNotifies(t *testing.T) {
	report := newEscalatedReport()
	svc, reportRepo, notifier := newAssignmentFixture(t, report)

	assigned, err := svc.Assign(report.ID, workerID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedWorkerID)
	assert.Equal(t, workerID, *assigned.AssignedWorkerID)

	stored, err := reportRepo.GetReportByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, stored.Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, workerID, notifier.events[0].userID)
	assert.Equal(t, models.NotifyAssigned, notifier.events[0].kind)

	// One active assignment per report: a second assign finds the report no
	// longer escalated.
	_, err = svc.Assign(report.ID, workerID)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestListAssignedTo_ExcludesResolvedUnlessHistory(t *testing.T) {
	active := newEscalatedReport()
	active.Status = models.StatusWorking
	wid := workerID
	active.AssignedWorkerID = &wid

	done := newEscalatedReport()
	done.ID = uuid.New()
	done.Status = models.StatusResolved
	done.AssignedWorkerID = &wid

	svc, _, _ := newAssignmentFixture(t, active, done)

	queue, err := svc.ListAssignedTo(workerID, false)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, active.ID, queue[0].ID)

	history, err := svc.ListAssignedTo(workerID, true)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
