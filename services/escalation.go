package services

import "github.com/civicgridhq/civicgrid/models"

// NextStatus is the escalation decision: given a report's current status, its
// vote tallies and the configured threshold, it returns the status the report
// should move to and whether a transition is due. It has no side effects;
// persisting the transition is the caller's job via the report store's CAS.
//
// Only pending reports move on votes. Opposition never reverts an escalation
// and no other status is vote-sensitive.
func NextStatus(current models.ReportStatus, support, opposition, threshold int) (models.ReportStatus, bool) {
	switch current {
	case models.StatusPending:
		if threshold > 0 && support-opposition >= threshold {
			return models.StatusEscalated, true
		}
	case models.StatusEscalated,
		models.StatusAssigned,
		models.StatusWorking,
		models.StatusPendingConfirmation,
		models.StatusResolved:
		// votes never move these
	}
	return current, false
}
