package leave

import "time"

// Overlaps reports whether two closed date intervals intersect:
// a.start <= b.end && a.end >= b.start.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// HasBlockingOverlap checks a candidate range against the requester's
// existing requests. Only requests in a blocking status occupy their
// range; rejected or cancelled requests never block. Pure predicate.
func HasBlockingOverlap(candStart, candEnd time.Time, existing []LeaveRequest) bool {
	for _, req := range existing {
		if !isBlocking(req.Status) {
			continue
		}
		if Overlaps(req.StartDate, req.EndDate, candStart, candEnd) {
			return true
		}
	}
	return false
}

func isBlocking(status string) bool {
	switch status {
	case StatusPendingManager, StatusPendingHR, StatusApproved:
		return true
	}
	return false
}
