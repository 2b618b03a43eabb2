package appointment

import (
	"math"
	"time"

	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

// ComputeDelays derives, for one barber's day, the minutes each downstream
// appointment is expected to start late because of an upstream overrun.
//
// aps must be sorted by ScheduledAt ascending. Finalized appointments are
// skipped: their impact was reconciled when they closed. An in-progress
// appointment contributes overflow = max(0, round(elapsed - predicted)) and
// gets no entry itself. The running delay is a max, not a sum: only one
// appointment runs at a time per barber, so the current overflow is a
// ceiling on how late the queue is.
//
// Pure function, recomputed on every read; the result is never stored.
func ComputeDelays(aps []models.Appointment, now time.Time) map[uint]int {
	delays := make(map[uint]int)
	cumulative := 0

	for i := range aps {
		ap := &aps[i]
		st := Status(ap.Status)

		if st.IsFinalized() {
			continue
		}

		if st == StatusConfirmed && ap.StartedAt != nil {
			elapsed := now.Sub(*ap.StartedAt).Minutes()
			overflow := int(math.Round(elapsed - float64(ap.DurationMin)))
			if overflow < 0 {
				overflow = 0
			}
			if overflow > cumulative {
				cumulative = overflow
			}
			continue
		}

		if cumulative > 0 {
			delays[ap.ID] = cumulative
		}
	}

	return delays
}
