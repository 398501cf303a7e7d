// Package refnum produces human-readable reference numbers for lodge
// registration submissions.
package refnum

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix identifies the issuing chapter on every reference number.
const Prefix = "MCAN"

// Generate returns a reference in the form MCAN-<6 digits>-<6 alphanumeric>.
// The digit segment is the low-order digits of the current Unix-milli clock
// and the suffix is random; no store is consulted, so uniqueness is only
// collision-resistant here and enforced by the database constraint.
func Generate() string {
	return generateAt(time.Now())
}

func generateAt(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s-%s", Prefix, millis, suffix)
}
