package refnum

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^MCAN-\d{6}-[A-Z0-9]{6}$`)

func TestGenerateFormat(t *testing.T) {
	ref := Generate()
	require.Regexp(t, referencePattern, ref)
}

func TestGenerateUsesClockDigits(t *testing.T) {
	now := time.UnixMilli(1738300772123)
	ref := generateAt(now)
	require.Regexp(t, referencePattern, ref)
	assert.Equal(t, "772123", ref[5:11])
}

func TestGenerateCollisionResistance(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref := Generate()
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference generated: %s", ref)
		}
		seen[ref] = struct{}{}
	}
}
