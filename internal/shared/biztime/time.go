// Package biztime holds the business timezone. Storage uses UTC; the business
// timezone is only applied where an external party expects local wall-clock
// time, such as the VNPay vnp_CreateDate and vnp_PayDate fields.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the timezone VNPay interprets timestamps in.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

var (
	bizLocation   *time.Location
	bizLocationMu sync.RWMutex
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}

	bizLocationMu.Lock()
	bizLocation = loc
	bizLocationMu.Unlock()
	return nil
}

// Location returns the business timezone, initialising the default on first use.
func Location() *time.Location {
	bizLocationMu.RLock()
	loc := bizLocation
	bizLocationMu.RUnlock()
	if loc != nil {
		return loc
	}

	if err := Init(""); err != nil {
		// tzdata missing; Vietnam has no DST so a fixed zone is exact.
		fixed := time.FixedZone("ICT", 7*60*60)
		bizLocationMu.Lock()
		bizLocation = fixed
		bizLocationMu.Unlock()
		return fixed
	}
	return Location()
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// InBiz converts t to the business timezone.
func InBiz(t time.Time) time.Time {
	return t.In(Location())
}
