package orders

import (
	"fmt"
	"time"
)

// newOrderRef derives an order reference from the booking time: "TRV-"
// plus the last six digits of the unix-millisecond timestamp. Two bookings
// inside the same millisecond would collide, so a numeric suffix is
// appended until the reference is free among existing orders.
func newOrderRef(now time.Time, taken func(string) bool) string {
	ref := fmt.Sprintf("TRV-%06d", now.UnixMilli()%1_000_000)
	if !taken(ref) {
		return ref
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", ref, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
