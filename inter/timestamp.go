package inter

import (
	"time"
)

// Timestamp is a UNIX nanoseconds timestamp.
type Timestamp uint64

// FromUnix converts UNIX seconds to Timestamp.
func FromUnix(t int64) Timestamp {
	return Timestamp(t * int64(time.Second))
}

// Unix returns t as UNIX seconds.
func (t Timestamp) Unix() int64 {
	return int64(t) / int64(time.Second)
}

// Time returns the time.Time representation.
func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t))
}

func (t Timestamp) String() string {
	return t.Time().UTC().Format(time.RFC3339)
}
