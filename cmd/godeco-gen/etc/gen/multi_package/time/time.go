package time

// Zone names a time zone.
type Zone string
