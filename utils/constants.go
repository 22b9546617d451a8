// File: utils/constants.go
package utils

import "time"

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// AvailableDatesCacheKey is the Redis key for the cached open-dates list.
const AvailableDatesCacheKey = "availability:dates"

// AvailableDatesCacheTTL is the time-to-live for the open-dates cache entry.
const AvailableDatesCacheTTL = 5 * time.Minute
