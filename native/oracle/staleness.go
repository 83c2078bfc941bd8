package oracle

// IsStale reports whether the record's age exceeds the allowed window. The
// check is a pure function of the supplied clock reading and is monotonic in
// now: once stale, a record stays stale until a fresh update lands. Redemption
// consults this before any value conversion; a stale price is a hard lock,
// never a silently reused old value.
func IsStale(record *PriceRecord, now, maxAgeSeconds int64) bool {
	if record == nil || record.UnitPriceUSD == nil || record.UnitPriceUSD.Sign() <= 0 {
		return true
	}
	return now-record.LastUpdate > maxAgeSeconds
}
