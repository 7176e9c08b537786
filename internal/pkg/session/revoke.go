package session

import (
	"strconv"
	"time"

	"github.com/rentcourt/ftpr/internal/pkg/cache"
)

const revokedKeyPrefix = "session:revoked:"

// revokeTTL outlives the longest session so a marker is never dropped
// while a session it covers can still be presented.
const revokeTTL = 9 * time.Hour

// RevokeUser invalidates every session userID signed in before now.
func RevokeUser(userID string) error {
	return cache.Set(revokedKeyPrefix+userID, time.Now().UnixMicro(), revokeTTL)
}

// IsRevoked reports whether a session that signed in at signedInAt (unix
// microseconds) was revoked. Lookup failures count as revoked.
func IsRevoked(userID string, signedInAt int64) (bool, error) {
	raw, err := cache.Get(revokedKeyPrefix + userID)
	if cache.IsMiss(err) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	revokedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true, err
	}
	return signedInAt <= revokedAt, nil
}
