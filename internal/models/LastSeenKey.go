package models

import "strconv"

// LastSeenKey identifies a (profile, viewer) pair. Absent identities are 0
// and still part of the key.
type LastSeenKey struct {
	OwnerID         int64
	LocalUserID     int64
	RemoteContactID int64
}

func NewLastSeenKey(profile *Profile, viewer Viewer) LastSeenKey {
	return LastSeenKey{
		OwnerID:         profile.OwnerID,
		LocalUserID:     viewer.LocalUserID,
		RemoteContactID: viewer.RemoteContactID,
	}
}

func (k LastSeenKey) String() string {
	return "profile:" + strconv.FormatInt(k.OwnerID, 10) + ":" +
		strconv.FormatInt(k.LocalUserID, 10) + ":" +
		strconv.FormatInt(k.RemoteContactID, 10)
}
