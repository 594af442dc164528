package models

// Snapshot is the persistence envelope of the in-memory post store.
type Snapshot struct {
	Version  int                     `json:"version"`
	Profiles []*Profile              `json:"profiles"`
	Contacts []*Contact              `json:"contacts"`
	Posts    []*Post                 `json:"posts"`
	Terms    []*Term                 `json:"terms"`
	Settings map[int64]*UserSettings `json:"settings,omitempty"`
}

const SnapshotVersion = 1
