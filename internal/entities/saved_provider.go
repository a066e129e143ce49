package entities

// SaveResult is returned by both save and unsave. For a duplicate save the
// existing bookmark is reported instead of an error; for an unsave of a
// bookmark that never existed Removed stays false.
type SaveResult struct {
	SavedID        int  `json:"saved_id,omitempty"`
	AlreadyExisted bool `json:"already_existed,omitempty"`
	Removed        bool `json:"removed,omitempty"`
}

type SaveStatus struct {
	IsSaved bool `json:"is_saved"`
	SavedID int  `json:"saved_id,omitempty"`
}
