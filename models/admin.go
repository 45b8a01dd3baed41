package models

// AdminScope is what an admin credential grants: every venue for a super
// admin, otherwise the listed venue ids.
type AdminScope struct {
	SuperAdmin bool  `json:"superAdmin"`
	VenueIDs   []int `json:"allowedVenueIds"`
}

func (a *AdminScope) CanEdit(venueID int) bool {
	if a == nil {
		return false
	}
	if a.SuperAdmin {
		return true
	}
	for _, id := range a.VenueIDs {
		if id == venueID {
			return true
		}
	}
	return false
}
