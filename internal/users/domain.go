package users

// Primary roles. mRoles may carry any superset of these as capability tags.
const (
	RoleUser       = "user"
	RoleCaptain    = "captain"
	RoleCollegeRep = "college_rep"
	RoleAdmin      = "admin"
	RoleDev        = "dev"
)

// ValidRole reports whether the value is a recognized primary role.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleCaptain, RoleCollegeRep, RoleAdmin, RoleDev:
		return true
	}
	return false
}

// SeasonStats holds per-season prediction results.
type SeasonStats struct {
	Points             int `firestore:"points"`
	CorrectPredictions int `firestore:"correctPredictions"`
}

// User is the authoritative per-user record. Documents are keyed by email;
// the netid is the immutable institution identity it derives from.
type User struct {
	NetID          string                 `firestore:"netid"`
	Email          string                 `firestore:"email"`
	Username       string                 `firestore:"username"`
	College        string                 `firestore:"college"`
	Role           string                 `firestore:"role"`
	MRoles         []string               `firestore:"mRoles"`
	TeamsCaptainOf []string               `firestore:"teamsCaptainOf,omitempty"`
	Points         int                    `firestore:"points"`
	MatchesPlayed  int                    `firestore:"matchesPlayed"`
	Seasons        map[string]SeasonStats `firestore:"seasons,omitempty"`
}
