package models

// WordPair holds the two opposing secret words of a session
type WordPair struct {
	Majority string `json:"majority"`
	Minority string `json:"minority"`
}

// WordFor returns the secret word handed to the given role
func (w WordPair) WordFor(role Role) string {
	switch role {
	case RoleMajority:
		return w.Majority
	case RoleMinority:
		return w.Minority
	}
	return ""
}
