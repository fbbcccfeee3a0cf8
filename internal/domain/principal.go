package domain

// Principal authenticated caller supplied by the identity provider
type Principal struct {
	UserID  int64
	IsAdmin bool
}

// CanAccess reports whether the principal may act on a booking owned by ownerID
func (p Principal) CanAccess(ownerID int64) bool {
	return p.IsAdmin || p.UserID == ownerID
}
