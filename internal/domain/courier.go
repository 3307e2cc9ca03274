package domain

// Courier represents a delivery person. Read-mostly in this subsystem:
// dispatch only consumes availability, account status and current location.
type Courier struct {
	ID        string
	UserID    string
	FullName  string
	Available bool
	Status    CourierStatus
	Location  *Point
}

// Offerable reports whether the courier can receive offers.
func (c *Courier) Offerable() bool {
	return c.Available && c.Status == CourierActive
}

// Candidate is a courier scored by distance to a pickup point.
type Candidate struct {
	CourierID  string
	DistanceKm float64
}
