package connection

// ConnectionRequest represents the request body for expressing interest.
type ConnectionRequest struct {
	EventID    string `json:"event_id"`
	BusinessID string `json:"business_id"`
	Notes      string `json:"notes"`
}

// ResolveRequest carries the NGO's decision on a pending connection.
type ResolveRequest struct {
	Decision string `json:"decision"` // "accepted" or "rejected"
}
