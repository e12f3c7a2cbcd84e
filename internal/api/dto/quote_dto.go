package dto

// UpdateQuoteRequest payload for PUT /update. Only "_id" is required; absent
// fields are left untouched.
type UpdateQuoteRequest struct {
	ID        string  `json:"_id"`
	Author    *string `json:"author,omitempty"`
	Quote     *string `json:"quote,omitempty"`
	Bookmarks *int    `json:"bookmarks,omitempty"`
	Shares    *int    `json:"shares,omitempty"`
	Flags     *int    `json:"flags,omitempty"`
}

// UpdateQuoteResponse acknowledges a successful update.
type UpdateQuoteResponse struct {
	Response string `json:"Response"`
}

// CredentialResponse describes an issued credential.
type CredentialResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
}
