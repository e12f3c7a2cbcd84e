package domain

import "time"

// Identity is the requester derived from a verified credential.
type Identity struct {
	SubjectID string
	Role      Role
}

// Credential is a signed token together with the role it encodes.
type Credential struct {
	Token     string
	Role      Role
	ExpiresAt time.Time
}
