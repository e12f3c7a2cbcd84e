package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quoteshare/quote-service/internal/domain"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize applies the ownership-or-admin policy to a write on a record owned
// by ownerID. Ids are compared by value: the requester id is parsed into an
// ObjectID and compared byte for byte.
func Authorize(requesterID string, role domain.Role, ownerID primitive.ObjectID) Decision {
	switch role {
	case domain.RoleAdmin:
		return Allow
	case domain.RoleUser:
		if sameAccount(requesterID, ownerID) {
			return Allow
		}
		return Deny
	default:
		return Deny
	}
}

func sameAccount(requesterID string, ownerID primitive.ObjectID) bool {
	id, err := primitive.ObjectIDFromHex(requesterID)
	if err != nil {
		return false
	}
	return id == ownerID
}
