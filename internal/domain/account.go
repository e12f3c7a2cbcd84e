package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account is the identity record a credential is issued for.
type Account struct {
	ID    primitive.ObjectID `bson:"_id"`
	Admin int                `bson:"admin"`
}

// IsAdmin reports whether the privilege flag grants the admin role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Admin == 1
}
