package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Quote is the stored quote document. Its ID doubles as the owner reference.
type Quote struct {
	ID        primitive.ObjectID `bson:"_id"`
	Author    string             `bson:"author"`
	Text      string             `bson:"quote"`
	Bookmarks int                `bson:"bookmarks"`
	Shares    int                `bson:"shares"`
	Flags     int                `bson:"flags"`
}

// QuoteUpdate describes a partial update. Nil fields are left untouched.
type QuoteUpdate struct {
	ID        primitive.ObjectID
	Author    *string
	Text      *string
	Bookmarks *int
	Shares    *int
	Flags     *int
}

// OwnerID returns the account the quote is attributed to.
func (u QuoteUpdate) OwnerID() primitive.ObjectID {
	return u.ID
}

// Fields lists the stored field names present in the update, in a stable order.
func (u QuoteUpdate) Fields() []string {
	fields := make([]string, 0, 5)
	if u.Author != nil {
		fields = append(fields, "author")
	}
	if u.Text != nil {
		fields = append(fields, "quote")
	}
	if u.Bookmarks != nil {
		fields = append(fields, "bookmarks")
	}
	if u.Shares != nil {
		fields = append(fields, "shares")
	}
	if u.Flags != nil {
		fields = append(fields, "flags")
	}
	return fields
}

// IsEmpty reports whether no mutable field is present.
func (u QuoteUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}
