package models

import "gorm.io/gorm"

// Ownership restricts repository calls to the resources of one user.
//
// The zero value is Unscoped: resources are addressed by ID only and
// any authenticated user can change them.
type Ownership struct {
	userID  uint
	enforce bool
}

// Unscoped does not restrict access by owner.
var Unscoped = Ownership{}

// OwnedBy restricts access to resources owned by the user.
func OwnedBy(userID uint) Ownership {
	return Ownership{userID: userID, enforce: true}
}

// Enforced reports if the ownership restricts access.
func (o Ownership) Enforced() bool {
	return o.enforce
}

// envelopes scopes a query on the envelopes table.
func (o Ownership) envelopes(db *gorm.DB) *gorm.DB {
	if !o.enforce {
		return db
	}

	return db.Where("envelopes.user_id = ?", o.userID)
}

// expenses scopes a query on the expenses table to expenses in
// envelopes of the owner.
func (o Ownership) expenses(db *gorm.DB) *gorm.DB {
	if !o.enforce {
		return db
	}

	owned := db.Session(&gorm.Session{NewDB: true}).
		Model(&Envelope{}).
		Select("id").
		Where("user_id = ?", o.userID)

	return db.Where("expenses.envelope_id IN (?)", owned)
}
