package models

import "time"

type User struct {
	BaseModel

	Title           string `gorm:"size:50"`
	FirstName       string `gorm:"size:100"`
	LastName        string `gorm:"size:100"`
	Gender          string `gorm:"size:50"`
	Email           string `gorm:"size:252;uniqueIndex;not null"`
	PasswordHash    string `gorm:"size:1000;not null"`
	IsAdmin         bool   `gorm:"not null;default:false"`
	RememberToken   string `gorm:"size:255"`
	EmailVerifiedAt *time.Time

	// Relationships
	Carts  []Cart  `gorm:"foreignKey:UserID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Orders []Order `gorm:"foreignKey:UserID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// UserPatch carries the profile fields a principal may change about
// themselves. A nil field is left untouched. Email is the identity key
// tokens are bound to and is not part of it.
type UserPatch struct {
	Title        *string
	FirstName    *string
	LastName     *string
	Gender       *string
	PasswordHash *string
}

func (p UserPatch) Empty() bool {
	return p.Title == nil && p.FirstName == nil && p.LastName == nil &&
		p.Gender == nil && p.PasswordHash == nil
}

// Apply merges the set fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Title != nil {
		u.Title = *p.Title
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}
