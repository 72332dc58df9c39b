package models

// Dependent links a holder user (UserID) to a family member user
// (DependentID). The link stays unconfirmed until the dependent confirms it.
type Dependent struct {
	UserID      uint64 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	DependentID uint64 `gorm:"primaryKey;autoIncrement:false" json:"dependent_id"`
	Confirmed   bool   `gorm:"not null;default:false" json:"confirmed"`

	Holder        *User `gorm:"foreignKey:UserID" json:"-"`
	DependentUser *User `gorm:"foreignKey:DependentID" json:"-"`
}

func (Dependent) TableName() string {
	return "dependents"
}

type DependentCreateInput struct {
	UserID      uint64 `json:"user_id" binding:"required"`
	DependentID uint64 `json:"dependent_id" binding:"required"`
	Confirmed   bool   `json:"confirmed"`
}

type DependentUpdateInput struct {
	Confirmed *bool `json:"confirmed" binding:"required"`
}

type DependentPatchInput struct {
	Confirmed *bool `json:"confirmed"`
}

// DependentDetails is a dependent link enriched with the dependent's
// profile and the status of their latest form.
type DependentDetails struct {
	UserID      uint64 `json:"user_id"`
	DependentID uint64 `json:"dependent_id"`
	Confirmed   bool   `json:"confirmed"`
	FullName    string `json:"full_name"`
	BirthDate   string `json:"birth_date"`
	Email       string `json:"email"`
	FormStatus  string `json:"form_status"`
}

// ConfirmRequestInput is the body of POST /user/dependents/confirm
type ConfirmRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}
