package models

// Doctor is keyed by the user it belongs to; a user has at most one.
type Doctor struct {
	UserID    uint64 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CRM       string `gorm:"column:crm;size:50;not null" json:"crm"` // medical license number
	Specialty string `gorm:"size:255;not null" json:"specialty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

type DoctorCreateInput struct {
	UserID    uint64 `json:"user_id" binding:"required"`
	CRM       string `json:"crm" binding:"required,max=50"`
	Specialty string `json:"specialty" binding:"required,max=255"`
}

type DoctorUpdateInput struct {
	CRM       string `json:"crm" binding:"required,max=50"`
	Specialty string `json:"specialty" binding:"required,max=255"`
}

func (in DoctorUpdateInput) Apply(d *Doctor) {
	d.CRM = in.CRM
	d.Specialty = in.Specialty
}

type DoctorPatchInput struct {
	CRM       *string `json:"crm" binding:"omitempty,max=50"`
	Specialty *string `json:"specialty" binding:"omitempty,max=255"`
}

func (in DoctorPatchInput) Apply(d *Doctor) {
	if in.CRM != nil {
		d.CRM = *in.CRM
	}
	if in.Specialty != nil {
		d.Specialty = *in.Specialty
	}
}

// DoctorSummary is the doctor part of a UserDetails view.
type DoctorSummary struct {
	CRM       string `json:"crm"`
	Specialty string `json:"specialty"`
}

// UserDetails joins a user with its optional doctor record.
type UserDetails struct {
	UserResponse
	Doctor *DoctorSummary `json:"doctor"`
}
