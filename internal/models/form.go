package models

const (
	FormStatusNotStarted = "Not started"
	FormStatusInProgress = "In progress"
	FormStatusFilled     = "Filled"
)

// FormMetrics holds the free-text health answers of a form. Values are kept
// as entered (units included), like the paper questionnaire.
type FormMetrics struct {
	Weight                   string `gorm:"size:255" json:"weight" binding:"omitempty,max=255"`
	Height                   string `gorm:"size:255" json:"height" binding:"omitempty,max=255"`
	BMI                      string `gorm:"column:bmi;size:255" json:"bmi" binding:"omitempty,max=255"`
	BloodType                string `gorm:"size:255" json:"blood_type" binding:"omitempty,max=255"`
	AbdominalCircumference   string `gorm:"size:255" json:"abdominal_circumference" binding:"omitempty,max=255"`
	Allergies                string `gorm:"size:255" json:"allergies" binding:"omitempty,max=255"`
	Diseases                 string `gorm:"size:255" json:"diseases" binding:"omitempty,max=255"`
	Medications              string `gorm:"size:255" json:"medications" binding:"omitempty,max=255"`
	FamilyHistory            string `gorm:"size:255" json:"family_history" binding:"omitempty,max=255"`
	ImportantNotes           string `gorm:"size:255" json:"important_notes" binding:"omitempty,max=255"`
	ImagesReports            string `gorm:"size:255" json:"images_reports" binding:"omitempty,max=255"`
	LatestRedBloodCell       string `gorm:"size:255" json:"latest_red_blood_cell" binding:"omitempty,max=255"`
	LatestHemoglobin         string `gorm:"size:255" json:"latest_hemoglobin" binding:"omitempty,max=255"`
	LatestHematocrit         string `gorm:"size:255" json:"latest_hematocrit" binding:"omitempty,max=255"`
	LatestGlycatedHemoglobin string `gorm:"size:255" json:"latest_glycated_hemoglobin" binding:"omitempty,max=255"`
	LatestAST                string `gorm:"column:latest_ast;size:255" json:"latest_ast" binding:"omitempty,max=255"`
	LatestALT                string `gorm:"column:latest_alt;size:255" json:"latest_alt" binding:"omitempty,max=255"`
	LatestUrea               string `gorm:"size:255" json:"latest_urea" binding:"omitempty,max=255"`
	LatestCreatinine         string `gorm:"size:255" json:"latest_creatinine" binding:"omitempty,max=255"`
}

type Form struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	FormMetrics
	FormStatus string `gorm:"size:20;not null;default:'Not started'" json:"form_status"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Form) TableName() string {
	return "forms"
}

type FormCreateInput struct {
	UserID uint64 `json:"user_id" binding:"required"`
	FormMetrics
	FormStatus string `json:"form_status" binding:"omitempty,oneof='Not started' 'In progress' Filled"`
}

// FormUpdateInput replaces every answer; omitted answers become empty.
type FormUpdateInput struct {
	FormMetrics
	FormStatus string `json:"form_status" binding:"required,oneof='Not started' 'In progress' Filled"`
}

func (in FormUpdateInput) Apply(f *Form) {
	f.FormMetrics = in.FormMetrics
	f.FormStatus = in.FormStatus
}

type FormPatchInput struct {
	Weight                   *string `json:"weight" binding:"omitempty,max=255"`
	Height                   *string `json:"height" binding:"omitempty,max=255"`
	BMI                      *string `json:"bmi" binding:"omitempty,max=255"`
	BloodType                *string `json:"blood_type" binding:"omitempty,max=255"`
	AbdominalCircumference   *string `json:"abdominal_circumference" binding:"omitempty,max=255"`
	Allergies                *string `json:"allergies" binding:"omitempty,max=255"`
	Diseases                 *string `json:"diseases" binding:"omitempty,max=255"`
	Medications              *string `json:"medications" binding:"omitempty,max=255"`
	FamilyHistory            *string `json:"family_history" binding:"omitempty,max=255"`
	ImportantNotes           *string `json:"important_notes" binding:"omitempty,max=255"`
	ImagesReports            *string `json:"images_reports" binding:"omitempty,max=255"`
	LatestRedBloodCell       *string `json:"latest_red_blood_cell" binding:"omitempty,max=255"`
	LatestHemoglobin         *string `json:"latest_hemoglobin" binding:"omitempty,max=255"`
	LatestHematocrit         *string `json:"latest_hematocrit" binding:"omitempty,max=255"`
	LatestGlycatedHemoglobin *string `json:"latest_glycated_hemoglobin" binding:"omitempty,max=255"`
	LatestAST                *string `json:"latest_ast" binding:"omitempty,max=255"`
	LatestALT                *string `json:"latest_alt" binding:"omitempty,max=255"`
	LatestUrea               *string `json:"latest_urea" binding:"omitempty,max=255"`
	LatestCreatinine         *string `json:"latest_creatinine" binding:"omitempty,max=255"`
	FormStatus               *string `json:"form_status" binding:"omitempty,oneof='Not started' 'In progress' Filled"`
}

func (in FormPatchInput) Apply(f *Form) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	m := &f.FormMetrics
	set(&m.Weight, in.Weight)
	set(&m.Height, in.Height)
	set(&m.BMI, in.BMI)
	set(&m.BloodType, in.BloodType)
	set(&m.AbdominalCircumference, in.AbdominalCircumference)
	set(&m.Allergies, in.Allergies)
	set(&m.Diseases, in.Diseases)
	set(&m.Medications, in.Medications)
	set(&m.FamilyHistory, in.FamilyHistory)
	set(&m.ImportantNotes, in.ImportantNotes)
	set(&m.ImagesReports, in.ImagesReports)
	set(&m.LatestRedBloodCell, in.LatestRedBloodCell)
	set(&m.LatestHemoglobin, in.LatestHemoglobin)
	set(&m.LatestHematocrit, in.LatestHematocrit)
	set(&m.LatestGlycatedHemoglobin, in.LatestGlycatedHemoglobin)
	set(&m.LatestAST, in.LatestAST)
	set(&m.LatestALT, in.LatestALT)
	set(&m.LatestUrea, in.LatestUrea)
	set(&m.LatestCreatinine, in.LatestCreatinine)
	set(&f.FormStatus, in.FormStatus)
}
