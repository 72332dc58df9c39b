package models

// DerivedHealthData is a named value extracted from a form or a test.
// Exactly one of FormID and TestID is set.
type DerivedHealthData struct {
	ID     uint64  `gorm:"primaryKey" json:"id"`
	FormID *uint64 `gorm:"index" json:"form_id"`
	TestID *uint64 `gorm:"index" json:"test_id"`
	Name   string  `gorm:"size:255;not null" json:"name"`
	Value  string  `gorm:"size:255;not null" json:"value"`

	Form *Form `gorm:"foreignKey:FormID" json:"-"`
	Test *Test `gorm:"foreignKey:TestID" json:"-"`
}

func (DerivedHealthData) TableName() string {
	return "derived_health_data"
}

type HealthDataCreateInput struct {
	FormID *uint64 `json:"form_id" binding:"required_without=TestID,excluded_with=TestID"`
	TestID *uint64 `json:"test_id" binding:"required_without=FormID,excluded_with=FormID"`
	Name   string  `json:"name" binding:"required,max=255"`
	Value  string  `json:"value" binding:"required,max=255"`
}

type HealthDataUpdateInput HealthDataCreateInput

func (in HealthDataUpdateInput) Apply(d *DerivedHealthData) {
	d.FormID = in.FormID
	d.TestID = in.TestID
	d.Name = in.Name
	d.Value = in.Value
}

// HealthDataPatchInput moves the record to another source when form_id or
// test_id is supplied; the other reference is cleared.
type HealthDataPatchInput struct {
	FormID *uint64 `json:"form_id" binding:"excluded_with=TestID"`
	TestID *uint64 `json:"test_id" binding:"excluded_with=FormID"`
	Name   *string `json:"name" binding:"omitempty,max=255"`
	Value  *string `json:"value" binding:"omitempty,max=255"`
}

func (in HealthDataPatchInput) Apply(d *DerivedHealthData) {
	if in.FormID != nil {
		d.FormID = in.FormID
		d.TestID = nil
	}
	if in.TestID != nil {
		d.TestID = in.TestID
		d.FormID = nil
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Value != nil {
		d.Value = *in.Value
	}
}
