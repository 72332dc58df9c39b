package models

import "time"

// Test is an uploaded lab or imaging result.
type Test struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	UserID         uint64     `gorm:"not null;index" json:"user_id"`
	TestName       string     `gorm:"size:255;not null" json:"test_name"`
	URL            string     `gorm:"column:url;size:400;not null" json:"url"`
	TestDate       *time.Time `json:"test_date"`
	SubmissionDate time.Time  `gorm:"autoCreateTime" json:"submission_date"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Test) TableName() string {
	return "tests"
}

type TestCreateInput struct {
	UserID   uint64     `json:"user_id" binding:"required"`
	TestName string     `json:"test_name" binding:"required,max=255"`
	URL      string     `json:"url" binding:"required,max=400"`
	TestDate *time.Time `json:"test_date"` // RFC3339
}

type TestUpdateInput struct {
	TestName string     `json:"test_name" binding:"required,max=255"`
	URL      string     `json:"url" binding:"required,max=400"`
	TestDate *time.Time `json:"test_date"`
}

func (in TestUpdateInput) Apply(t *Test) {
	t.TestName = in.TestName
	t.URL = in.URL
	t.TestDate = in.TestDate
}

type TestPatchInput struct {
	TestName *string    `json:"test_name" binding:"omitempty,max=255"`
	URL      *string    `json:"url" binding:"omitempty,max=400"`
	TestDate *time.Time `json:"test_date"`
}

func (in TestPatchInput) Apply(t *Test) {
	if in.TestName != nil {
		t.TestName = *in.TestName
	}
	if in.URL != nil {
		t.URL = *in.URL
	}
	if in.TestDate != nil {
		t.TestDate = in.TestDate
	}
}
