package models

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// User represents the 'users' table
type User struct {
	ID            uint64         `gorm:"primaryKey" json:"id"`
	FullName      string         `gorm:"size:255;not null" json:"full_name"`
	Email         string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"` // bcrypt hash or ciphertext, never plaintext
	BirthDate     datatypes.Date `gorm:"not null" json:"birth_date"`
	BiologicalSex string         `gorm:"size:1;not null;check:chk_users_biological_sex,biological_sex IN ('M','F')" json:"biological_sex"`
	CreationDate  time.Time      `gorm:"autoCreateTime" json:"creation_date"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is what the API returns for a user. The password is never included.
type UserResponse struct {
	ID            uint64    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	BirthDate     string    `json:"birth_date"`
	BiologicalSex string    `json:"biological_sex"`
	CreationDate  time.Time `json:"creation_date"`
}

func (u User) Response() UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		BirthDate:     FormatDate(u.BirthDate),
		BiologicalSex: u.BiologicalSex,
		CreationDate:  u.CreationDate,
	}
}

func UserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Response())
	}
	return out
}

// UserCreateInput is the body of POST /user/users
type UserCreateInput struct {
	FullName      string `json:"full_name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	BirthDate     string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	BiologicalSex string `json:"biological_sex" binding:"required,oneof=M F"`
}

// UserUpdateInput is the body of PUT /user/users/:id. Password is the only
// optional field; when it is absent the stored one is kept.
type UserUpdateInput struct {
	FullName      string `json:"full_name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"omitempty,min=6"`
	BirthDate     string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	BiologicalSex string `json:"biological_sex" binding:"required,oneof=M F"`
}

// Apply overwrites every mutable field except the password, which the
// handler protects before storing.
func (in UserUpdateInput) Apply(u *User) {
	u.FullName = in.FullName
	u.Email = in.Email
	u.BirthDate = MustParseDate(in.BirthDate)
	u.BiologicalSex = in.BiologicalSex
}

// UserPatchInput is the body of PATCH /user/users/:id
type UserPatchInput struct {
	FullName      *string `json:"full_name" binding:"omitempty,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Password      *string `json:"password" binding:"omitempty,min=6"`
	BirthDate     *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	BiologicalSex *string `json:"biological_sex" binding:"omitempty,oneof=M F"`
}

// Apply copies the supplied fields, password excluded.
func (in UserPatchInput) Apply(u *User) {
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.BirthDate != nil {
		u.BirthDate = MustParseDate(*in.BirthDate)
	}
	if in.BiologicalSex != nil {
		u.BiologicalSex = *in.BiologicalSex
	}
}

// LoginInput is the body of POST /user/login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// MustParseDate is for strings that already passed the datetime=2006-01-02 binding.
func MustParseDate(s string) datatypes.Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
