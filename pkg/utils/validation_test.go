package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	FullName string  `json:"full_name" binding:"required,max=5"`
	Email    string  `json:"email" binding:"required,email"`
	Sex      string  `json:"biological_sex" binding:"required,oneof=M F"`
	Born     string  `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	FormID   *uint64 `json:"form_id" binding:"required_without=TestID,excluded_with=TestID"`
	TestID   *uint64 `json:"test_id" binding:"required_without=FormID,excluded_with=FormID"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var in sampleInput
	return c.ShouldBindJSON(&in)
}

func TestValidationDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"missing", `{"form_id": 1}`, []string{"full_name: field required", "email: field required", "biological_sex: field required"}},
		{"formats", `{"full_name": "toolong", "email": "x", "biological_sex": "Z", "birth_date": "1990", "form_id": 1}`,
			[]string{"full_name: must have at most 5 characters", "email: value is not a valid email address", "biological_sex: must be one of [M F]", "birth_date: must be a date formatted as 2006-01-02"}},
		{"no source", `{"full_name": "Ana", "email": "a@b.co", "biological_sex": "F"}`, []string{"form_id: required when TestID is missing"}},
		{"two sources", `{"full_name": "Ana", "email": "a@b.co", "biological_sex": "F", "form_id": 1, "test_id": 2}`, []string{"form_id: cannot be combined with TestID"}},
		{"syntax", `{"full_name": `, []string{"malformed JSON body"}},
		{"type", `{"full_name": 3}`, []string{"full_name: must be of type string"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindSample(t, tt.body)
			require.Error(t, err)
			msg := ValidationDetail(err)
			for _, w := range tt.want {
				assert.Contains(t, msg, w)
			}
		})
	}
}

func TestValidationDetail_Valid(t *testing.T) {
	assert.NoError(t, bindSample(t, `{"full_name": "Ana", "email": "a@b.co", "biological_sex": "F", "test_id": 3}`))
}
