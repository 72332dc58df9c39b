package handlers_test

import (
	"net/http"
	"testing"

	"medrecords-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doctorBody(userID uint64) map[string]interface{} {
	return map[string]interface{}{"user_id": userID, "crm": "12345-SP", "specialty": "Cardiology"}
}

func TestCreateDoctor(t *testing.T) {
	e := newTestEnv(t)
	id := e.createUser("doc@example.com")

	rec := e.do(http.MethodPost, "/user/doctors", doctorBody(id))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	doctor := decode[models.Doctor](t, rec)
	assert.Equal(t, id, doctor.UserID)
	assert.Equal(t, "12345-SP", doctor.CRM)

	rec = e.do(http.MethodGet, pathf("/user/doctors/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cardiology", decode[models.Doctor](t, rec).Specialty)
}

func TestCreateDoctor_UnknownUser(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/user/doctors", doctorBody(77))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Associated user not found", detail(t, rec))
	assert.EqualValues(t, 0, e.count(&models.Doctor{}, "1 = 1"))
}

func TestCreateDoctor_Twice(t *testing.T) {
	e := newTestEnv(t)
	id := e.createUser("doc@example.com")
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/user/doctors", doctorBody(id)).Code)

	rec := e.do(http.MethodPost, "/user/doctors", doctorBody(id))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Doctor already registered", detail(t, rec))
}

func TestCreateDoctor_Validation(t *testing.T) {
	e := newTestEnv(t)
	id := e.createUser("doc@example.com")

	rec := e.do(http.MethodPost, "/user/doctors", map[string]interface{}{"user_id": id, "specialty": "Cardiology"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, detail(t, rec), "crm")
}

func TestGetDoctor_NotFound(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/user/doctors/5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Doctor not found", detail(t, rec))
}

func TestUpdateAndPatchDoctor(t *testing.T) {
	e := newTestEnv(t)
	id := e.createUser("doc@example.com")
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/user/doctors", doctorBody(id)).Code)

	rec := e.do(http.MethodPut, pathf("/user/doctors/%d", id), map[string]interface{}{"crm": "999-RJ", "specialty": "Neurology"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[models.Doctor](t, e.do(http.MethodGet, pathf("/user/doctors/%d", id), nil))
	assert.Equal(t, "999-RJ", got.CRM)
	assert.Equal(t, "Neurology", got.Specialty)

	rec = e.do(http.MethodPatch, pathf("/user/doctors/%d", id), map[string]interface{}{"specialty": "Pediatrics"})
	require.Equal(t, http.StatusOK, rec.Code)

	got = decode[models.Doctor](t, e.do(http.MethodGet, pathf("/user/doctors/%d", id), nil))
	assert.Equal(t, "999-RJ", got.CRM)
	assert.Equal(t, "Pediatrics", got.Specialty)
}

func TestDeleteDoctor(t *testing.T) {
	e := newTestEnv(t)
	id := e.createUser("doc@example.com")
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/user/doctors", doctorBody(id)).Code)

	rec := e.do(http.MethodDelete, pathf("/user/doctors/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, pathf("/user/doctors/%d", id), nil).Code)
	assert.EqualValues(t, 1, e.count(&models.User{}, "id = ?", id), "user is kept")
}

func TestUserDetails(t *testing.T) {
	e := newTestEnv(t)
	doc := e.createUser("doc@example.com")
	plain := e.createUser("plain@example.com")
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/user/doctors", doctorBody(doc)).Code)

	rec := e.do(http.MethodGet, "/user/details", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	all := decode[[]models.UserDetails](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, doc, all[0].ID)
	require.NotNil(t, all[0].Doctor)
	assert.Equal(t, "12345-SP", all[0].Doctor.CRM)
	assert.Equal(t, "Cardiology", all[0].Doctor.Specialty)
	assert.Equal(t, plain, all[1].ID)
	assert.Nil(t, all[1].Doctor)

	rec = e.do(http.MethodGet, pathf("/user/details/%d", plain), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	one := decode[models.UserDetails](t, rec)
	assert.Equal(t, "plain@example.com", one.Email)
	assert.Equal(t, "1990-04-12", one.BirthDate)
	assert.Nil(t, one.Doctor)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/user/details/404", nil).Code)
}
