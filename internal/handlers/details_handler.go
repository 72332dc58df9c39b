package handlers

import (
	"net/http"
	"strconv"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type userDoctorRow struct {
	models.User
	DoctorCRM       *string `gorm:"column:doctor_crm"`
	DoctorSpecialty *string `gorm:"column:doctor_specialty"`
}

func (r userDoctorRow) details() models.UserDetails {
	d := models.UserDetails{UserResponse: r.User.Response()}
	if r.DoctorCRM != nil {
		d.Doctor = &models.DoctorSummary{CRM: *r.DoctorCRM}
		if r.DoctorSpecialty != nil {
			d.Doctor.Specialty = *r.DoctorSpecialty
		}
	}
	return d
}

func usersWithDoctor(db *gorm.DB) *gorm.DB {
	return db.Table("users").
		Select("users.*, doctors.crm AS doctor_crm, doctors.specialty AS doctor_specialty").
		Joins("LEFT JOIN doctors ON doctors.user_id = users.id")
}

// GetUsersDetails lists every user with its doctor record, if any
func (h *Handler) GetUsersDetails(c *gin.Context) {
	var rows []userDoctorRow
	if err := usersWithDoctor(h.session(c)).Order("users.id").Scan(&rows).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}

	out := make([]models.UserDetails, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.details())
	}
	utils.APIResponse(c, http.StatusOK, out)
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	var rows []userDoctorRow
	if err := usersWithDoctor(h.session(c)).Where("users.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	if len(rows) == 0 {
		utils.APIError(c, http.StatusNotFound, userNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, rows[0].details())
}

type dependentRow struct {
	UserID      uint64
	DependentID uint64
	Confirmed   bool
	FullName    string
	BirthDate   datatypes.Date
	Email       string
	FormStatus  *string
}

// GetUserDependents lists the dependents of a holder with their name,
// birth date, email and the status of their latest form. ?confirmed=true|false filters.
func (h *Handler) GetUserDependents(c *gin.Context) {
	var confirmed *bool
	if raw, present := c.GetQuery("confirmed"); present {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.APIError(c, http.StatusUnprocessableEntity, "confirmed: must be true or false")
			return
		}
		confirmed = &v
	}
	h.listDependents(c, confirmed)
}

// GetConfirmedDependents lists only the confirmed dependents of a holder
func (h *Handler) GetConfirmedDependents(c *gin.Context) {
	confirmed := true
	h.listDependents(c, &confirmed)
}

func (h *Handler) listDependents(c *gin.Context, confirmed *bool) {
	holderID, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	db := h.session(c)

	found, err := exists(db, &models.User{}, "id = ?", holderID)
	if err != nil {
		h.respondError(c, err, userNotFound)
		return
	}
	if !found {
		utils.APIError(c, http.StatusNotFound, userNotFound)
		return
	}

	q := db.Table("dependents").
		Select("dependents.user_id, dependents.dependent_id, dependents.confirmed, " +
			"users.full_name, users.birth_date, users.email, forms.form_status").
		Joins("JOIN users ON users.id = dependents.dependent_id").
		Joins("LEFT JOIN forms ON forms.id = (SELECT MAX(f.id) FROM forms f WHERE f.user_id = dependents.dependent_id)").
		Where("dependents.user_id = ?", holderID)
	if confirmed != nil {
		q = q.Where("dependents.confirmed = ?", *confirmed)
	}

	var rows []dependentRow
	if err := q.Order("dependents.dependent_id").Scan(&rows).Error; err != nil {
		h.respondError(c, err, dependentNotFound)
		return
	}

	out := make([]models.DependentDetails, 0, len(rows))
	for _, r := range rows {
		status := models.FormStatusNotStarted
		if r.FormStatus != nil {
			status = *r.FormStatus
		}
		out = append(out, models.DependentDetails{
			UserID:      r.UserID,
			DependentID: r.DependentID,
			Confirmed:   r.Confirmed,
			FullName:    r.FullName,
			BirthDate:   models.FormatDate(r.BirthDate),
			Email:       r.Email,
			FormStatus:  status,
		})
	}
	utils.APIResponse(c, http.StatusOK, out)
}
