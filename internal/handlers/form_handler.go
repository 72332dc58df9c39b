package handlers

import (
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const formNotFound = "Form not found"

// CreateForm starts a health questionnaire for a user
func (h *Handler) CreateForm(c *gin.Context) {
	var input models.FormCreateInput
	if !bindJSON(c, &input) {
		return
	}
	db := h.session(c)

	found, err := exists(db, &models.User{}, "id = ?", input.UserID)
	if err != nil {
		h.respondError(c, err, formNotFound)
		return
	}
	if !found {
		utils.APIError(c, http.StatusBadRequest, "Associated user not found")
		return
	}

	form := models.Form{
		UserID:      input.UserID,
		FormMetrics: input.FormMetrics,
		FormStatus:  input.FormStatus,
	}
	if form.FormStatus == "" {
		form.FormStatus = models.FormStatusNotStarted
	}
	if err := db.Create(&form).Error; err != nil {
		h.respondError(c, err, formNotFound)
		return
	}

	utils.APIResponse(c, http.StatusCreated, form)
}

func (h *Handler) GetForms(c *gin.Context) {
	var forms []models.Form
	if err := h.session(c).Order("id").Find(&forms).Error; err != nil {
		h.respondError(c, err, formNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, forms)
}

func (h *Handler) GetForm(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	var form models.Form
	if err := h.session(c).First(&form, id).Error; err != nil {
		h.respondError(c, err, formNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, form)
}

func (h *Handler) UpdateForm(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.FormUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveForm(c, id, input.Apply)
}

func (h *Handler) PatchForm(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.FormPatchInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveForm(c, id, input.Apply)
}

func (h *Handler) saveForm(c *gin.Context, id uint64, apply func(*models.Form)) {
	db := h.session(c)

	var form models.Form
	if err := db.First(&form, id).Error; err != nil {
		h.respondError(c, err, formNotFound)
		return
	}

	apply(&form)

	if err := db.Save(&form).Error; err != nil {
		h.respondError(c, err, formNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, form)
}

// DeleteForm removes a form and the data derived from it
func (h *Handler) DeleteForm(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	err := h.session(c).Transaction(func(tx *gorm.DB) error {
		var form models.Form
		if err := tx.First(&form, id).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", id).Delete(&models.DerivedHealthData{}).Error; err != nil {
			return err
		}
		return tx.Delete(&form).Error
	})
	if err != nil {
		h.respondError(c, err, formNotFound)
		return
	}
	utils.DeleteOK(c)
}
