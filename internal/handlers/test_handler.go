package handlers

import (
	"net/http"

	"medrecords-backend/internal/models"
	"medrecords-backend/internal/storage"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testNotFound = "Test not found"

// CreateTest registers a lab or imaging result for a user
func (h *Handler) CreateTest(c *gin.Context) {
	var input models.TestCreateInput
	if !bindJSON(c, &input) {
		return
	}
	db := h.session(c)

	found, err := exists(db, &models.User{}, "id = ?", input.UserID)
	if err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	if !found {
		utils.APIError(c, http.StatusBadRequest, "Associated user not found")
		return
	}

	test := models.Test{
		UserID:   input.UserID,
		TestName: input.TestName,
		URL:      input.URL,
		TestDate: input.TestDate,
	}
	if err := db.Create(&test).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}

	utils.APIResponse(c, http.StatusCreated, test)
}

func (h *Handler) GetTests(c *gin.Context) {
	var tests []models.Test
	if err := h.session(c).Order("id").Find(&tests).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, tests)
}

func (h *Handler) GetTest(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	var test models.Test
	if err := h.session(c).First(&test, id).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, test)
}

func (h *Handler) UpdateTest(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.TestUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveTest(c, id, input.Apply)
}

func (h *Handler) PatchTest(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	var input models.TestPatchInput
	if !bindJSON(c, &input) {
		return
	}
	h.saveTest(c, id, input.Apply)
}

func (h *Handler) saveTest(c *gin.Context, id uint64, apply func(*models.Test)) {
	db := h.session(c)

	var test models.Test
	if err := db.First(&test, id).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}

	apply(&test)

	if err := db.Save(&test).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	utils.APIResponse(c, http.StatusOK, test)
}

// DeleteTest removes a test and the data derived from it
func (h *Handler) DeleteTest(c *gin.Context) {
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}

	err := h.session(c).Transaction(func(tx *gorm.DB) error {
		var test models.Test
		if err := tx.First(&test, id).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", id).Delete(&models.DerivedHealthData{}).Error; err != nil {
			return err
		}
		return tx.Delete(&test).Error
	})
	if err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	utils.DeleteOK(c)
}

// UploadTestResult stores the result document of a test in the blob store
// and points the test's url at it. Multipart field: file.
func (h *Handler) UploadTestResult(c *gin.Context) {
	if h.Blobs == nil {
		utils.APIError(c, http.StatusServiceUnavailable, "Result storage is not configured")
		return
	}
	id, ok := utils.PathID(c, "id")
	if !ok {
		return
	}
	db := h.session(c)

	var test models.Test
	if err := db.First(&test, id).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.APIError(c, http.StatusUnprocessableEntity, "file: field required")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	location, err := h.Blobs.Put(c.Request.Context(), storage.ResultKey(test.UserID, test.ID, header.Filename), contentType, file)
	if err != nil {
		h.respondError(c, err, testNotFound)
		return
	}

	if err := db.Model(&test).Update("url", location).Error; err != nil {
		h.respondError(c, err, testNotFound)
		return
	}
	test.URL = location

	h.Log.Info().Str("request_id", c.GetString("request_id")).Uint64("test_id", test.ID).Str("url", location).Msg("test result stored")
	utils.APIResponse(c, http.StatusOK, test)
}
