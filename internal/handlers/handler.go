package handlers

import (
	"errors"
	"net/http"

	"medrecords-backend/internal/config"
	"medrecords-backend/internal/storage"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Handler carries the dependencies shared by every endpoint. DB is the
// connection pool; each request works on its own session from it.
type Handler struct {
	DB      *gorm.DB
	Hasher  utils.PasswordHasher
	Tokens  *utils.TokenIssuer
	Mailer  utils.Mailer
	Blobs   storage.BlobStore // nil when result storage is not configured
	BaseURL string
	Log     zerolog.Logger
}

// session scopes the pool to the request: queries are cancelled with the
// request and the connection goes back to the pool on every return path.
func (h *Handler) session(c *gin.Context) *gorm.DB {
	return h.DB.WithContext(c.Request.Context())
}

// bindJSON validates the body against obj's binding tags and replies 422 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		utils.APIError(c, http.StatusUnprocessableEntity, utils.ValidationDetail(err))
		return false
	}
	return true
}

// respondError translates storage and helper errors into HTTP replies.
// notFound is the detail used for gorm.ErrRecordNotFound.
func (h *Handler) respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.APIError(c, http.StatusNotFound, notFound)
	case errors.Is(err, utils.ErrEncryptionService):
		h.Log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("encryption service call failed")
		utils.APIError(c, http.StatusInternalServerError, utils.ErrEncryptionService.Error())
	case config.IsIntegrityViolation(err):
		h.Log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("integrity violation")
		utils.APIError(c, http.StatusBadRequest, "Integrity error")
	default:
		h.Log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("request failed")
		utils.APIError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// exists reports whether a row of model matches the condition.
func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
