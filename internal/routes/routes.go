package routes

import (
	"medrecords-backend/internal/handlers"
	"medrecords-backend/internal/middleware"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Options struct {
	Log         zerolog.Logger
	CORSOrigins []string
	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	utils.UseJSONFieldNames()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Log))
	r.Use(middleware.Recovery(opts.Log))
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	if opts.RateLimitRPS > 0 {
		r.Use(middleware.RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	r.GET("/", h.Root)
	r.GET("/ping", h.Ping)

	api := r.Group("/user")
	{
		api.POST("/login", h.Login)
		api.GET("/me", middleware.AuthMiddleware(h.Tokens), h.GetUserProfile)

		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.GetUsers)
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.PATCH("/users/:id", h.PatchUser)
		api.DELETE("/users/:id", h.DeleteUser)
		api.GET("/users/:id/dependents", h.GetUserDependents)
		api.GET("/users/:id/dependents/confirmed", h.GetConfirmedDependents)

		api.GET("/details", h.GetUsersDetails)
		api.GET("/details/:id", h.GetUserDetails)

		// Doctors
		api.POST("/doctors", h.CreateDoctor)
		api.GET("/doctors", h.GetDoctors)
		api.GET("/doctors/:user_id", h.GetDoctor)
		api.PUT("/doctors/:user_id", h.UpdateDoctor)
		api.PATCH("/doctors/:user_id", h.PatchDoctor)
		api.DELETE("/doctors/:user_id", h.DeleteDoctor)

		// Dependents
		api.POST("/dependents", h.CreateDependent)
		api.GET("/dependents", h.GetDependents)
		api.POST("/dependents/confirm", h.RequestConfirmation)
		api.GET("/dependents/confirm", h.ConfirmDependent)
		api.GET("/dependents/:user_id/:dependent_id", h.GetDependent)
		api.PUT("/dependents/:user_id/:dependent_id", h.UpdateDependent)
		api.PATCH("/dependents/:user_id/:dependent_id", h.PatchDependent)
		api.DELETE("/dependents/:user_id/:dependent_id", h.DeleteDependent)

		// Forms
		api.POST("/forms", h.CreateForm)
		api.GET("/forms", h.GetForms)
		api.GET("/forms/:id", h.GetForm)
		api.PUT("/forms/:id", h.UpdateForm)
		api.PATCH("/forms/:id", h.PatchForm)
		api.DELETE("/forms/:id", h.DeleteForm)

		// Tests
		api.POST("/tests", h.CreateTest)
		api.GET("/tests", h.GetTests)
		api.GET("/tests/:id", h.GetTest)
		api.PUT("/tests/:id", h.UpdateTest)
		api.PATCH("/tests/:id", h.PatchTest)
		api.DELETE("/tests/:id", h.DeleteTest)
		api.POST("/tests/:id/result", h.UploadTestResult)

		// Derived health data
		api.POST("/health-data", h.CreateHealthData)
		api.GET("/health-data", h.GetHealthData)
		api.GET("/health-data/:id", h.GetHealthDataByID)
		api.PUT("/health-data/:id", h.UpdateHealthData)
		api.PATCH("/health-data/:id", h.PatchHealthData)
		api.DELETE("/health-data/:id", h.DeleteHealthData)
	}
}
