package app

import (
	"screener_backend/internal/config"
	"screener_backend/internal/middleware"
	"screener_backend/internal/model"
	"screener_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg))
	{
		v1.GET("/users/me", c.user.Me)
		v1.GET("/users/:email", c.user.GetByEmail)

		v1.GET("/assessments", c.assessment.List)
		v1.GET("/assessments/:assessmentId", c.assessment.GetContent)

		providers := v1.Group("/providers", middleware.RoleMiddleware(model.UserTypeProvider))
		{
			providers.GET("/:providerId/patients", c.provider.Caseload)
			providers.POST("/:providerId/patients", c.provider.OnboardPatient)
			providers.GET("/:providerId/patients/:patientId/assessments", c.provider.PatientInstances)
			providers.POST("/:providerId/patients/:patientId/assessments", c.provider.AssignAssessment)
		}

		patients := v1.Group("/patients", middleware.RoleMiddleware(model.UserTypePatient))
		{
			patients.GET("/:patientId/assessments", c.patient.Instances)
			patients.GET("/:patientId/assessments/:assessmentInstanceId/responses", c.patient.Responses)
			patients.POST("/:patientId/assessments/:assessmentInstanceId/responses", c.patient.RecordResponse)
			patients.POST("/:patientId/assessments/:assessmentInstanceId/submissions", c.patient.Submit)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/v1")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Patients open assessments from an emailed link, before any login.
		public.GET("/assessment-instances/:slug", c.assessment.GetBySlug)
	}
}
