package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/app/controllers"
	"github.com/yigit/coursequest/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Course *controllers.CourseController
	Ask    *controllers.AskController
	Ingest *controllers.IngestController
	System *controllers.SystemController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, ingestToken string, maxUploadBytes int64) {
	router.GET("/", ctrl.System.Root)

	api := router.Group("/api")
	{
		api.GET("/health", ctrl.System.Health)
		api.POST("/setup", ctrl.System.Setup)

		api.GET("/courses", ctrl.Course.GetCourses)
		api.GET("/compare", ctrl.Course.CompareCourses)
		api.POST("/ask", ctrl.Ask.Ask)

		// Token check runs before the body is touched.
		api.POST("/ingest",
			middleware.IngestAuth(ingestToken),
			middleware.BodyLimit(maxUploadBytes),
			ctrl.Ingest.Ingest,
		)
	}

	router.NoRoute(middleware.NoRoute)
}
