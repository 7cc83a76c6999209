package app

import (
	"geo_quiz/docs"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.Host = a.Config.Server.Addr()
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 页面与测验接口，路径与前端脚本约定一致
	a.registerQuizRoutes(router, c)

	// 2. 系统接口
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
	}

	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx)
	})
}

func (a *App) registerQuizRoutes(router *gin.Engine, c *controllers) {
	router.GET("/", c.home.Index)
	router.GET("/get_questions", c.quiz.GetQuestions)
	router.GET("/map", c.geoMap.GetMap)
}
