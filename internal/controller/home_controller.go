package controller

import (
	"geo_quiz/internal/web"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeController struct {
	title        string
	credits      string
	defaultCount int
}

func NewHomeController(title, credits string, defaultCount int) *HomeController {
	return &HomeController{title: title, credits: credits, defaultCount: defaultCount}
}

// Index 返回内嵌测验组件和地图 iframe 的首页，不依赖题库接口
// @Summary 首页
// @Tags 页面
// @Produce html
// @Success 200 {string} string "HTML"
// @Router / [get]
func (c *HomeController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.IndexTemplate, gin.H{
		"Title":        c.title,
		"Credits":      c.credits,
		"DefaultCount": c.defaultCount,
	})
}
