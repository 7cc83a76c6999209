package controller

import (
	"geo_quiz/internal/model"
	"geo_quiz/internal/service"
	"geo_quiz/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	fetcher      service.QuestionFetcher
	defaultCount int
	maxCount     int
}

func NewQuizController(fetcher service.QuestionFetcher, defaultCount, maxCount int) *QuizController {
	return &QuizController{fetcher: fetcher, defaultCount: defaultCount, maxCount: maxCount}
}

// GetQuestions 拉取题目并原样返回；上游失败时返回空数组
// @Summary 获取题目
// @Description 代理题库接口获取地理选择题
// @Tags 测验
// @Produce json
// @Param num query int false "题目数量，超过上限时按上限处理" default(5)
// @Success 200 {array} model.Question
// @Failure 500 {object} util.Response
// @Router /get_questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	num, err := util.QueryInt(ctx, "num", c.defaultCount)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result := c.fetcher.Fetch(ctx.Request.Context(), util.ClampCount(num, c.maxCount))
	questions := result.Questions
	if questions == nil {
		questions = []model.Question{}
	}
	ctx.JSON(http.StatusOK, questions)
}
