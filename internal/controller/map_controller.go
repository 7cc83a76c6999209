package controller

import (
	"bytes"
	"geo_quiz/internal/service"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MapController struct {
	fetcher   service.QuestionFetcher
	maps      *service.MapService
	storage   *service.StorageService
	batchSize int
	maxCount  int
}

func NewMapController(fetcher service.QuestionFetcher, maps *service.MapService, storage *service.StorageService, batchSize, maxCount int) *MapController {
	return &MapController{
		fetcher:   fetcher,
		maps:      maps,
		storage:   storage,
		batchSize: batchSize,
		maxCount:  maxCount,
	}
}

// GetMap 生成地图文档
// @Summary 地图文档
// @Description 每次请求重新生成地图。传入 num 时按当前测验题数放置提示标记，否则另取一批题目
// @Tags 测验
// @Produce html
// @Param score query int false "累计得分" default(0)
// @Param rounds query int false "已完成轮数" default(0)
// @Param num query int false "当前测验题数，超过上限时按上限处理"
// @Success 200 {string} string "HTML"
// @Failure 500 {object} util.Response
// @Router /map [get]
func (c *MapController) GetMap(ctx *gin.Context) {
	score, err := util.QueryInt(ctx, "score", 0)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	rounds, err := util.QueryInt(ctx, "rounds", 0)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	count, ok, err := util.OptionalQueryInt(ctx, "num")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if !ok {
		// 未告知当前题数：另取一批与测验无关的题目，只用于决定标记数量
		result := c.fetcher.Fetch(ctx.Request.Context(), util.ClampCount(c.batchSize, c.maxCount))
		count = len(result.Questions)
		logger.Log.Debug("Map markers from unrelated question batch",
			zap.Int("batch", c.batchSize),
			zap.Int("returned", count),
			zap.Bool("failed", result.Failed()),
		)
	}

	// 标记数量随 num 线性增长，必须限制
	doc := c.maps.Build(util.ClampCount(count, c.maxCount), score, rounds)

	var buf bytes.Buffer
	if err := c.maps.Render(&buf, doc); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if _, err := c.storage.SaveSnapshot(ctx.Request.Context(), buf.Bytes()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, util.MimeHTML, buf.Bytes())
}
