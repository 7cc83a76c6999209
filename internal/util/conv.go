package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt 读取整数查询参数，缺省时返回 def；非整数时返回错误，不做范围校验
func QueryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryInt, key, raw)
	}
	return v, nil
}

// OptionalQueryInt 与 QueryInt 相同，但额外返回参数是否存在
func OptionalQueryInt(c *gin.Context, key string) (int, bool, error) {
	if _, ok := c.GetQuery(key); !ok {
		return 0, false, nil
	}
	v, err := QueryInt(c, key, 0)
	return v, true, err
}

// ClampCount 将题目数量限制在 max 以内，max<=0 时使用 MaxQuestionCount
func ClampCount(n, max int) int {
	if max <= 0 {
		max = MaxQuestionCount
	}
	if n > max {
		return max
	}
	return n
}
