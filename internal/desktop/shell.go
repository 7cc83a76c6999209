// Package desktop 启动承载测验页面的窗口
package desktop

import (
	"context"
	"errors"
	"fmt"
	"geo_quiz/internal/config"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// Shell 在前台运行直到窗口关闭或 ctx 结束
type Shell interface {
	Run(ctx context.Context, url string) error
}

// Service 外壳依赖的本地服务
type Service interface {
	URL() string
	WaitReady(ctx context.Context) error
}

// 右下角留白，避开任务栏
const (
	cornerMarginX = 10
	cornerMarginY = 40
)

// CornerPosition 计算窗口放在屏幕右下角时的左上角坐标
func CornerPosition(screenW, screenH, winW, winH int) (int, int) {
	x := screenW - winW - cornerMarginX
	y := screenH - winH - cornerMarginY
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

func New(cfg config.DesktopConfig) (Shell, error) {
	switch cfg.Mode {
	case util.ShellApp, "":
		return NewAppWindowShell(cfg), nil
	case util.ShellBrowser:
		return &BrowserShell{}, nil
	case util.ShellNone:
		return &HeadlessShell{}, nil
	}
	return nil, fmt.Errorf("%w: mode %q", util.ErrShellUnavailable, cfg.Mode)
}

// Launch 等待服务就绪后运行外壳，返回进程退出码
func Launch(ctx context.Context, shell Shell, svc Service, readyTimeout time.Duration) int {
	readyCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	err := svc.WaitReady(readyCtx)
	cancel()
	if err != nil {
		logger.Log.Error("Service did not become ready", zap.Duration("timeout", readyTimeout), zap.Error(err))
		return 1
	}

	url := svc.URL()
	logger.Log.Info("Launching shell", zap.String("url", url))
	if err := shell.Run(ctx, url); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Desktop shell failed", zap.Error(err))
		return 1
	}
	return 0
}
