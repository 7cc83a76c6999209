package desktop

import (
	"context"
	"fmt"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/logger"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// BrowserShell 用系统默认浏览器打开页面，适用于没有 Chromium 的环境
type BrowserShell struct {
	open func(url string) error
}

func (s *BrowserShell) Run(ctx context.Context, url string) error {
	open := s.open
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(url); err != nil {
		return fmt.Errorf("%w: %v", util.ErrShellUnavailable, err)
	}
	logger.Log.Info("Opened system browser, press Ctrl+C to quit", zap.String("url", url))
	<-ctx.Done()
	return nil
}

// HeadlessShell 只运行服务
type HeadlessShell struct{}

func (HeadlessShell) Run(ctx context.Context, url string) error {
	logger.Log.Info("Running headless, press Ctrl+C to quit", zap.String("url", url))
	<-ctx.Done()
	return nil
}
