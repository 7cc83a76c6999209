package desktop

import (
	"context"
	"errors"
	"fmt"
	"geo_quiz/internal/config"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/logger"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Chromium 系浏览器，按优先级查找
var chromiumCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"microsoft-edge",
	"brave-browser",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
}

// AppWindowShell 以 Chromium 应用模式打开独立窗口，窗口唯一内容即页面，进程退出即窗口关闭
type AppWindowShell struct {
	cfg      config.DesktopConfig
	lookPath func(file string) (string, error)
}

func NewAppWindowShell(cfg config.DesktopConfig) *AppWindowShell {
	return &AppWindowShell{cfg: cfg, lookPath: exec.LookPath}
}

func (s *AppWindowShell) findBrowser() (string, error) {
	if s.cfg.BrowserPath != "" {
		return s.lookPath(s.cfg.BrowserPath)
	}
	for _, name := range chromiumCandidates {
		if path, err := s.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no Chromium-based browser found")
}

// Args 生成浏览器启动参数，窗口放在屏幕右下角
func (s *AppWindowShell) Args(url, profileDir string) []string {
	x, y := CornerPosition(s.cfg.ScreenWidth, s.cfg.ScreenHeight, s.cfg.Width, s.cfg.Height)
	args := []string{
		"--app=" + url,
		fmt.Sprintf("--window-size=%d,%d", s.cfg.Width, s.cfg.Height),
		fmt.Sprintf("--window-position=%d,%d", x, y),
		"--user-data-dir=" + profileDir,
		"--no-first-run",
		"--no-default-browser-check",
	}
	if s.cfg.Debug {
		args = append(args, "--auto-open-devtools-for-tabs")
	}
	return args
}

// Run 阻塞到窗口关闭；ctx 结束时关闭窗口
func (s *AppWindowShell) Run(ctx context.Context, url string) error {
	bin, err := s.findBrowser()
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrShellUnavailable, err)
	}

	// 独立的用户目录保证浏览器进程与窗口生命周期一致
	profileDir, err := os.MkdirTemp("", "geo-quiz-profile-*")
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrShellUnavailable, err)
	}
	defer os.RemoveAll(profileDir)

	cmd := exec.CommandContext(ctx, bin, s.Args(url, profileDir)...)
	logger.Log.Debug("Starting app window", zap.String("browser", bin), zap.Strings("args", cmd.Args[1:]))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("app window exited: %w", err)
	}
	return nil
}
