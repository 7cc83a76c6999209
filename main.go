// @title Geography Quiz API
// @version 1.0
// @description 桌面地理测验应用的本地服务：题目代理与地图文档。

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8080
// @BasePath /

package main

import (
	"context"
	"flag"
	"geo_quiz/internal/app"
	"geo_quiz/internal/config"
	"geo_quiz/internal/desktop"
	"geo_quiz/pkg/configwatcher"
	"geo_quiz/pkg/logger"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	mode := flag.String("mode", "", "桌面外壳模式: app | browser | none")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mode != "" {
		cfg.Desktop.Mode = *mode
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid flags: %v", err)
		}
	}

	logger.InitLogger(cfg)

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	defer logger.Log.Sync()

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize app", zap.Error(err))
		return 1
	}

	shell, err := desktop.New(cfg.Desktop)
	if err != nil {
		logger.Log.Error("Failed to create desktop shell", zap.Error(err))
		return 1
	}

	if err := application.Start(); err != nil {
		logger.Log.Error("Failed to start server", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.File != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, cfg.File, application.Reload); err != nil {
				logger.Log.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	code := desktop.Launch(ctx, shell, application, cfg.Desktop.ReadyTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	return code
}
