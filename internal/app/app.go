package app

import (
	"context"
	"errors"
	"fmt"
	"geo_quiz/internal/config"
	"geo_quiz/internal/controller"
	"geo_quiz/internal/middleware"
	"geo_quiz/internal/service"
	"geo_quiz/internal/util"
	"geo_quiz/internal/web"
	"geo_quiz/pkg/logger"
	"geo_quiz/pkg/monitoring"
	"geo_quiz/pkg/security"
	"geo_quiz/pkg/tracing"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine

	services        *services
	server          *http.Server
	listener        net.Listener
	tracer          *sdktrace.TracerProvider
	ctx             context.Context
	cancel          context.CancelFunc
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type services struct {
	trivia  *service.TriviaService
	maps    *service.MapService
	storage *service.StorageService
}

type controllers struct {
	home   *controller.HomeController
	quiz   *controller.QuizController
	geoMap *controller.MapController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// Reload 配置热加载入口，依次调用已注册的回调
func (a *App) Reload(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initServices(cfg *config.Config) (*services, error) {
	maps, err := service.NewMapService(cfg.Map)
	if err != nil {
		return nil, err
	}

	s := &services{
		trivia:  service.NewTriviaService(cfg.Trivia),
		maps:    maps,
		storage: service.NewStorageService(cfg),
	}

	a.RegisterConfigCallback(func(c *config.Config) {
		s.trivia.UpdateConfig(c.Trivia)
	})
	a.RegisterConfigCallback(logger.SetLevel)

	return s, nil
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	return &controllers{
		home:   controller.NewHomeController(cfg.Desktop.Title, cfg.Map.Credits, cfg.Trivia.DefaultCount),
		quiz:   controller.NewQuizController(s.trivia, cfg.Trivia.DefaultCount, cfg.Trivia.MaxCount),
		geoMap: controller.NewMapController(s.trivia, s.maps, s.storage, cfg.Trivia.MapBatchSize, cfg.Trivia.MaxCount),
		health: controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{Config: cfg}
	// 后台协程（限流清理等）随 Shutdown 退出
	app.ctx, app.cancel = context.WithCancel(context.Background())

	services, err := app.initServices(cfg)
	if err != nil {
		app.cancel()
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services, cfg)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	tmpl, err := web.ParseTemplates()
	if err != nil {
		app.cancel()
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Server.StaticDir != "" {
		if _, err := os.Stat(cfg.Server.StaticDir); err != nil {
			logger.Log.Warn("Static directory missing, page assets will 404", zap.String("dir", cfg.Server.StaticDir))
		}
		router.Static("/static", cfg.Server.StaticDir)
	}

	return app, nil
}

// Start 同步绑定端口后在后台提供服务，端口冲突等错误会立即返回
func (a *App) Start() error {
	ln, err := net.Listen("tcp", a.Config.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.Config.Server.Addr(), err)
	}

	a.listener = ln
	a.server = &http.Server{
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("addr", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	return nil
}

// URL 返回服务首页地址，端口为 0 时取实际监听端口
func (a *App) URL() string {
	if a.listener == nil {
		return "http://" + a.Config.Server.Addr()
	}
	return "http://" + a.listener.Addr().String()
}

// WaitReady 轮询健康检查接口，直到返回 200 或 ctx 结束
func (a *App) WaitReady(ctx context.Context) error {
	client := &http.Client{Timeout: time.Second}
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL()+util.HealthPath, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", util.ErrServiceNotReady, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Shutdown 优雅关闭服务和追踪
func (a *App) Shutdown(ctx context.Context) error {
	a.cancel()

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	logger.Log.Info("Server exiting")
	return errors.Join(errs...)
}
