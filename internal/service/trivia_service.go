package service

import (
	"context"
	"encoding/json"
	"fmt"
	"geo_quiz/internal/config"
	"geo_quiz/internal/model"
	"geo_quiz/internal/util"
	"geo_quiz/pkg/logger"
	"geo_quiz/pkg/monitoring"
	"geo_quiz/pkg/tracing"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// QuestionFetcher 题目来源，控制器依赖此接口以便替换
type QuestionFetcher interface {
	Fetch(ctx context.Context, amount int) model.FetchResult
}

// TriviaService 代理 Open Trivia DB 拉取选择题
type TriviaService struct {
	mu      sync.RWMutex
	config  config.TriviaConfig
	limiter *rate.Limiter
	client  *http.Client
}

func NewTriviaService(cfg config.TriviaConfig) *TriviaService {
	return &TriviaService{
		config:  cfg,
		limiter: newLimiter(cfg.MinInterval),
		client:  &http.Client{},
	}
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// UpdateConfig 配置热加载回调
func (s *TriviaService) UpdateConfig(cfg config.TriviaConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.MinInterval != s.config.MinInterval {
		s.limiter = newLimiter(cfg.MinInterval)
	}
	s.config = cfg
}

func (s *TriviaService) settings() (config.TriviaConfig, *rate.Limiter) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.limiter
}

// Fetch 拉取 amount 道题；任何失败都返回空列表并在 Err 中说明原因，由调用方决定降级或重试
func (s *TriviaService) Fetch(ctx context.Context, amount int) model.FetchResult {
	ctx, span := tracing.StartSpan(ctx, "trivia.fetch")
	defer span.End()
	span.SetAttributes(attribute.Int("trivia.amount", amount))

	questions, err := s.fetch(ctx, amount)
	if err != nil {
		monitoring.TriviaFetchCounter.WithLabelValues(monitoring.OutcomeFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.Warn("Failed to fetch questions", zap.Int("amount", amount), zap.Error(err))
		return model.FetchResult{Questions: []model.Question{}, Err: err}
	}

	result := model.FetchResult{Questions: questions}
	if result.Empty() {
		monitoring.TriviaFetchCounter.WithLabelValues(monitoring.OutcomeEmpty).Inc()
	} else {
		monitoring.TriviaFetchCounter.WithLabelValues(monitoring.OutcomeOK).Inc()
	}
	span.SetAttributes(attribute.Int("trivia.returned", len(questions)))
	return result
}

func (s *TriviaService) fetch(ctx context.Context, amount int) ([]model.Question, error) {
	cfg, limiter := s.settings()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTriviaRateLimited, err)
	}

	endpoint, err := buildTriviaURL(cfg, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTriviaUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTriviaUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTriviaUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", util.ErrTriviaUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, util.ErrTriviaRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", util.ErrTriviaUnavailable, resp.StatusCode)
	}

	var result model.TriviaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrTriviaBadResponse, err)
	}

	switch result.ResponseCode {
	case model.TriviaCodeSuccess:
	case model.TriviaCodeNoResults:
		return []model.Question{}, nil
	case model.TriviaCodeRateLimit:
		return nil, util.ErrTriviaRateLimited
	default:
		return nil, fmt.Errorf("%w: response_code %d", util.ErrTriviaBadResponse, result.ResponseCode)
	}

	if result.Results == nil {
		return []model.Question{}, nil
	}
	for i := range result.Results {
		if result.Results[i].IncorrectAnswers == nil {
			result.Results[i].IncorrectAnswers = []string{}
		}
	}
	return result.Results, nil
}

func buildTriviaURL(cfg config.TriviaConfig, amount int) (string, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("amount", strconv.Itoa(amount))
	if cfg.Category > 0 {
		q.Set("category", strconv.Itoa(cfg.Category))
	}
	if cfg.Type != "" {
		q.Set("type", cfg.Type)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
