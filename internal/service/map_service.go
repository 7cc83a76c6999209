package service

import (
	"fmt"
	"geo_quiz/internal/config"
	"geo_quiz/internal/model"
	"geo_quiz/internal/web"
	"geo_quiz/pkg/monitoring"
	"html/template"
	"io"
	"math/rand/v2"
	"sync"
)

const (
	mapCenterLat = 20.5937
	mapCenterLon = 78.9629
	mapZoom      = 3
)

// MapService 根据题目数量和得分生成地图文档
type MapService struct {
	mu      sync.Mutex
	rng     *rand.Rand
	cities  []model.City
	credits string
	tmpl    *template.Template
}

func NewMapService(cfg config.MapConfig) (*MapService, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/"+web.MapTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse map template: %w", err)
	}

	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &MapService{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		cities:  model.HintCities,
		credits: cfg.Credits,
		tmpl:    tmpl,
	}, nil
}

func (s *MapService) pickCity() model.City {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cities[s.rng.IntN(len(s.cities))]
}

// Build 为每道题放置一个随机城市提示标记；没有题目时放置占位标记。得分和署名标记总是存在
func (s *MapService) Build(questionCount, score, rounds int) *model.MapDocument {
	doc := &model.MapDocument{
		CenterLat: mapCenterLat,
		CenterLon: mapCenterLon,
		Zoom:      mapZoom,
	}

	if questionCount <= 0 {
		doc.Markers = append(doc.Markers, model.Marker{
			Kind:    model.MarkerPlaceholder,
			Popup:   "No questions available.",
			Tooltip: "Error",
		})
	}
	for i := 0; i < questionCount; i++ {
		city := s.pickCity()
		doc.Markers = append(doc.Markers, model.Marker{
			Kind:    model.MarkerHint,
			Lat:     city.Lat,
			Lon:     city.Lon,
			Popup:   fmt.Sprintf("Hint: This question might be related to %s! 🌍", city.Name),
			Tooltip: fmt.Sprintf("Hint for Q%d", i+1),
		})
	}

	doc.Markers = append(doc.Markers,
		model.Marker{
			Kind:    model.MarkerScore,
			Popup:   fmt.Sprintf("Rounds Played: %d, Score: %d 🎯", rounds, score),
			Tooltip: "Your Score",
		},
		model.Marker{
			Kind:    model.MarkerCredits,
			Lat:     10,
			Popup:   s.credits,
			Tooltip: "Credits 🏆",
		},
	)
	return doc
}

// Render 将地图文档渲染为独立的 HTML 页面
func (s *MapService) Render(w io.Writer, doc *model.MapDocument) error {
	if err := s.tmpl.ExecuteTemplate(w, web.MapTemplate, doc); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	monitoring.MapRenderCounter.Inc()
	return nil
}
