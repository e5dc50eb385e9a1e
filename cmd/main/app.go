package main

import (
	"fmt"
	"log"

	"github.com/torresnicolas0/clima-chatbot/src/cache"
	"github.com/torresnicolas0/clima-chatbot/src/classifier"
	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/corrector"
	"github.com/torresnicolas0/clima-chatbot/src/gazetteer"
	"github.com/torresnicolas0/clima-chatbot/src/inference"
	"github.com/torresnicolas0/clima-chatbot/src/models"
	"github.com/torresnicolas0/clima-chatbot/src/nlp"
	"github.com/torresnicolas0/clima-chatbot/src/normalizer"
	"github.com/torresnicolas0/clima-chatbot/src/pipeline"
	"github.com/torresnicolas0/clima-chatbot/src/resolver"
	"github.com/torresnicolas0/clima-chatbot/src/router"
	"github.com/torresnicolas0/clima-chatbot/src/synth"
	"github.com/torresnicolas0/clima-chatbot/src/weather"
)

// app holds the long-lived components shared by every front-end.
type app struct {
	pipeline *pipeline.QueryPipeline
	cache    *cache.WeatherCache
}

func buildApp(cfg *config.Config) (*app, error) {
	cities, err := gazetteer.Load(cfg.Pipeline.GazetteerPath)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Gazetteer loaded: %d city names", cities.Len())

	nb, vectorizer, err := classifier.LoadModel(cfg.Pipeline.ModelPath)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Intent model loaded: %d classes, %d terms", len(nb.Classes()), vectorizer.Size())

	lang := nlp.NewRulePipeline(cities)

	fixer, err := newCorrector(cfg)
	if err != nil {
		return nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	weatherCache := cache.NewWeatherCache(
		store,
		weather.NewOpenWeatherProvider(&cfg.Weather),
		cfg.Weather.APIKey,
		cache.WithTTL(cfg.Weather.CacheTTL),
	)
	log.Printf("✓ Weather cache ready (%s, ttl %s)", cfg.Weather.CacheBackend, cfg.Weather.CacheTTL)

	zones, err := synth.NewZoneFinder()
	if err != nil {
		log.Printf("⚠️  Time-zone finder unavailable, using provider offsets: %v", err)
	}

	queryPipeline := pipeline.NewQueryPipeline(
		normalizer.NewTextNormalizer(&cfg.Pipeline, fixer, lang, cities),
		router.NewQueryRouter(&cfg.Pipeline, lang, vectorizer, nb, nb.Keywords()),
		resolver.NewCityResolver(lang, cities),
		synth.NewSynthesizer(&cfg.Weather, weatherCache, zones),
	)
	log.Printf("✓ Query pipeline initialized (confidence threshold %.2f)", cfg.Pipeline.ConfidenceThreshold)

	return &app{pipeline: queryPipeline, cache: weatherCache}, nil
}

func newCorrector(cfg *config.Config) (models.Corrector, error) {
	switch cfg.Corrector.Backend {
	case "languagetool":
		log.Printf("✓ LanguageTool corrector: %s", cfg.Corrector.URL)
		return corrector.NewLanguageTool(&cfg.Corrector), nil
	case "llm":
		llmClient, err := inference.NewLLMClient(&cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		log.Printf("✓ LLM corrector: %s", cfg.LLM.Model)
		return corrector.NewLLMCorrector(llmClient), nil
	default:
		log.Println("ℹ️  Grammar correction disabled")
		return corrector.Noop{}, nil
	}
}

func newStore(cfg *config.Config) (cache.Store, error) {
	if cfg.Weather.CacheBackend != "redis" {
		return cache.NewMemoryStore(), nil
	}
	store, err := cache.NewRedisStore(&cfg.Redis, cfg.Weather.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	log.Printf("✓ Redis connected")
	return store, nil
}
