// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/credentials/insecure"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"

	"github.com/AleutianAI/ContentCompare/services/comparator/analysis"
	"github.com/AleutianAI/ContentCompare/services/comparator/config"
	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
	"github.com/AleutianAI/ContentCompare/services/comparator/drift"
	"github.com/AleutianAI/ContentCompare/services/comparator/fetch"
	"github.com/AleutianAI/ContentCompare/services/comparator/routes"
	"github.com/AleutianAI/ContentCompare/services/comparator/services"
	"github.com/AleutianAI/ContentCompare/services/comparator/spelling"
)

const serviceName = "content-compare-service"

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing disabled")
		return func(context.Context) {}, nil
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildDictionaryCache assembles the spelling source from config.
// Returns nil when no dictionaries are configured; spelling then
// reports unavailable instead of failing requests.
func buildDictionaryCache(cfg *config.Config) *spelling.Cache {
	var sources []spelling.Source
	if len(cfg.Spelling.Files) > 0 {
		sources = append(sources, &spelling.FileWordListSource{Paths: cfg.Spelling.Files})
	}
	if len(cfg.Spelling.Dictionaries) > 0 {
		sources = append(sources, &spelling.HTTPWordListSource{URLs: cfg.Spelling.Dictionaries})
	}
	switch len(sources) {
	case 0:
		return nil
	case 1:
		return spelling.NewCache(sources[0])
	default:
		return spelling.NewCache(&spelling.MultiSource{Sources: sources})
	}
}

// buildDriftChain assembles the drift providers in priority order:
// OpenAI, Groq, Ollama, then the always-on lexical fallback.
func buildDriftChain(cfg *config.Config) *drift.Chain {
	var providers []drift.Provider
	if p := drift.NewOpenAIProvider(cfg.Drift.OpenAIKey, cfg.Drift.OpenAIModel); p != nil {
		providers = append(providers, p)
	}
	if p := drift.NewGroqProvider(cfg.Drift.GroqKey, cfg.Drift.GroqModel); p != nil {
		providers = append(providers, p)
	}
	if cfg.Drift.OllamaModel != "" {
		p, err := drift.NewOllamaProvider(cfg.Drift.OllamaURL, cfg.Drift.OllamaModel)
		if err != nil {
			slog.Warn("ollama drift provider disabled", "error", err)
		} else if p != nil {
			providers = append(providers, p)
		}
	}
	providers = append(providers, drift.NewLexicalProvider())
	return drift.NewChain(providers...)
}

func analyzerOptions(cfg *config.Config) services.Options {
	opts := services.DefaultOptions()
	opts.SEO.IdealDensity = cfg.Analysis.SEOIdealDensity
	opts.Duplication.InternalWeight = cfg.Analysis.DuplicationInternalWeight
	opts.Duplication.OverlapWeight = cfg.Analysis.DuplicationOverlapWeight
	opts.Links.Mode = analysis.LinkCheckMode(cfg.Links.Mode)
	opts.Links.Timeout = time.Duration(cfg.Links.TimeoutSeconds) * time.Second
	opts.Links.MaxURLs = cfg.Links.MaxURLs
	opts.Links.Concurrency = cfg.Links.Concurrency
	opts.Links.RatePerSecond = float64(cfg.Links.RatePerSecond)
	return opts
}

// reloadableComparison swaps the live orchestrator on config reload
// without dropping in-flight requests.
type reloadableComparison struct {
	current atomic.Pointer[services.Comparator]
}

func (r *reloadableComparison) Compare(ctx context.Context, req *datatypes.CompareRequest) (*datatypes.CompareResponse, error) {
	return r.current.Load().Compare(ctx, req)
}

func (r *reloadableComparison) AnalyzeContent(ctx context.Context, req *datatypes.CQIRequest) *datatypes.CQIResponse {
	return r.current.Load().AnalyzeContent(ctx, req)
}

func (r *reloadableComparison) DriftProviders() []string {
	return r.current.Load().DriftProviders()
}

func (r *reloadableComparison) Dictionaries() []string {
	return r.current.Load().Dictionaries()
}

func buildComparator(cfg *config.Config) *services.Comparator {
	fetcher := fetch.NewChromeFetcher(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
	linkClient := &http.Client{Timeout: time.Duration(cfg.Links.TimeoutSeconds) * time.Second}
	return services.NewComparator(fetcher, buildDictionaryCache(cfg), buildDriftChain(cfg), linkClient, analyzerOptions(cfg))
}

func main() {
	configPath := os.Getenv("COMPARATOR_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	comparison := &reloadableComparison{}
	comparison.current.Store(buildComparator(cfg))
	slog.Info("comparator ready",
		"driftProviders", comparison.DriftProviders(),
		"dictionaries", comparison.Dictionaries())

	if configPath != "" {
		go func() {
			err := config.Watch(context.Background(), configPath, func(next *config.Config) {
				if next.Server.Port != cfg.Server.Port {
					slog.Warn("server.port change requires a restart", "port", next.Server.Port)
				}
				comparison.current.Store(buildComparator(next))
				slog.Info("comparator rebuilt from new configuration")
			})
			if err != nil {
				slog.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))

	routes.SetupRoutes(router, comparison, cfg.Server.APIToken)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting the content compare server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
