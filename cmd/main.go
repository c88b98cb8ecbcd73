package main

import (
	"context"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"meetscribe/internal/config"
	"meetscribe/internal/delivery"
	"meetscribe/internal/domain"
	"meetscribe/internal/domain/stations"
	"meetscribe/internal/infra"
)

func main() {

	// ENV
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	// REPOS
	userRepo := infra.NewPostgresUserRepo(pool)
	meetingRepo := infra.NewPostgresMeetingRepo(pool)

	// SERVICES
	authService := domain.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	normalizer := infra.NewFfmpegNormalizer(cfg.FfmpegBin)
	transcriber := infra.NewWhisperXTranscriber(cfg.PythonBin, cfg.WhisperXScript, cfg.HFToken)
	summarizer := infra.NewOllamaSummarizer(cfg.OllamaURL, cfg.OllamaModel)

	// STATIONS
	s1 := stations.NewS1Normalize(normalizer, cfg.NormalizeTimeout)
	s2 := stations.NewS2Transcribe(transcriber, cfg.TranscribeTimeout)
	s3 := stations.NewS3Summarize(summarizer, cfg.SummarizeTimeout)

	// PIPELINE
	meetingService := domain.NewMeetingService(
		meetingRepo,
		s1, s2, s3,
		cfg.UploadsDir,
		cfg.MaxUploadBytes,
	)

	// HANDLERS
	authHandler := delivery.NewAuthHandler(authService, zl)
	meetingHandler := delivery.NewMeetingHandler(meetingRepo, meetingService, cfg.UploadsDir, cfg.MaxUploadBytes, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:8081", // Expo web dev
			"http://localhost:19006",
			"http://localhost:19000",
			"http://localhost:5173",
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(delivery.RequestLogger(zl))

	delivery.RegisterRoutes(r, authHandler, authService, meetingHandler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
