package main

import (
	"github.com/Meesho/BharatMLStack/irisserve/internal/config"
	"github.com/Meesho/BharatMLStack/irisserve/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/irisserve/internal/health"
	"github.com/Meesho/BharatMLStack/irisserve/internal/model"
	"github.com/Meesho/BharatMLStack/irisserve/internal/server/http"
	"github.com/Meesho/BharatMLStack/irisserve/pkg/logger"
	"github.com/Meesho/BharatMLStack/irisserve/pkg/metric"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"
)

func main() {
	config.InitConfig(config.GetAppConfig())
	cfg := config.GetAppConfig().Configs
	logger.Init()

	tracker := health.NewTracker()
	metrics := metric.NewRecorder()

	// a missing or broken artifact must abort startup, never serve half-initialized
	handle, err := model.Load(cfg.ModelArtifactPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load model artifact")
	}
	tracker.MarkModelReady()
	metrics.SetModelVersion(handle.Version())
	log.Info().Msgf("Model loaded, version %s", handle.Version())

	engine := predict.NewHandler(handle)
	http.Init(cfg, engine, tracker, metrics)

	log.Info().Msgf("Starting irisserve HTTP server on port :%d", cfg.AppPort)
	if err := http.Instance().Run(cfg.AppPort); err != nil {
		log.Panic().Err(err).Msg("Error running irisserve api-server")
	}
}
