package config

import (
	"log"

	"github.com/spf13/viper"
)

type ConfigHolder interface {
	GetStaticConfig() interface{}
	GetDynamicConfig() interface{}
}

func InitConfig(configHolder ConfigHolder) {
	viper.AutomaticEnv()
	staticConfig := configHolder.GetStaticConfig()
	cfg, ok := staticConfig.(*Configs)
	if !ok {
		log.Fatal("Failed to cast static config to *Configs")
	}
	bindEnvVars()
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Failed to unmarshal config from environment: %v", err)
	}
	applyDefaults(cfg)
}

func bindEnvVars() {
	// App configuration
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_port", "APP_PORT")

	// Model configuration
	viper.BindEnv("model_artifact_path", "MODEL_ARTIFACT_PATH")
}

func applyDefaults(cfg *Configs) {
	if cfg.AppName == "" {
		cfg.AppName = "irisserve"
	}
	if cfg.AppPort == 0 {
		cfg.AppPort = 8000
	}
	if cfg.ModelArtifactPath == "" {
		cfg.ModelArtifactPath = "model.json"
	}
}
