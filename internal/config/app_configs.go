package config

var (
	appConfig AppConfig
)

type AppConfig struct {
	Configs        Configs
	DynamicConfigs DynamicConfigs
}

func (cfg *AppConfig) GetStaticConfig() interface{} {
	return &cfg.Configs
}

func (cfg *AppConfig) GetDynamicConfig() interface{} {
	return &cfg.DynamicConfigs
}

func GetAppConfig() *AppConfig {
	return &appConfig
}

type Configs struct {
	AppName           string `mapstructure:"app_name"`
	AppEnv            string `mapstructure:"app_env"`
	AppLogLevel       string `mapstructure:"app_log_level"`
	AppPort           int    `mapstructure:"app_port"`
	ModelArtifactPath string `mapstructure:"model_artifact_path"`
}

type DynamicConfigs struct {
}
