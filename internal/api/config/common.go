package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 COMMUNITY_* 可覆盖文件中的值
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("community")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回仅包含默认值的配置，用于测试
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Session: SessionConfig{TTL: 1800, CookieName: "JSESSIONID"},
		Image: ImageConfig{
			MaxSize:  5 << 20,
			MaxCount: 5,
			Storage:  "gateway",
			Gateway:  GatewayConfig{Timeout: 10},
		},
		Feed: FeedConfig{Top10CacheTTL: 120},
		Cron: CronConfig{Top10Spec: "@every 1m", ImageCleanupSpec: "@daily"},
	}
}

func setDefaults() {
	d := Default()
	viper.SetDefault("server.port", d.Server.Port)
	viper.SetDefault("session.ttl", d.Session.TTL)
	viper.SetDefault("session.cookie_name", d.Session.CookieName)
	viper.SetDefault("session.cookie_secure", false)
	viper.SetDefault("image.max_size", d.Image.MaxSize)
	viper.SetDefault("image.max_count", d.Image.MaxCount)
	viper.SetDefault("image.storage", d.Image.Storage)
	viper.SetDefault("image.gateway.timeout", d.Image.Gateway.Timeout)
	viper.SetDefault("feed.top10_cache_ttl", d.Feed.Top10CacheTTL)
	viper.SetDefault("cron.top10_spec", d.Cron.Top10Spec)
	viper.SetDefault("cron.image_cleanup_spec", d.Cron.ImageCleanupSpec)
}
