package config

// Config 配置主体
type Config struct {
	Server              ServerConfig        `mapstructure:"server"`
	DB                  DBConfig            `mapstructure:"database"`
	Redis               RedisConfig         `mapstructure:"redis"`
	Session             SessionConfig       `mapstructure:"session"`
	Image               ImageConfig         `mapstructure:"image"`
	MinIO               MinIOConfig         `mapstructure:"minio"`
	Feed                FeedConfig          `mapstructure:"feed"`
	Cron                CronConfig          `mapstructure:"cron"`
	Kafka               KafkaConfig         `mapstructure:"kafka"`
	KafkaStatusConsumer KafkaStatusConsumer `mapstructure:"kafka_status_consumer"`
	Logstash            LogstashConfig      `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// SessionConfig 会话配置，TTL 单位为秒
type SessionConfig struct {
	TTL          int    `mapstructure:"ttl"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// ImageConfig 图片上传配置
type ImageConfig struct {
	MaxSize           int64         `mapstructure:"max_size"`
	MaxCount          int           `mapstructure:"max_count"`
	Storage           string        `mapstructure:"storage"`
	DefaultProfileURL string        `mapstructure:"default_profile_url"`
	Gateway           GatewayConfig `mapstructure:"gateway"`
}

// GatewayConfig 图片网关，Timeout 单位为秒
type GatewayConfig struct {
	PostURL    string `mapstructure:"post_url"`
	ProfileURL string `mapstructure:"profile_url"`
	Timeout    int    `mapstructure:"timeout"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// FeedConfig 帖子列表配置，缓存 TTL 单位为秒
type FeedConfig struct {
	Top10CacheTTL int `mapstructure:"top10_cache_ttl"`
}

type CronConfig struct {
	Top10Spec        string `mapstructure:"top10_spec"`
	ImageCleanupSpec string `mapstructure:"image_cleanup_spec"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

type KafkaStatusConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
