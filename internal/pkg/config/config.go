// internal/pkg/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "configs/config.yaml"
	defaultSQLiteFile = "shop.db"
)

// Config 是服务的完整配置，先从 YAML 文件加载，再由环境变量覆盖。
type Config struct {
	App   AppConfig   `yaml:"app"`
	Infra InfraConfig `yaml:"infra"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"logLevel"`
	SeedCatalog bool   `yaml:"seedCatalog"`
}

type InfraConfig struct {
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
	Nacos     NacosConfig     `yaml:"nacos"`
	Zookeeper ZookeeperConfig `yaml:"zookeeper"`
}

// DatabaseConfig 支持 mysql 和 sqlite 两种驱动。
// mysql 可以直接给 DSN，也可以给分项配置由 FormatDSN 拼装。
type DatabaseConfig struct {
	Driver   string      `yaml:"driver"`
	DSN      string      `yaml:"dsn"`
	MySQL    MySQLConfig `yaml:"mysql"`
	LogLevel string      `yaml:"logLevel"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addrs string        `yaml:"addrs"`
	TTL   time.Duration `yaml:"ttl"`
}

type KafkaConfig struct {
	Brokers   string `yaml:"brokers"`
	CartTopic string `yaml:"cartTopic"`
}

type JaegerConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type NacosConfig struct {
	ServerAddrs string `yaml:"serverAddrs"`
	Namespace   string `yaml:"namespace"`
	Group       string `yaml:"group"`
}

type ZookeeperConfig struct {
	Servers        string        `yaml:"servers"`
	SessionTimeout time.Duration `yaml:"sessionTimeout"`
}

// Default 返回本地开发用的默认配置：sqlite 存储，所有外部中间件关闭。
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "shop-service",
			Port:        8080,
			LogLevel:    "info",
			SeedCatalog: true,
		},
		Infra: InfraConfig{
			Database: DatabaseConfig{
				Driver:   "sqlite",
				LogLevel: "warn",
				MySQL:    MySQLConfig{Host: "localhost", Port: 3306, Name: "shop"},
			},
			Redis:     RedisConfig{TTL: 5 * time.Minute},
			Kafka:     KafkaConfig{CartTopic: "cart-events"},
			Nacos:     NacosConfig{Group: "DEFAULT_GROUP"},
			Zookeeper: ZookeeperConfig{SessionTimeout: 5 * time.Second},
		},
	}
}

// Load 读取 CONFIG_FILE 指向的 YAML（默认 configs/config.yaml，不存在时跳过），
// 然后应用环境变量覆盖并校验。
func Load() (*Config, error) {
	cfg := Default()

	path := getEnv("CONFIG_FILE", defaultConfigFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	case os.IsNotExist(err) && path == defaultConfigFile:
		// 没有配置文件时只用默认值和环境变量
	default:
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid PORT %q", v)
		}
		c.App.Port = port
	}
	if v, ok := os.LookupEnv("SEED_CATALOG"); ok {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid SEED_CATALOG %q", v)
		}
		c.App.SeedCatalog = seed
	}
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)

	db := &c.Infra.Database
	db.Driver = getEnv("DB_DRIVER", db.Driver)
	db.DSN = getEnv("DB_DSN", db.DSN)
	db.MySQL.Host = getEnv("MYSQL_HOST", db.MySQL.Host)
	db.MySQL.User = getEnv("MYSQL_USER", db.MySQL.User)
	db.MySQL.Password = getEnv("MYSQL_PASSWORD", db.MySQL.Password)
	db.MySQL.Name = getEnv("MYSQL_DATABASE", db.MySQL.Name)
	if v, ok := os.LookupEnv("MYSQL_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid MYSQL_PORT %q", v)
		}
		db.MySQL.Port = port
	}

	c.Infra.Redis.Addrs = getEnv("REDIS_ADDRS", c.Infra.Redis.Addrs)
	c.Infra.Kafka.Brokers = getEnv("KAFKA_BROKERS", c.Infra.Kafka.Brokers)
	c.Infra.Kafka.CartTopic = getEnv("KAFKA_CART_TOPIC", c.Infra.Kafka.CartTopic)
	c.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", c.Infra.Jaeger.Endpoint)
	c.Infra.Nacos.ServerAddrs = getEnv("NACOS_SERVER_ADDRS", c.Infra.Nacos.ServerAddrs)
	c.Infra.Nacos.Namespace = getEnv("NACOS_NAMESPACE", c.Infra.Nacos.Namespace)
	c.Infra.Nacos.Group = getEnv("NACOS_GROUP", c.Infra.Nacos.Group)
	c.Infra.Zookeeper.Servers = getEnv("ZK_SERVERS", c.Infra.Zookeeper.Servers)
	return nil
}

// Validate 检查启动所必需的配置项。
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return errors.Errorf("invalid port %d", c.App.Port)
	}
	switch c.Infra.Database.Driver {
	case "sqlite":
	case "mysql":
		if c.Infra.Database.DSN == "" && c.Infra.Database.MySQL.Host == "" {
			return errors.New("mysql driver requires a dsn or a host")
		}
	default:
		return errors.Errorf("unsupported database driver %q", c.Infra.Database.Driver)
	}
	return nil
}

// SQLitePath 返回 sqlite 数据库文件，未配置时使用工作目录下的 shop.db。
func (d DatabaseConfig) SQLitePath() string {
	if d.DSN != "" {
		return d.DSN
	}
	return defaultSQLiteFile
}

// MySQLDSN 返回 mysql 连接串。显式配置的 DSN 优先。
func (d DatabaseConfig) MySQLDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	mc := mysql.NewConfig()
	mc.User = d.MySQL.User
	mc.Passwd = d.MySQL.Password
	mc.Net = "tcp"
	mc.Addr = d.MySQL.Host + ":" + strconv.Itoa(d.MySQL.Port)
	mc.DBName = d.MySQL.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// SplitList 把逗号分隔的地址列表拆开，忽略空项。
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv 从环境变量中读取配置，不存在时返回 fallback。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
