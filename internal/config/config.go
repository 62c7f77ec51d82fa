package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"talentflow"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string `envconfig:"TALENTFLOW_ADDRESS" default:":3443"`
	MetricsAddress  string `envconfig:"TALENTFLOW_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string `envconfig:"TALENTFLOW_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string `envconfig:"TALENTFLOW_LOG_LEVEL" default:"info"`
	Auth            Auth
	MigrationFolder string `envconfig:"TALENTFLOW_MIGRATIONS_FOLDER" default:""`
}

type Auth struct {
	AuthenticationType string `envconfig:"TALENTFLOW_AUTH" default:""`
	JwkCertURL         string `envconfig:"TALENTFLOW_JWK_URL" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a configuration backed by an in-memory sqlite
// database. Used by the test suites.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			// shared cache keeps all pooled connections on one database
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:  ":3443",
			LogLevel: "info",
		},
	}
}
