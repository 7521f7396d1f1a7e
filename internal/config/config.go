package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// EnvPrefix is the prefix of every environment variable read by the services
const EnvPrefix = "CASPER_MARKET"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// Enabled reports whether a NATS URL was configured
func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

// CasperConfig holds node and chain configuration
type CasperConfig struct {
	NodeAddress        string        `mapstructure:"node_address"`
	EventStreamAddress string        `mapstructure:"event_stream_address"`
	ChainName          string        `mapstructure:"chain_name"`
	PaymentAmount      string        `mapstructure:"payment_amount"`
	GasPrice           uint64        `mapstructure:"gas_price"`
	DeployTTL          time.Duration `mapstructure:"deploy_ttl"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
}

// ContractsConfig holds the NFT and marketplace contract references
type ContractsConfig struct {
	NFT    domain.ContractReference `mapstructure:"nft"`
	Market domain.ContractReference `mapstructure:"market"`
	// OfferPurseWasm is the path of the session module that buys a market item
	OfferPurseWasm string `mapstructure:"offer_purse_wasm"`
}

// Validate checks both contract references
func (c ContractsConfig) Validate() error {
	if err := c.NFT.Validate(); err != nil {
		return fmt.Errorf("contracts.nft: %w", err)
	}
	if err := c.Market.Validate(); err != nil {
		return fmt.Errorf("contracts.market: %w", err)
	}
	return nil
}

// PollerConfig holds finality polling configuration
type PollerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// EmitterConfig holds event stream follower configuration
type EmitterConfig struct {
	CursorSaveEvery    int           `mapstructure:"cursor_save_every"`
	CursorSaveInterval time.Duration `mapstructure:"cursor_save_interval"`
	ReconnectMaxWait   time.Duration `mapstructure:"reconnect_max_wait"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// AllowedOrigins lists the dapp origins allowed by CORS, empty allows any
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Casper     CasperConfig    `mapstructure:"casper"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Poller     PollerConfig    `mapstructure:"poller"`
	// FollowEvents runs an in-process stream follower that refreshes cached views
	FollowEvents bool `mapstructure:"follow_events"`
}

// EventEmitterConfig holds configuration for the event-emitter
type EventEmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Casper     CasperConfig    `mapstructure:"casper"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Emitter    EmitterConfig   `mapstructure:"emitter"`
}

// CLIConfig holds configuration for marketctl
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Casper     CasperConfig    `mapstructure:"casper"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Poller     PollerConfig    `mapstructure:"poller"`
	// SecretKeyPath points at a hex-encoded private key used to sign deploys
	SecretKeyPath string `mapstructure:"secret_key_path"`
	// KeyAlgorithm is "ed25519" or "secp256k1"
	KeyAlgorithm string `mapstructure:"key_algorithm"`
}

func setCasperDefaults(v *viper.Viper) {
	v.SetDefault("casper.node_address", "http://localhost:7777/rpc")
	v.SetDefault("casper.event_stream_address", "http://localhost:9999/events/main")
	v.SetDefault("casper.chain_name", domain.DEFAULT_CHAIN_NAME)
	v.SetDefault("casper.payment_amount", domain.DEFAULT_PAYMENT_AMOUNT)
	v.SetDefault("casper.gas_price", domain.DEFAULT_GAS_PRICE)
	v.SetDefault("casper.deploy_ttl", domain.DEFAULT_DEPLOY_TTL)
	v.SetDefault("casper.request_timeout", "30s")
}

func setPollerDefaults(v *viper.Viper) {
	v.SetDefault("poller.interval", domain.DEFAULT_POLL_INTERVAL)
	v.SetDefault("poller.max_attempts", domain.DEFAULT_POLL_MAX_ATTEMPTS)
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("follow_events", true)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	setCasperDefaults(v)
	setPollerDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadEventEmitterConfig loads configuration for the event-emitter
func LoadEventEmitterConfig(configFile string, envPath string) (*EventEmitterConfig, error) {
	v := configureViper("event-emitter", configFile, envPath)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CASPER_EVENTS")
	v.SetDefault("emitter.cursor_save_every", 50)
	v.SetDefault("emitter.cursor_save_interval", "5s")
	v.SetDefault("emitter.reconnect_max_wait", "1m")
	setCasperDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config EventEmitterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadCLIConfig loads configuration for marketctl
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("marketctl", configFile, envPath)

	v.SetDefault("key_algorithm", "ed25519")
	setCasperDefaults(v)
	setPollerDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config CLIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// readInConfig reads the config file, falling back to environment variables when none exists
func readInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// so they reach the config structs when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Casper
		"casper.node_address",
		"casper.event_stream_address",
		"casper.chain_name",
		"casper.payment_amount",
		"casper.gas_price",
		"casper.deploy_ttl",
		"casper.request_timeout",
		// Contracts
		"contracts.nft.contract_hash",
		"contracts.nft.contract_package_hash",
		"contracts.market.contract_hash",
		"contracts.market.contract_package_hash",
		"contracts.offer_purse_wasm",
		// Poller
		"poller.interval",
		"poller.max_attempts",
		// Emitter
		"emitter.cursor_save_every",
		"emitter.cursor_save_interval",
		"emitter.reconnect_max_wait",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		"follow_events",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// CLI
		"secret_key_path",
		"key_algorithm",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env overlays: shared base, then local, then per-service local
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Enabled reports whether a database host was configured
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}
