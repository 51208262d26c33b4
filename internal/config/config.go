package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Pipeline    Pipeline    `mapstructure:",squash"`
	RefreshSync RefreshSync `mapstructure:",squash"`
	Artifact    Artifact    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	TenantID      string `mapstructure:"tenant_id"`
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string    `mapstructure:"meta_base_url"`
	URL            string    `mapstructure:"meta_url"`
	Version        string    `mapstructure:"meta_version"`
	AccessToken    string    `mapstructure:"meta_access_token"`
	AppID          string    `mapstructure:"meta_app_id"`
	AppSecret      string    `mapstructure:"meta_app_secret"`
	LongLivedToken string    `mapstructure:"meta_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`

	PageSize              int     `mapstructure:"meta_page_size"`
	MaxPages              int     `mapstructure:"meta_max_pages"`
	RequestTimeoutSeconds int     `mapstructure:"meta_request_timeout_seconds"`
	LookupTimeoutSeconds  int     `mapstructure:"meta_lookup_timeout_seconds"`
	RequestsPerSecond     float64 `mapstructure:"meta_requests_per_second"`
	CreativeChunkSize     int     `mapstructure:"meta_creative_chunk_size"`
	CreativeWorkers       int     `mapstructure:"meta_creative_workers"`
}

type Pipeline struct {
	WindowsDaysRaw      []string `mapstructure:"pipeline_windows_days"`
	WindowsDays         []int    `mapstructure:"-"`
	CPASanityCeiling    float64  `mapstructure:"pipeline_cpa_sanity_ceiling"`
	TruncationThreshold float64  `mapstructure:"pipeline_truncation_threshold"`
}

type RefreshSync struct {
	CronSchedule          string `mapstructure:"refresh_sync_cron"`
	LookbackDays          int    `mapstructure:"refresh_sync_lookback_days"`
	RequestDelaySeconds   int    `mapstructure:"refresh_sync_request_delay_seconds"`
	MaxConcurrentAccounts int    `mapstructure:"refresh_sync_max_concurrent_accounts"`
	DisableThreshold      int    `mapstructure:"refresh_sync_disable_threshold"`
	Enabled               bool   `mapstructure:"refresh_sync_enabled"`
}

type Artifact struct {
	RootDir string `mapstructure:"artifact_root_dir"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insights")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_URL", "https://graph.facebook.com/v22.0")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL

	viper.SetDefault("META_PAGE_SIZE", 500)
	viper.SetDefault("META_MAX_PAGES", 0) // 0 = esgotar a paginação
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 60)
	viper.SetDefault("META_LOOKUP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("META_REQUESTS_PER_SECOND", 2.0)
	viper.SetDefault("META_CREATIVE_CHUNK_SIZE", 50) // Limite de ids por requisição da Graph API
	viper.SetDefault("META_CREATIVE_WORKERS", 10)

	viper.SetDefault("PIPELINE_WINDOWS_DAYS", "3,7,14,30,90")
	viper.SetDefault("PIPELINE_CPA_SANITY_CEILING", 10000.0)
	viper.SetDefault("PIPELINE_TRUNCATION_THRESHOLD", 0.6)

	// Defaults para a sincronização diária de insights
	viper.SetDefault("REFRESH_SYNC_CRON", "0 3 * * *")         // Todos os dias às 3h da manhã
	viper.SetDefault("REFRESH_SYNC_LOOKBACK_DAYS", 7)          // 7 dias para buscar dados
	viper.SetDefault("REFRESH_SYNC_REQUEST_DELAY_SECONDS", 2)  // 2 segundos entre requisições
	viper.SetDefault("REFRESH_SYNC_MAX_CONCURRENT_ACCOUNTS", 1) // Contas processadas em sequência
	viper.SetDefault("REFRESH_SYNC_DISABLE_THRESHOLD", 3)      // Falhas consecutivas até desabilitar a conta
	viper.SetDefault("REFRESH_SYNC_ENABLED", false)

	viper.SetDefault("ARTIFACT_ROOT_DIR", "./data/artifacts")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("TENANT_ID", "default")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 50)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	config.Pipeline.WindowsDays = parseWindows(config.Pipeline.WindowsDaysRaw)
	if len(config.Pipeline.WindowsDays) == 0 {
		config.Pipeline.WindowsDays = []int{3, 7, 14, 30, 90}
	}

	return config, nil
}

// parseWindows converte a lista de janelas configurada (strings) para dias inteiros
func parseWindows(raw []string) []int {
	windows := make([]int, 0, len(raw))
	for _, value := range raw {
		days, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || days <= 0 {
			logrus.Warnf("Janela de agregação inválida na configuração: %q", value)
			continue
		}
		windows = append(windows, days)
	}

	sort.Ints(windows)
	return windows
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
