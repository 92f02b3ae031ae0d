package config

import (
	"errors"
	"log/slog"
	"strings"

	werrors "wasmweight/internal/errors"
	"wasmweight/internal/history"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultDataRepo = history.DefaultDataRepo
	DefaultWindow   = history.DefaultWindow
	DefaultDBType   = "sqlite"
)

// Config is the typed view of the loaded settings.
type Config struct {
	TmpDir      string
	Window      int
	DataRepo    string
	MetricsFile string
	Verbose     bool
	LogFile     string
	DB          DBConfig
	Slack       SlackConfig
}

type DBConfig struct {
	Type string
	URL  string
}

type SlackConfig struct {
	Token   string
	Channel string
}

// Load initializes the configuration from an optional YAML file, a .env
// file and WASMWEIGHT_* environment variables. Without cfgFile it looks for
// wasmweight.yaml in the working directory; a missing file is not an error
// and nothing is written to disk.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("wasmweight")
	}

	viper.SetEnvPrefix("WASMWEIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("tmp_dir", "")
	viper.SetDefault("window", DefaultWindow)
	viper.SetDefault("data_repo", DefaultDataRepo)
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("db.type", DefaultDBType)
	viper.SetDefault("db.url", "")
	viper.SetDefault("notify.slack.token", "")
	viper.SetDefault("notify.slack.channel", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return werrors.NewParseError(configSource(cfgFile), err)
	}
	slog.Debug("using config file", "path", viper.ConfigFileUsed())
	return nil
}

func configSource(cfgFile string) string {
	if cfgFile != "" {
		return cfgFile
	}
	return "wasmweight.yaml"
}

// Get reads the current settings.
func Get() Config {
	return Config{
		TmpDir:      viper.GetString("tmp_dir"),
		Window:      viper.GetInt("window"),
		DataRepo:    viper.GetString("data_repo"),
		MetricsFile: viper.GetString("metrics_file"),
		Verbose:     viper.GetBool("verbose"),
		LogFile:     viper.GetString("log_file"),
		DB: DBConfig{
			Type: viper.GetString("db.type"),
			URL:  viper.GetString("db.url"),
		},
		Slack: SlackConfig{
			Token:   viper.GetString("notify.slack.token"),
			Channel: viper.GetString("notify.slack.channel"),
		},
	}
}
