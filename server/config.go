package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	grpcAddressKey     = "grpc_address"
	httpAddressKey     = "http_address"
	dbPathKey          = "db_path"
	clientURLKey       = "client_url"
	logLevelKey        = "log_level"
	logFormatKey       = "log_format"
	historyLimitKey    = "history_limit"
	typingTimeoutKey   = "typing_timeout"
	shutdownTimeoutKey = "shutdown_timeout"
	wsRateKey          = "ws_rate"
	wsBurstKey         = "ws_burst"
)

type Config struct {
	GRPCAddress     string
	HTTPAddress     string
	DBPath          string
	ClientURL       string
	LogLevel        string
	LogFormat       string
	HistoryLimit    int
	TypingTimeout   time.Duration
	ShutdownTimeout time.Duration
	WSRate          float64
	WSBurst         int
}

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.chatroom.yaml)")
	flags.String("grpc-address", ":50051", "gRPC listen address")
	flags.String("http-address", ":3000", "HTTP and WebSocket listen address")
	flags.String("db-path", "./chatroom.db", "SQLite database file for the room catalog")
	flags.String("client-url", "*", "allowed CORS origin")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	viper.BindPFlag(grpcAddressKey, flags.Lookup("grpc-address"))
	viper.BindPFlag(httpAddressKey, flags.Lookup("http-address"))
	viper.BindPFlag(dbPathKey, flags.Lookup("db-path"))
	viper.BindPFlag(clientURLKey, flags.Lookup("client-url"))
	viper.BindPFlag(logLevelKey, flags.Lookup("log-level"))
	viper.BindPFlag(logFormatKey, flags.Lookup("log-format"))

	viper.SetDefault(grpcAddressKey, ":50051")
	viper.SetDefault(httpAddressKey, ":3000")
	viper.SetDefault(dbPathKey, "./chatroom.db")
	viper.SetDefault(clientURLKey, "*")
	viper.SetDefault(logLevelKey, "info")
	viper.SetDefault(logFormatKey, "text")
	viper.SetDefault(historyLimitKey, 50)
	viper.SetDefault(typingTimeoutKey, 3*time.Second)
	viper.SetDefault(shutdownTimeoutKey, 30*time.Second)
	viper.SetDefault(wsRateKey, 20)
	viper.SetDefault(wsBurstKey, 40)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".chatroom")
	}

	viper.SetEnvPrefix("chatroom")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

func loadConfig() Config {
	return Config{
		GRPCAddress:     viper.GetString(grpcAddressKey),
		HTTPAddress:     viper.GetString(httpAddressKey),
		DBPath:          viper.GetString(dbPathKey),
		ClientURL:       viper.GetString(clientURLKey),
		LogLevel:        viper.GetString(logLevelKey),
		LogFormat:       viper.GetString(logFormatKey),
		HistoryLimit:    viper.GetInt(historyLimitKey),
		TypingTimeout:   viper.GetDuration(typingTimeoutKey),
		ShutdownTimeout: viper.GetDuration(shutdownTimeoutKey),
		WSRate:          viper.GetFloat64(wsRateKey),
		WSBurst:         viper.GetInt(wsBurstKey),
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
