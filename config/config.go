package config

import (
	"strings"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type rootConfig struct {
	General GeneralConfig `mapstructure:"general"`
	Discord DiscordConfig `mapstructure:"discord"`
	Log     LogConfig     `mapstructure:"log"`
}

type GeneralConfig struct {
	SteamKey string `mapstructure:"steam_key"`
}

type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

type LogConfig struct {
	Level          string `mapstructure:"level"`
	ForceColours   bool   `mapstructure:"force_colours"`
	DisableColours bool   `mapstructure:"disable_colours"`
	ReportCaller   bool   `mapstructure:"report_caller"`
	FullTimestamp  bool   `mapstructure:"full_timestamp"`
}

// Default config values. Anything defined in the config file or env will
// overwrite them.
var (
	General GeneralConfig
	Discord DiscordConfig
	Log     LogConfig
)

// Read reads in the config file and any env variables set with the
// STEAMTECH prefix.
func Read(cfgFiles ...string) {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("Failed to get HOME dir: %v", err)
	}
	viper.AddConfigPath(home)
	viper.AddConfigPath(".")
	viper.SetConfigName("steamtech")
	viper.SetEnvPrefix("steamtech")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	found := false
	for _, cfgFile := range cfgFiles {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("Failed to read config file: %s", cfgFile)
		}
		found = true
	}
	if !found {
		if err := viper.ReadInConfig(); err == nil {
			found = true
		}
	}
	var cfg rootConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Invalid config file format: %v", err)
	}
	General = cfg.General
	Discord = cfg.Discord
	Log = cfg.Log

	configureLogger(log.StandardLogger())
	if found {
		log.Infof("Using config file: %s", viper.ConfigFileUsed())
	} else {
		log.Warnf("No configuration found, defaults used")
	}
}

func init() {
	viper.SetDefault("general.steam_key", "")

	viper.SetDefault("discord.token", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.force_colours", true)
	viper.SetDefault("log.disable_colours", false)
	viper.SetDefault("log.report_caller", false)
	viper.SetDefault("log.full_timestamp", false)
}

func configureLogger(l *log.Logger) {
	level, err := log.ParseLevel(Log.Level)
	if err != nil {
		log.Debugf("Invalid log level: %s", Log.Level)
		level = log.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{
		ForceColors:   Log.ForceColours,
		DisableColors: Log.DisableColours,
		FullTimestamp: Log.FullTimestamp,
	})
	l.SetReportCaller(Log.ReportCaller)
}
