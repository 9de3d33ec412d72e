package main

import (
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/logger"
)

// resolveDatabase picks the database target: the --config flag, then a
// database set in the config file or CLASSLOG_DATABASE, then
// CLASSLOG_DB_CONNECTION, then the OS keyring, then the default SQLite path.
func resolveDatabase(flag string, cfg *config.Config, getenv func(string) string, fromKeyring func() (string, error)) (target, source string) {
	if flag != "" {
		return flag, "flag"
	}
	if cfg.Database != "" && cfg.Database != constants.DefaultConfigPath {
		return cfg.Database, "config"
	}
	if dsn := getenv(constants.EnvDBConnection); dsn != "" {
		return dsn, "env"
	}
	if dsn, err := fromKeyring(); err == nil && dsn != "" {
		return dsn, "keyring"
	} else if err != nil {
		logger.Debug("No connection string in keyring", "error", err)
	}
	return constants.DefaultConfigPath, "default"
}
