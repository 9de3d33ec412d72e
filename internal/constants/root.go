package constants

import "time"

const (
	AppName            = "classlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/classlog"
	DefaultConfigPath  = "~/.config/classlog/classlog.db"
	ConfigFileName     = "config"
	ConfigFileType     = "yaml"
	EnvPrefix          = "CLASSLOG"
	EnvDBConnection    = "CLASSLOG_DB_CONNECTION"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "classlog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "classlog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.classlog"
	TrayAppExecutable      = "classlog-tray"
)
