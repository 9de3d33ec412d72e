package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/cli/backups"
	"github.com/julianstephens/classlog/internal/cli/days"
	"github.com/julianstephens/classlog/internal/cli/profile"
	"github.com/julianstephens/classlog/internal/cli/remind"
	"github.com/julianstephens/classlog/internal/cli/reports"
	"github.com/julianstephens/classlog/internal/cli/settings"
	"github.com/julianstephens/classlog/internal/cli/system"
	"github.com/julianstephens/classlog/internal/cli/wellness"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/keyring"
	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/slots"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string"`
	ConfigDir string `help:"Directory holding config.yaml, .env and logs." default:"${config_dir}"`
	User      string `help:"User id to act as instead of the configured one."`
	DebugLog  bool   `name:"debug" help:"Log at debug level and mirror logs to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize classlog storage and the user profile."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Dashboard reports.DashboardCmd `cmd:"" help:"Print productivity, attendance and reminders at a glance."`

	Day struct {
		Slots   days.SlotsCmd   `cmd:"" help:"List a day's slots with what is logged in them."`
		Show    days.ShowCmd    `cmd:"" help:"Show a logged day."`
		Log     days.LogCmd     `cmd:"" help:"Log fields of one hour."`
		Fill    days.FillCmd    `cmd:"" help:"Fill a whole day interactively."`
		Type    days.TypeCmd    `cmd:"" help:"Switch a day between college and non-college."`
		Reflect days.ReflectCmd `cmd:"" help:"Set a day's reflection."`
	} `cmd:"" help:"Track days hour by hour."`

	Attendance   reports.AttendanceCmd   `cmd:"" help:"Report attendance per subject."`
	Productivity reports.ProductivityCmd `cmd:"" help:"Show the productivity index of a window."`

	Health struct {
		Log  wellness.HealthLogCmd  `cmd:"" help:"Log a day's health metrics."`
		Show wellness.HealthShowCmd `cmd:"" help:"Show recent health metrics and averages." default:"1"`
	} `cmd:"" help:"Track health metrics."`

	Remind struct {
		Add    remind.AddCmd    `cmd:"" help:"Add a deadline reminder."`
		List   remind.ListCmd   `cmd:"" help:"List reminders by deadline." default:"1"`
		Done   remind.DoneCmd   `cmd:"" help:"Toggle a reminder between done and open."`
		Delete remind.DeleteCmd `cmd:"" help:"Delete a reminder."`
		Export remind.ExportCmd `cmd:"" help:"Export open reminders as an iCalendar file."`
		Notify remind.NotifyCmd `cmd:"" help:"Send desktop notifications for due reminders."`
	} `cmd:"" help:"Manage deadline reminders."`

	Profile struct {
		Show     profile.ProfileShowCmd   `cmd:"" help:"Show the schedule profile and semesters." default:"1"`
		Set      profile.ProfileSetCmd    `cmd:"" help:"Set a schedule profile field."`
		Export   profile.ProfileExportCmd `cmd:"" help:"Export the profile as YAML."`
		Import   profile.ProfileImportCmd `cmd:"" help:"Replace the profile from a YAML file."`
		Activity struct {
			Add    profile.ActivityAddCmd    `cmd:"" help:"Add an activity."`
			Remove profile.ActivityRemoveCmd `cmd:"" help:"Remove an activity."`
			List   profile.ActivityListCmd   `cmd:"" help:"List activities." default:"1"`
		} `cmd:"" help:"Manage productive and unproductive activities."`
		Semester struct {
			Add    profile.SemesterAddCmd    `cmd:"" help:"Add a semester."`
			Remove profile.SemesterRemoveCmd `cmd:"" help:"Remove a semester."`
			Set    profile.SemesterSetCmd    `cmd:"" help:"Set a semester field."`
			List   profile.SemesterListCmd   `cmd:"" help:"List semesters." default:"1"`
		} `cmd:"" help:"Manage semesters."`
		Subject struct {
			Add    profile.SubjectAddCmd    `cmd:"" help:"Add a subject to a semester."`
			Remove profile.SubjectRemoveCmd `cmd:"" help:"Remove a subject from a semester."`
			Set    profile.SubjectSetCmd    `cmd:"" help:"Set a subject field."`
		} `cmd:"" help:"Manage a semester's subjects."`
		Unit struct {
			Set  profile.UnitSetCmd  `cmd:"" help:"Name a subject unit."`
			List profile.UnitListCmd `cmd:"" help:"List a subject's units." default:"withargs"`
		} `cmd:"" help:"Manage subject units."`
	} `cmd:"" help:"Manage the schedule profile and roster."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is available." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Debug    system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hour-by-hour college day tracker with attendance and productivity reports"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		clerrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.DebugLog || cfg.Debug,
		ConfigDir: cfg.Dir(),
		Level:     cfg.LogLevel,
	}); err != nil {
		clerrors.Fatal(err)
	}

	target, source := resolveDatabase(CLI.Config, cfg, os.Getenv, keyring.GetConnectionString)
	logger.Debug("Resolved database", "source", source)
	store, err := cli.OpenStore(target)
	if err != nil {
		clerrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
		Slots:  slots.New(),
		UserID: CLI.User,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close database", "error", closeErr)
	}
	clerrors.Fatal(err)
	logger.Close()
}
