package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/backup"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/slots"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/utils"
	"github.com/julianstephens/classlog/internal/validation"
)

// ErrNoUser is returned by commands that need an initialised user.
var ErrNoUser = errors.New("no user configured, run 'classlog init' first")

type Context struct {
	Store  storage.Provider
	Config *config.Config
	Slots  *slots.Generator

	// Out receives command output; nil means stdout.
	Out io.Writer
	// Now is the clock; nil means time.Now.
	Now func() time.Time
	// UserID overrides the configured user when set.
	UserID string
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Location is the configured timezone, or the local one.
func (c *Context) Location() *time.Location {
	if c.Config == nil || c.Config.Timezone == "" {
		return time.Local
	}
	loc, err := utils.LoadLocation(c.Config.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in config, using local time", "timezone", c.Config.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// Clock returns the current time in the configured location.
func (c *Context) Clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.Location())
}

// Generator returns the slot generator, creating a default one when unset.
func (c *Context) Generator() *slots.Generator {
	if c.Slots == nil {
		c.Slots = slots.New()
	}
	return c.Slots
}

// User returns the active user id.
func (c *Context) User() (string, error) {
	if c.UserID != "" {
		return c.UserID, nil
	}
	if c.Config != nil && c.Config.UserID != "" {
		return c.Config.UserID, nil
	}
	return "", ErrNoUser
}

// LoadUser loads the store and the active user's document.
func (c *Context) LoadUser() (string, models.UserDocument, error) {
	if err := c.Store.Load(); err != nil {
		return "", models.UserDocument{}, err
	}
	userID, err := c.User()
	if err != nil {
		return "", models.UserDocument{}, err
	}
	doc, err := c.Store.GetUser(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", models.UserDocument{}, fmt.Errorf("no profile for user %s, run 'classlog init' first", userID)
		}
		return "", models.UserDocument{}, clerrors.Loading("profile", err)
	}
	return userID, doc, nil
}

// SaveUser persists the user document and takes an automatic backup.
// Profile and roster violations are returned with their aggregated report.
func (c *Context) SaveUser(userID string, doc models.UserDocument) error {
	v := validation.New()
	profile := v.ValidateProfile(doc)
	if err := profile.Err(validation.ErrProfileInvalid); err != nil {
		return err
	}
	if err := c.Store.SaveUser(userID, doc); err != nil {
		if errors.Is(err, validation.ErrRosterInvalid) {
			return err
		}
		return clerrors.Saving("profile", err)
	}
	c.PerformAutomaticBackup()
	return nil
}

// PerformAutomaticBackup snapshots file-backed stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDay resolves "", "today", "yesterday", "tomorrow" or YYYY-MM-DD to
// local midnight of that day.
func (c *Context) ParseDay(s string) (time.Time, error) {
	today := utils.StartOfDay(c.Clock())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	d, err := utils.ParseDateInLocation(s, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected %s, today or yesterday)", s, constants.DateFormat)
	}
	return d, nil
}
