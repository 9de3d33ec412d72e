package system

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/utils"
)

type DebugCmd struct {
	DBPath  *DebugDBPathCmd  `cmd:"" help:"Show database path."`
	DumpDay *DebugDumpDayCmd `cmd:"" help:"Dump a stored daily entry as JSON."`
	Dump    *DebugDumpCmd    `cmd:"" help:"Dump any stored document as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date of the entry (YYYY-MM-DD, today or yesterday)."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	userID, _, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	day, err := ctx.ParseDay(cmd.Date)
	if err != nil {
		return err
	}
	return dumpDocument(ctx, storage.CollectionDailyEntries, models.EntryKey(userID, utils.Today(day)))
}

type DebugDumpCmd struct {
	Collection string `arg:"" enum:"users,dailyEntries,healthMetrics,reminders" help:"Collection name."`
	ID         string `arg:"" help:"Document id."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return dumpDocument(ctx, cmd.Collection, cmd.ID)
}

func dumpDocument(ctx *cli.Context, collection, id string) error {
	docs, ok := ctx.Backend()
	if !ok {
		return errors.New("storage does not expose raw documents")
	}
	doc, err := docs.GetDocument(collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no document %s/%s", collection, id)
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, doc.Body, "", "  "); err != nil {
		return fmt.Errorf("document %s/%s is not valid JSON: %w", collection, id, err)
	}
	ctx.Println(buf.String())
	return nil
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
