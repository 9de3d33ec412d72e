package profile

import (
	"fmt"
	"strings"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
)

var activityLists = map[string]string{
	"productive":   "productiveActivities",
	"unproductive": "unproductiveActivities",
}

func activities(doc models.UserDocument, list string) []string {
	if list == "productiveActivities" {
		return doc.ProductiveActivities
	}
	return doc.UnproductiveActivities
}

type ActivityAddCmd struct {
	List string `arg:"" enum:"productive,unproductive" help:"Activity list."`
	Name string `arg:"" help:"Activity name."`
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	list := activityLists[c.List]
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("activity name cannot be empty")
	}
	current := activities(doc, list)
	for _, a := range current {
		if strings.EqualFold(a, name) {
			return fmt.Errorf("%s activity %q already exists", c.List, a)
		}
	}

	if _, err := ctx.Apply(userID, doc,
		draft.AddActivity(list),
		draft.SetActivity(list, len(current), name),
	); err != nil {
		return err
	}
	ctx.Printf("✓ Added %s activity %q\n", c.List, name)
	return nil
}

type ActivityRemoveCmd struct {
	List string `arg:"" enum:"productive,unproductive" help:"Activity list."`
	Name string `arg:"" help:"Activity name."`
}

func (c *ActivityRemoveCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	list := activityLists[c.List]
	current := activities(doc, list)

	idx := -1
	for i, a := range current {
		if strings.EqualFold(a, strings.TrimSpace(c.Name)) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s activity %q not found", c.List, c.Name)
	}
	if len(current) == 1 {
		return fmt.Errorf("cannot remove the last %s activity", c.List)
	}

	if _, err := ctx.Apply(userID, doc, draft.RemoveActivity(list, idx)); err != nil {
		return err
	}
	ctx.Printf("✓ Removed %s activity %q\n", c.List, current[idx])
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	_, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	for _, name := range []string{"productive", "unproductive"} {
		ctx.Println(cli.HeaderStyle.Render(strings.ToUpper(name[:1]) + name[1:]))
		list := activities(doc, activityLists[name])
		if len(list) == 0 {
			ctx.Println(cli.MutedStyle.Render("  (none)"))
		}
		for _, a := range list {
			ctx.Printf("  - %s\n", a)
		}
	}
	return nil
}
