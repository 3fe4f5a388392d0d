package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/internal/id"
	"github.com/getmockd/itemd/pkg/cli/internal/flags"
	"github.com/getmockd/itemd/pkg/cli/internal/output"
	"github.com/getmockd/itemd/pkg/cli/internal/parse"
	"github.com/getmockd/itemd/pkg/items"
)

var (
	listFilter string
	itemData   string
	itemSet    flags.StringSlice
)

var itemsCmd = &cobra.Command{
	Use:     "items",
	Aliases: []string{"item"},
	Short:   "Manage items on a running server",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items in creation order",
	Example: `  itemd items list
  itemd items list --filter 'name == "Widget"'
  itemd items list --filter 'qty > 2' --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		list, err := c.List(cmd.Context(), listFilter)
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}

		w := cmd.OutOrStdout()
		if wantJSON() {
			return output.JSON(w, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(w, "No items")
			return nil
		}
		return output.Items(w, list)
	},
}

var itemsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		c := newClient()
		item, err := c.Get(cmd.Context(), itemID)
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}
		return printItem(cmd, item)
	},
}

var itemsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an item",
	Example: `  itemd items create --set name=Widget --set qty=3
  itemd items create --data '{"name":"Widget","tags":["a","b"]}'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := itemFields()
		if err != nil {
			return err
		}
		c := newClient()
		item, err := c.Create(cmd.Context(), fields)
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}
		return printItem(cmd, item)
	},
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Merge fields into an existing item",
	Long: `Merge fields into an existing item. Fields not mentioned keep their
values; the id never changes.`,
	Example: `  itemd items update 1 --set qty=4`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		fields, err := itemFields()
		if err != nil {
			return err
		}
		c := newClient()
		item, err := c.Update(cmd.Context(), itemID, fields)
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}
		return printItem(cmd, item)
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		c := newClient()
		item, err := c.Delete(cmd.Context(), itemID)
		if err != nil {
			return formatClientError(c.BaseURL(), err)
		}
		if wantJSON() {
			return output.JSON(cmd.OutOrStdout(), item)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %d\n", item.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsListCmd, itemsGetCmd, itemsCreateCmd, itemsUpdateCmd, itemsDeleteCmd)

	itemsListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Filter expression evaluated per item")

	for _, c := range []*cobra.Command{itemsCreateCmd, itemsUpdateCmd} {
		c.Flags().StringVarP(&itemData, "data", "d", "", "Item fields as a JSON object")
		c.Flags().Var(&itemSet, "set", "Field as key=value (repeatable, JSON values are typed)")
	}
}

func parseItemID(s string) (int64, error) {
	itemID, ok := id.Parse(s)
	if !ok {
		return 0, fmt.Errorf("invalid item id %q: must be an integer", s)
	}
	return itemID, nil
}

// itemFields merges --data and --set; --set wins on conflicting keys.
func itemFields() (map[string]any, error) {
	fields, err := parse.Object(itemData)
	if err != nil {
		return nil, err
	}
	set, err := parse.Fields(itemSet)
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		fields[k] = v
	}
	return fields, nil
}

func printItem(cmd *cobra.Command, item items.Item) error {
	w := cmd.OutOrStdout()
	if wantJSON() {
		return output.JSON(w, item)
	}
	return output.Items(w, []items.Item{item})
}
