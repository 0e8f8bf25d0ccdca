package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients, newest first",
	Example: `  fitcrm list
  fitcrm list --search ann`,
	RunE: runList,
}

var listSearch string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listSearch, "search", "q", "",
		"Filter by full name (case-insensitive substring)")
}

func runList(cmd *cobra.Command, args []string) error {
	view, err := app.List.Load(listSearch)
	if err != nil {
		return err
	}

	if len(view.Records) == 0 {
		if view.Query != "" {
			fmt.Printf("No clients match %q.\n", view.Query)
		} else {
			fmt.Println("No clients yet. Add one with: fitcrm add")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tGOAL\tSTART")
	for _, rec := range view.Records {
		name := rec.FullName
		if rec.ID == view.HighlightID {
			name = color.GreenString("%s *", name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, name, rec.Email, rec.Phone, rec.Goal, rec.StartDate)
	}
	w.Flush()

	// A pending edit handoff from the detail view opens the form here,
	// exactly as a manual edit would.
	if view.AutoEditID != "" {
		form, err := app.List.BeginEdit(view.AutoEditID)
		if err != nil {
			return nil
		}
		fmt.Println()
		fmt.Printf("Edit requested for %s:\n", color.CyanString(form.Fields.FullName))
		printEditForm(form)
	}

	return nil
}
