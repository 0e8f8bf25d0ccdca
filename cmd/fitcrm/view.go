package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fitcrm/fitcrm/internal/events"
)

var viewCmd = &cobra.Command{
	Use:   "view [client-id]",
	Short: "Show a client's profile with training history and suggestions",
	Long: `View renders one client's profile. With an id argument the client is
selected first; without one the last selection is reused.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

var viewRequestEdit bool

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewRequestEdit, "edit", false,
		"Request the edit form for this client on the next list load")
}

func runView(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := app.List.Select(args[0]); err != nil {
			return err
		}
	}

	ctx := events.WithLogger(context.Background(), logger)
	view, err := app.Detail.Load(ctx)
	if err != nil {
		return err
	}

	if view.Record == nil {
		fmt.Println("Client not found.")
		return nil
	}

	rec := view.Record
	fmt.Printf("%s\n", color.New(color.Bold).Sprint(rec.FullName))
	if rec.Age != "" {
		fmt.Printf("  Age:    %s\n", rec.Age)
	}
	if rec.Gender != "" {
		fmt.Printf("  Gender: %s\n", rec.Gender)
	}
	fmt.Printf("  Email:  %s\n", rec.Email)
	fmt.Printf("  Phone:  %s\n", rec.Phone)
	fmt.Printf("  Goal:   %s\n", rec.Goal)
	if rec.StartDate != "" {
		fmt.Printf("  Start:  %s\n", rec.StartDate)
	} else {
		fmt.Printf("  Start:  -\n")
	}

	fmt.Println("\nTraining history:")
	if len(rec.History) == 0 {
		fmt.Println("  No training history yet.")
	} else {
		for _, entry := range rec.History {
			fmt.Printf("  - %s\n", entry)
		}
	}

	fmt.Println("\nSuggested exercises:")
	if view.Suggestions.Unavailable {
		fmt.Println("  Could not fetch external exercises. Try again later.")
	} else {
		for _, s := range view.Suggestions.Items {
			fmt.Printf("  %s\n", color.CyanString(s.Name))
			if s.Description != "" {
				fmt.Printf("    %s\n", s.Description)
			}
		}
	}

	if viewRequestEdit {
		id, err := app.Detail.RequestEdit()
		if err != nil {
			return err
		}
		fmt.Printf("\nEdit form will open for %s on the next list load.\n", id)
	}

	return nil
}
