package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fitcrm/fitcrm/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new client",
	Example: `  fitcrm add --name "Jane Doe" --email jane@x.com --phone 5551234 \
    --goal "Lose weight" --start-date 2024-01-01`,
	RunE: runAdd,
}

var (
	addName      string
	addAge       string
	addGender    string
	addEmail     string
	addPhone     string
	addGoal      string
	addStartDate string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Full name")
	addCmd.Flags().StringVar(&addAge, "age", "", "Age (free-form)")
	addCmd.Flags().StringVar(&addGender, "gender", "", "Gender (free-form)")
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "Email address")
	addCmd.Flags().StringVarP(&addPhone, "phone", "p", "", "Phone number")
	addCmd.Flags().StringVarP(&addGoal, "goal", "g", "", "Fitness goal")
	addCmd.Flags().StringVarP(&addStartDate, "start-date", "s", "", "Start date")
}

func runAdd(cmd *cobra.Command, args []string) error {
	fields := models.ClientFields{
		FullName:  addName,
		Age:       addAge,
		Gender:    addGender,
		Email:     addEmail,
		Phone:     addPhone,
		Goal:      addGoal,
		StartDate: addStartDate,
	}

	rec, fieldErrs, err := app.Create.Submit(fields)
	if err != nil {
		return err
	}

	if len(fieldErrs) > 0 {
		printFieldErrors(fieldErrs)
		return fmt.Errorf("client not added")
	}

	fmt.Printf("Added %s (%s)\n", color.GreenString(rec.FullName), rec.ID)
	return nil
}

func printFieldErrors(errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %s: %s\n", color.RedString(name), errs[name])
	}
}
