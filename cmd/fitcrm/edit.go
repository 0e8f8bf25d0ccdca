package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fitcrm/fitcrm/internal/models"
	"github.com/fitcrm/fitcrm/internal/views"
)

var editCmd = &cobra.Command{
	Use:   "edit <client-id>",
	Short: "Edit a client's record",
	Long: `Edit merges the given fields over the stored record. Unset flags keep
their stored values; the id and training history never change.`,
	Example: `  fitcrm edit 1704067200000042 --phone 5559999`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

var (
	editName      string
	editEmail     string
	editPhone     string
	editGoal      string
	editStartDate string
)

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editName, "name", "n", "", "Full name")
	editCmd.Flags().StringVarP(&editEmail, "email", "e", "", "Email address")
	editCmd.Flags().StringVarP(&editPhone, "phone", "p", "", "Phone number")
	editCmd.Flags().StringVarP(&editGoal, "goal", "g", "", "Fitness goal")
	editCmd.Flags().StringVarP(&editStartDate, "start-date", "s", "", "Start date")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	form, err := app.List.BeginEdit(id)
	if errors.Is(err, models.ErrClientNotFound) {
		fmt.Println("Client not found.")
		return nil
	}
	if err != nil {
		return err
	}

	fields := form.Fields
	if cmd.Flags().Changed("name") {
		fields.FullName = editName
	}
	if cmd.Flags().Changed("email") {
		fields.Email = editEmail
	}
	if cmd.Flags().Changed("phone") {
		fields.Phone = editPhone
	}
	if cmd.Flags().Changed("goal") {
		fields.Goal = editGoal
	}
	if cmd.Flags().Changed("start-date") {
		fields.StartDate = editStartDate
	}

	rec, fieldErrs, err := app.List.SubmitEdit(id, fields)
	if errors.Is(err, models.ErrClientNotFound) {
		fmt.Println("Client not found.")
		return nil
	}
	if err != nil {
		return err
	}

	if len(fieldErrs) > 0 {
		printFieldErrors(fieldErrs)
		return fmt.Errorf("client not updated")
	}

	fmt.Printf("Updated %s (%s)\n", color.GreenString(rec.FullName), rec.ID)
	return nil
}

func printEditForm(form *views.EditForm) {
	fmt.Printf("  fitcrm edit %s", form.ID)
	fmt.Printf(" --name %q --email %q --phone %q --goal %q --start-date %q\n",
		form.Fields.FullName, form.Fields.Email, form.Fields.Phone,
		form.Fields.Goal, form.Fields.StartDate)
}
