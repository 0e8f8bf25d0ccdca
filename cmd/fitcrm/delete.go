package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fitcrm/fitcrm/internal/models"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client",
	Long: `Delete removes a client record permanently. It asks for confirmation
unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false,
		"Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	confirmed := deleteYes
	if !confirmed {
		rec, err := app.Store.FindByID(id)
		if errors.Is(err, models.ErrClientNotFound) {
			fmt.Println("Client not found.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Are you sure you want to delete %s? This action cannot be undone. [y/N] ", rec.FullName)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		confirmed = strings.EqualFold(strings.TrimSpace(answer), "y")
	}

	if err := app.List.Delete(id, confirmed); err != nil {
		if errors.Is(err, models.ErrDeleteNotConfirmed) {
			fmt.Println("Aborted.")
			return nil
		}
		return err
	}

	if confirmed {
		fmt.Println("Deleted.")
	}
	return nil
}
