package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var novelsCmd = &cobra.Command{
	Use:   "novels",
	Short: "List all novels in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		novels, err := client.ListNovels()
		if err != nil {
			return fmt.Errorf("failed to list novels: %w", err)
		}

		if len(novels) == 0 {
			fmt.Println("No novels yet.")
			return nil
		}

		for _, n := range novels {
			fmt.Printf("[%d] %s", n.ID, n.Title)
			if n.AuthorName != "" {
				fmt.Printf(" by %s", n.AuthorName)
			}
			fmt.Println()
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and print a token for --token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		tok, err := client.Login(args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Println(tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(novelsCmd)
	rootCmd.AddCommand(loginCmd)
}
