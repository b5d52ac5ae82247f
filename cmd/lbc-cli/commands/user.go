package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Fetches a public user profile by id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		user, err := client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", user.Name, user.ID)
		fmt.Println("account type:", user.AccountType)
		fmt.Println("member since:", user.CreationDate)
		fmt.Println("phone verified:", user.PhoneVerified)
		fmt.Println("email verified:", user.EmailVerified)
		if user.Pro != nil {
			fmt.Println()
			fmt.Println("store:", user.Pro.OnlineStoreName)
			fmt.Println("siret:", user.Pro.Siret)
			if user.Pro.WebsiteURL != "" {
				fmt.Println("website:", user.Pro.WebsiteURL)
			}
		}
		return nil
	},
}
