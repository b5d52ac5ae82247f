package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(adCmd)
}

var adCmd = &cobra.Command{
	Use:   "ad <id>",
	Short: "Fetches a single ad by id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		ad, err := client.GetAd(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d)\n", ad.Subject, ad.ID)
		fmt.Printf("%.2f EUR, %s (%s)\n", ad.Price, ad.Location.City, ad.Location.RegionName)
		fmt.Println(ad.URL)
		if ad.Body != "" {
			fmt.Println()
			fmt.Println(ad.Body)
		}
		if len(ad.Attributes) == 0 {
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Attribute", "Value"})
		for _, attr := range ad.Attributes {
			t.AppendRow(table.Row{attr.KeyLabel, attr.ValueLabel})
		}
		t.Render()
		return nil
	},
}
