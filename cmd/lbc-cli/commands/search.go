package commands

import (
	"fmt"
	"os"

	"lbc-backend/lib/lbc"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	text     string
	url      string
	category string
	sort     string
	page     int
	limit    int
	lat      float64
	lng      float64
	radius   int
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.text, "text", "", "Free-text keywords.")
	searchCmd.Flags().StringVar(&searchFlags.url, "url", "", "A shared search URL, replaces the structured flags.")
	searchCmd.Flags().StringVar(&searchFlags.category, "category", "", "Category name, e.g. IMMOBILIER.")
	searchCmd.Flags().StringVar(&searchFlags.sort, "sort", "", "Sort name, e.g. NEWEST.")
	searchCmd.Flags().IntVar(&searchFlags.page, "page", 1, "Result page.")
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 10, "Page size.")
	searchCmd.Flags().Float64Var(&searchFlags.lat, "lat", 0, "City latitude.")
	searchCmd.Flags().Float64Var(&searchFlags.lng, "lng", 0, "City longitude.")
	searchCmd.Flags().IntVar(&searchFlags.radius, "radius", 0, "City radius in meters.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [--text <keywords>|--url <shared url>]",
	Short: "Runs a search and prints the result page as a table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		var result lbc.Search
		var err error
		if searchFlags.url != "" {
			result, err = client.SearchURL(cmd.Context(), searchFlags.url, searchFlags.page, searchFlags.limit)
		} else {
			var query *lbc.Query
			opts := lbc.SearchOptions{
				Text:     searchFlags.text,
				Category: searchFlags.category,
				Sort:     searchFlags.sort,
				Page:     searchFlags.page,
				Limit:    searchFlags.limit,
			}
			if searchFlags.lat != 0 || searchFlags.lng != 0 {
				opts.Locations = []lbc.Location{lbc.City{
					Lat:    searchFlags.lat,
					Lng:    searchFlags.lng,
					Radius: searchFlags.radius,
				}}
			}
			query, err = lbc.BuildQuery(opts)
			if err != nil {
				return err
			}
			result, err = client.Search(cmd.Context(), query)
		}
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Title", "Price", "City", "Published"})
		for _, ad := range result.Ads {
			t.AppendRow(table.Row{ad.ID, ad.Subject, ad.Price, ad.Location.City, ad.FirstPublicationDate})
		}
		t.Render()

		fmt.Printf("%d ads total over %d pages\n", result.Total, result.MaxPages)
		return nil
	},
}
