package main

import (
	"fmt"

	"riftcoach/internal/ingest"
	"riftcoach/internal/store"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	var patch string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Download and snapshot static data for a patch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := ingest.NewClient(cfg.Ingest.BaseURL, cfg.Ingest.Locale)
			ig := ingest.NewIngester(client, store.New(cfg.DataDir))
			ig.IndexPath = cfg.Ingest.IndexPath
			got, err := ig.Run(cmd.Context(), patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "patch %s ingested into %s\n", got, cfg.DataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&patch, "patch", "", "patch version (default: latest)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the champion index by name or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Ingest.IndexPath == "" {
				return fmt.Errorf("ingest.index_path is not configured")
			}
			hits, err := ingest.SearchIndex(cfg.Ingest.IndexPath, args[0])
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no champions matched")
				return nil
			}
			for _, h := range hits {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-24s %s\n", h.Name, h.Title, h.Tags)
			}
			return nil
		},
	}
	return cmd
}
