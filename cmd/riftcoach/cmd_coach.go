package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"riftcoach/internal/app"
	"riftcoach/internal/schema"

	"github.com/spf13/cobra"
)

func newCoachCmd() *cobra.Command {
	var (
		champions []string
		imagePath string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Run one coaching request through the pipeline",
		Long: `Run one coaching request through the pipeline.

Champion tokens are read positionally: the first five fill the blue roster
(your champion first), the next five the red roster.`,
		Example: `  riftcoach coach --champions Aatrox,LeeSin,Syndra,Jinx,Thresh,Darius,Elise,Ahri,Caitlyn,Lulu`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cfg)
			if err != nil {
				return err
			}
			result, err := application.Coach(cmd.Context(), schema.CoachRequest{
				ImagePath:       imagePath,
				ManualChampions: champions,
			})
			if err != nil {
				return err
			}
			if asJSON {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				if !result.Success {
					return fmt.Errorf("pipeline failed at %s", result.FailedAt)
				}
				return nil
			}
			if !result.Success {
				return fmt.Errorf("pipeline failed at %s: %s",
					result.FailedAt, strings.Join(result.Errors, "; "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), schema.RenderSummary(result.Package))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&champions, "champions", nil,
		"ten champion tokens, blue side first")
	cmd.Flags().StringVar(&imagePath, "image", "", "loading-screen screenshot path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full pipeline result as JSON")
	return cmd
}
