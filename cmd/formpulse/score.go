package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"formpulse/internal/scoring"
	"formpulse/internal/surveyfile"
)

func scoreCmd() *cobra.Command {
	var asJSON bool
	var versionCount int

	cmd := &cobra.Command{
		Use:   "score <survey-file> <responses-file>",
		Short: "Score one response set against a survey definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := surveyfile.LoadDefinition(args[0])
			if err != nil {
				return err
			}
			responses, err := surveyfile.LoadResponses(args[1])
			if err != nil {
				return err
			}

			result := scoring.ScoreSurvey(def.Questions, responses, def.ScoreConfig)
			responseCount := 0
			if len(responses) > 0 {
				responseCount = 1
			}
			status := scoring.DeriveStatus(def.ScoreConfig, responseCount, versionCount)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Status scoring.ReportStatus `json:"status"`
					Result scoring.ScoreResult  `json:"result"`
				}{status, result})
			}

			printReport(def.Title, status, result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	cmd.Flags().IntVar(&versionCount, "versions", 1, "number of published survey versions (for status derivation)")
	return cmd
}

func printReport(title string, status scoring.ReportStatus, result scoring.ScoreResult) {
	if title != "" {
		color.New(color.Bold).Println(title)
	}
	switch status {
	case scoring.StatusHealthy, scoring.StatusSingleVersion:
		color.Green("status: %s", status)
	case scoring.StatusMisconfigured:
		color.Red("status: %s", status)
	default:
		color.Yellow("status: %s", status)
	}

	fmt.Printf("total: %.1f / %.1f (%d%%)", result.TotalScore, result.MaxScore, result.Percentage)
	if result.Label != "" {
		fmt.Printf("  [%s]", result.Label)
	}
	fmt.Println()

	categories := make([]string, 0, len(result.ByCategory))
	for id := range result.ByCategory {
		categories = append(categories, id)
	}
	sort.Strings(categories)
	for _, id := range categories {
		cs := result.ByCategory[id]
		fmt.Printf("  %-20s %.1f / %.1f (%d%%)", id, cs.Score, cs.MaxScore, cs.Percentage)
		if cs.Label != "" {
			fmt.Printf("  [%s]", cs.Label)
		}
		fmt.Println()
	}
}
