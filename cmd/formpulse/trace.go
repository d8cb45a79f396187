package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"formpulse/internal/answer"
	"formpulse/internal/logic"
	"formpulse/internal/survey"
	"formpulse/internal/surveyfile"
)

func traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace <survey-file> <responses-file>",
		Short: "Replay branching-logic traversal for a response set",
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

			log := newLogger()
			defer log.Sync() //nolint:errcheck

			byID := make(map[string]survey.Question, len(def.Questions))
			for _, q := range def.Questions {
				byID[q.ID] = q
			}

			nav := logic.NewNavigator(def.Questions, log)
			step := 1
			maxSteps := len(def.Questions) * 4
			for d := nav.First(responses); ; d = nav.Next(d.NextID, responses) {
				if step > maxSteps {
					return fmt.Errorf("traversal did not terminate after %d steps (jump cycle?)", maxSteps)
				}
				if d.FiredRuleID != "" {
					color.Cyan("      rule %s fired", d.FiredRuleID)
				}
				if d.Ended {
					color.New(color.Bold).Println("survey ended")
					return nil
				}
				q := byID[d.NextID]
				answered := !answer.IsNull(responses[d.NextID])
				marker := color.YellowString("unanswered")
				if answered {
					marker = color.GreenString("answered")
				}
				fmt.Printf("%3d. %-12s %s (%s)\n", step, d.NextID, q.Title, marker)
				step++
			}
		},
	}
}
