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

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <survey-file> [responses-file]",
		Short: "Check a survey definition (and optionally a response set) for problems",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := survey.VerifyRegistry(); err != nil {
				return err
			}

			def, err := surveyfile.LoadDefinition(args[0])
			if err != nil {
				return err
			}

			var problems []string
			problems = append(problems, def.Problems()...)
			for _, p := range logic.RuleProblems(def.Questions) {
				problems = append(problems, p.String())
			}

			if len(args) == 2 {
				responses, err := surveyfile.LoadResponses(args[1])
				if err != nil {
					return err
				}
				problems = append(problems, responseProblems(def.Questions, responses)...)
			}

			if len(problems) == 0 {
				color.Green("OK: %d questions, no problems", len(def.Questions))
				return nil
			}
			for _, p := range problems {
				color.Red("problem: %s", p)
			}
			return fmt.Errorf("%d problem(s) found", len(problems))
		},
	}
}

func responseProblems(questions []survey.Question, responses survey.ResponseSet) []string {
	var out []string
	byID := make(map[string]survey.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for id := range responses {
		q, ok := byID[id]
		if !ok {
			out = append(out, fmt.Sprintf("response for unknown question %s", id))
			continue
		}
		if res := answer.Validate(q, responses[id]); !res.OK {
			out = append(out, fmt.Sprintf("question %s: invalid answer (%s)", id, res.Reason))
		}
	}
	return out
}
