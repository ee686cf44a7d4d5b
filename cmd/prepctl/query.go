package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-prep/internal/quiz"
)

func newDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day <number>",
		Short: "Print the parsed plan for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day %q", args[0])
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.Quiz.Day(n)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
}

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions <path>",
		Short: "Print the questions a corpus shows on a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			day, _ := flags.GetInt("day")
			topic, _ := flags.GetString("topic")
			countFlag, _ := flags.GetString("count")

			req := quiz.QuestionsRequest{Path: args[0], Topic: topic, Day: day}
			switch c := strings.ToLower(countFlag); c {
			case "":
			case "all":
				req.Count = quiz.CountAll
			default:
				n, err := strconv.Atoi(c)
				if err != nil || n < 1 {
					return fmt.Errorf(`--count must be a positive integer or "all"`)
				}
				req.Count = n
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			sel, err := a.Quiz.Questions(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sel)
		},
	}
	cmd.Flags().Int("day", 0, "Day number (omit for the whole corpus)")
	cmd.Flags().String("count", "", `Questions per day, or "all" (default: quota policy)`)
	cmd.Flags().String("topic", "", "Topic label used for the quota policy")
	return cmd
}
