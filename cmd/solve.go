package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsai/internal/assistant"
	"github.com/abhisek/dsai/internal/render"
)

var solveCmd = &cobra.Command{
	Use:   "solve [question...]",
	Short: "Answer a single DSA question",
	Long:  "Answer a single DSA question. With no arguments the question is read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		style, _ := cmd.Flags().GetString("style")

		question := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read question: %w", err)
			}
			question = string(data)
		}

		rt, err := newRuntime(cmd.Context(), logger, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		answer, err := rt.svc.Solve(cmd.Context(), question)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if raw {
			fmt.Fprintln(out, answer.Text)
		} else {
			r, err := render.New(render.DefaultWidth, style)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, r.Code(answer.Text, cfg.Language))
		}
		fmt.Fprintln(cmd.ErrOrStderr(), assistant.MsgReceived)
		return nil
	},
}

func init() {
	solveCmd.Flags().Bool("raw", false, "Print the model output without rendering")
	solveCmd.Flags().String("style", "auto", "Glamour style (auto, dark, light, notty)")
}
