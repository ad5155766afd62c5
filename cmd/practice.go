package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsai/internal/render"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Generate a practice problem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		raw, _ := cmd.Flags().GetBool("raw")
		style, _ := cmd.Flags().GetString("style")

		rt, err := newRuntime(cmd.Context(), logger, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		q, err := rt.svc.Practice(cmd.Context(), topic)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if raw {
			fmt.Fprintln(out, q.Text)
			return nil
		}
		r, err := render.New(render.DefaultWidth, style)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, r.Markdown(q.Text))
		return nil
	},
}

func init() {
	practiceCmd.Flags().StringP("topic", "t", "", "Steer the problem towards a topic (e.g. graphs)")
	practiceCmd.Flags().Bool("raw", false, "Print the problem without rendering")
	practiceCmd.Flags().String("style", "auto", "Glamour style (auto, dark, light, notty)")
}
