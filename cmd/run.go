package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dsai/internal/app"
	"github.com/abhisek/dsai/internal/render"
)

// runApp builds dependencies and launches the TUI. Logging is discarded
// so it cannot draw over the screen.
func runApp(cmd *cobra.Command) error {
	rt, err := newRuntime(cmd.Context(), zap.NewNop(), nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	renderer, err := render.New(render.DefaultWidth, "dark")
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Service:  rt.svc,
		Renderer: renderer,
		Language: cfg.Language,
		Model:    rt.provider.ModelID(),
	})
}
