package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/content"
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/export"
	"github.com/jsamuelsen/portfolio/internal/platform/telemetry"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		out         string
		theme       string
		exclude     []string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the portfolio as a static site",
		Long: `Renders the page, one fragment per section, the content document, and
the CSS, JavaScript, and images into a directory that any static file host
can serve. The exported page has no server: the theme toggle and skills
tabs run in the browser and the contact form is replaced by its links.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			logger := newLogger(cfg)

			doc, err := content.Load(cfg.Content.Path)
			if err != nil {
				return fmt.Errorf("loading content: %w", err)
			}

			renderer, err := views.New()
			if err != nil {
				return fmt.Errorf("loading templates: %w", err)
			}

			exporter, err := export.New(export.Config{
				Pages:       app.NewPageService(app.PageServiceConfig{Document: doc, Logger: logger}),
				Renderer:    renderer,
				Theme:       domain.ParseTheme(theme),
				Exclude:     exclude,
				Concurrency: concurrency,
				Logger:      logger,
				Tracer:      telemetry.Tracer(),
			})
			if err != nil {
				return err
			}

			written, err := exporter.Export(cmd.Context(), out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Static site written to %s (%d files)\n", out, len(written))

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	cmd.Flags().StringVar(&theme, "theme", string(domain.DefaultTheme), "initial theme (light or dark)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "skip static assets matching these patterns (e.g. img/**)")
	cmd.Flags().IntVar(&concurrency, "concurrency", export.DefaultConcurrency, "files rendered at once")

	return cmd
}
