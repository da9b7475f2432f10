package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/content"
)

func newContentCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect portfolio content documents",
	}

	cmd.AddCommand(newContentCheckCmd(flags), newContentDumpCmd())

	return cmd
}

// checkResult is the outcome of loading one content file.
type checkResult struct {
	name string
	doc  *content.Document
	err  error
}

func newContentCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]...",
		Short: "Load and validate content files",
		Long: `Loads each FILE, or the configured content path when none is given, and
reports every validation problem. With neither, the built-in content is checked.
Files are checked concurrently; the command fails if any file is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				cfg, err := loadConfig(flags)
				if err != nil {
					return err
				}
				paths = []string{cfg.Content.Path}
			}

			checks := make([]func(context.Context) (checkResult, error), len(paths))
			for i, path := range paths {
				checks[i] = func(context.Context) (checkResult, error) {
					name := path
					if name == "" {
						name = "built-in content"
					}

					doc, err := content.Load(path)

					return checkResult{name: name, doc: doc, err: err}, nil
				}
			}

			results, err := app.Parallel(cmd.Context(), checks...)
			if err != nil {
				return err
			}

			var failed int
			out := cmd.OutOrStdout()

			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", r.name, r.err)
					continue
				}

				fmt.Fprintf(out,
					"%s: ok (%d sections, %d experience entries, %d skill categories, %d projects)\n",
					r.name, len(r.doc.Sections), len(r.doc.Experience), len(r.doc.SkillCategories), len(r.doc.Projects))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d content files invalid", failed, len(results))
			}

			return nil
		},
	}
}

func newContentDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the built-in content as YAML, as a starting point for your own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := content.Default()
			if err != nil {
				return err
			}

			data, err := content.Marshal(doc)
			if err != nil {
				return fmt.Errorf("encoding content: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
