package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/portfolio/internal/adapters/store"
)

func newContactCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Read recorded contact submissions",
	}

	cmd.AddCommand(newContactListCmd(flags))

	return cmd
}

func newContactListCmd(flags *globalFlags) *cobra.Command {
	var (
		limit  int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest submissions in the contact store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				cfg, err := loadConfig(flags)
				if err != nil {
					return err
				}

				if !cfg.Contact.Store.Enabled {
					return errors.New("the contact store is disabled; enable contact.store or pass --db")
				}

				dbPath = cfg.Contact.Store.Path
			}

			db, err := store.OpenSQLite(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("opening contact store: %w", err)
			}
			defer db.Close()

			subs, err := db.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no submissions")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RECEIVED\tNAME\tEMAIL\tSUBJECT")

			for _, s := range subs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.ReceivedAt.Local().Format(time.DateTime), s.Form.Name, s.Form.Email, s.Form.Subject)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of submissions to show")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default contact.store.path)")

	return cmd
}
