package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/spf13/cobra"
)

func inboxCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List contact messages, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Inbox.Path == "" {
				return fmt.Errorf("no inbox configured")
			}
			store, err := inbox.Open(cfg.Inbox.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			msgs, err := store.List(context.Background(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(msgs)
			}
			return printMessages(out, msgs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of messages, 0 for all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printMessages(w io.Writer, msgs []inbox.Message) error {
	if len(msgs) == 0 {
		_, err := fmt.Fprintln(w, "No messages.")
		return err
	}
	for i, m := range msgs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s <%s>\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Name, m.Email)
		for _, line := range strings.Split(m.Body, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	return nil
}
