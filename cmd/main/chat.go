package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newChatCmd(a *app) *cobra.Command {
	var (
		archivePath string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the brain on stdin/stdout",
		Long: `Chat reads lines from stdin and prints the brain's replies. Replies are
subject to the configured mute flag and reply rate unless --force is set.
Every exchange is recorded in a SQLite transcript archive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBrain()
			if err != nil {
				return err
			}

			db, err := initDB(archivePath)
			if err != nil {
				return fmt.Errorf("could not open archive database: %w", err)
			}
			defer func() { _ = db.Close() }()

			archive, err := NewArchive(db)
			if err != nil {
				return err
			}
			defer archive.Close()

			sessionID, err := archive.StartSession()
			if err != nil {
				return err
			}
			a.logger.Info("Chat session started", slog.String("session_id", sessionID))

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				input := scanner.Text()

				var (
					reply    string
					answered bool
				)
				if force {
					reply = b.ForceReply(input)
					answered = true
				} else {
					reply, answered = b.Reply(input)
				}

				if answered {
					fmt.Println(reply)
				}
				if err := archive.Record(sessionID, input, reply, answered); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("could not read input: %w", err)
			}

			if a.cfg.Training {
				if err := b.SaveFile(a.brainPath); err != nil {
					return err
				}
				a.logger.Info("Brain saved", slog.String("path", a.brainPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "chat_archive.db", "path to the SQLite transcript archive")
	cmd.Flags().BoolVar(&force, "force", false, "bypass mute and reply rate gating")
	return cmd
}
