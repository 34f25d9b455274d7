package main

import (
	"github.com/nezorflame/slackmsg/store"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Post the scheduled message files until stopped",
		Long:  "Runs every schedule entry of the config on its cron expression. Stops on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(opts.configPath)
			if err != nil {
				return errors.Wrap(err, "unable to init config")
			}

			db, err := store.Open(c.DBPath, c.DBBucket, c.DBTimeout)
			if err != nil {
				return errors.Wrap(err, "unable to open delivery log")
			}
			defer func() {
				if err := db.Close(); err != nil {
					logrus.WithError(err).Error("Unable to close delivery log")
				}
			}()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			logrus.Info("Starting schedule watcher")
			return scheduleWatcher(ctx, c, db, func(e scheduleEntry) (sender, error) {
				return newSender(c, e.API)
			})
		},
	}
}
