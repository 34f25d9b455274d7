package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nezorflame/slackmsg/message"
	"github.com/nezorflame/slackmsg/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// requestFlags build a request from a message file and/or command line flags
type requestFlags struct {
	file       string
	text       string
	username   string
	iconEmoji  string
	iconURL    string
	channel    string
	attachment string
	color      string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML message file")
	cmd.Flags().StringVar(&f.text, "text", "", "message text")
	cmd.Flags().StringVar(&f.username, "username", "", "name to post as (default: defaults.username)")
	cmd.Flags().StringVar(&f.iconEmoji, "icon-emoji", "", "emoji icon, e.g. robot_face")
	cmd.Flags().StringVar(&f.iconURL, "icon-url", "", "icon image URL")
	cmd.Flags().StringVar(&f.channel, "channel", "", "channel to post to (default: defaults.channel)")
	cmd.Flags().StringVar(&f.attachment, "attachment", "", "text of a single attachment")
	cmd.Flags().StringVar(&f.color, "color", "", "attachment color: good, warning, danger, happy (random) or #rrggbb")
}

func (f *requestFlags) request(d defaults) (message.Request, error) {
	mf := &messageFile{}
	if f.file != "" {
		var err error
		if mf, err = loadMessageFile(f.file); err != nil {
			return message.Request{}, err
		}
	}

	b, err := mf.builder(d)
	if err != nil {
		return message.Request{}, err
	}
	if f.text != "" {
		b.Text(f.text)
	}
	if f.username != "" {
		b.Username(f.username)
	}
	if f.iconEmoji != "" {
		b.IconEmoji(f.iconEmoji)
	}
	if f.iconURL != "" {
		b.IconURL(f.iconURL)
	}
	if f.channel != "" {
		b.Channel(f.channel)
	}

	if f.attachment != "" {
		ab := message.NewAttachment(f.attachment).Text(f.attachment)
		if f.color != "" {
			c, err := parseColor(f.color)
			if err != nil {
				return message.Request{}, err
			}
			ab.Color(c)
		}
		a, err := ab.Build()
		if err != nil {
			return message.Request{}, errors.Wrap(err, "invalid attachment")
		}
		b.AddAttachments(a)
	} else if f.color != "" {
		return message.Request{}, errors.New("--color needs --attachment")
	}

	return b.Build()
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  requestFlags
		useAPI bool
		once   bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message to Slack",
		Long:  "Builds a message from flags or a YAML file and posts it to the incoming webhook, or with --api to the Web API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(opts.configPath)
			if err != nil {
				return errors.Wrap(err, "unable to init config")
			}
			req, err := flags.request(c.Defaults)
			if err != nil {
				return errors.Wrap(err, "invalid message")
			}
			s, err := newSender(c, useAPI)
			if err != nil {
				return err
			}

			db, err := store.Open(c.DBPath, c.DBBucket, c.DBTimeout)
			if err != nil {
				return errors.Wrap(err, "unable to open delivery log")
			}
			defer db.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			ctx, cancelTimeout := context.WithTimeout(ctx, requestTimeout(c))
			defer cancelTimeout()

			skipped, err := deliver(ctx, s, db, req, once)
			if err != nil {
				return err
			}
			if skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "Already delivered, skipped")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sent")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&useAPI, "api", false, "post with the Web API and api.bot_token instead of the webhook")
	cmd.Flags().BoolVar(&once, "once", false, "skip the message if the same payload was already delivered")
	return cmd
}

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Validate a message and print its JSON payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(opts.configPath)
			if err != nil {
				return errors.Wrap(err, "unable to init config")
			}
			req, err := flags.request(c.Defaults)
			if err != nil {
				return errors.Wrap(err, "invalid message")
			}
			body, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return errors.Wrap(err, "unable to marshal request")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
