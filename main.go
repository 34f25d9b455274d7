/*
slackmsg - builds, validates and sends Slack messages with attachments and dynamic dates
*/

package main // import "github.com/nezorflame/slackmsg"

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nezorflame/slackmsg/slack"
	"github.com/nezorflame/slackmsg/store"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "slackmsg",
		Short:         "Build, validate and send Slack messages",
		Long:          "slackmsg builds Slack messages with attachments and <!date> directives and posts them to a webhook or the Web API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// set log level
			if opts.debug {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "debug level for logs")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default: slackmsg.yaml in /etc/ or .)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSendCmd(opts))
	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newDateCmd())
	cmd.AddCommand(newScheduleCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "slackmsg %s (commit: %s)\n", Version, Commit)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}

// loadConfig reads the config file, if any, and the SLACKMSG_* environment
func loadConfig(path string) (*config, error) {
	v := viper.New()
	v.SetDefault("webhook.url", slack.DefaultWebHookURL)
	v.SetDefault("webhook.user_agent", slack.DefaultUserAgent)
	v.SetDefault("webhook.timeout", slack.DefaultTimeout)
	v.SetDefault("webhook.retries", slack.DefaultRetries)
	v.SetDefault("db.path", "./slackmsg.db")
	v.SetDefault("db.bucket", store.DefaultBucket)
	v.SetDefault("db.timeout", store.DefaultTimeout)

	v.SetEnvPrefix("slackmsg")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// set config path
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("slackmsg")
		v.AddConfigPath("/etc/")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "unable to read config")
		}
		logrus.Debug("No config file found, using defaults and environment")
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Debug("Config loaded")
	}

	return parseConfig(v)
}

func parseConfig(v *viper.Viper) (*config, error) {
	c := &config{}

	// webhook settings
	c.WebHookToken = v.GetString("webhook.token")
	c.WebHook = slack.Config{
		URL:       v.GetString("webhook.url"),
		UserAgent: v.GetString("webhook.user_agent"),
		Timeout:   v.GetDuration("webhook.timeout"),
		Retries:   v.GetInt("webhook.retries"),
	}
	if c.WebHook.URL == "" {
		return nil, errors.New("webhook.url can't be empty")
	}
	if c.WebHook.Timeout <= 0 {
		return nil, errors.New("webhook.timeout must be positive")
	}
	if c.WebHook.Retries < 1 {
		return nil, errors.New("webhook.retries can't be lower than 1")
	}

	c.BotToken = v.GetString("api.bot_token")

	c.Defaults = defaults{
		Username:  v.GetString("defaults.username"),
		IconEmoji: v.GetString("defaults.icon_emoji"),
		Channel:   v.GetString("defaults.channel"),
	}

	// delivery log
	if c.DBPath = v.GetString("db.path"); c.DBPath == "" {
		return nil, errors.New("db.path can't be empty")
	}
	if c.DBBucket = v.GetString("db.bucket"); c.DBBucket == "" {
		return nil, errors.New("db.bucket can't be empty")
	}
	if c.DBTimeout = v.GetDuration("db.timeout"); c.DBTimeout <= 0 {
		return nil, errors.New("db.timeout must be positive")
	}

	// scheduled messages
	if err := v.UnmarshalKey("schedule", &c.Schedule); err != nil {
		return nil, errors.Wrap(err, "unable to parse schedule")
	}
	for i, e := range c.Schedule {
		if e.Cron == "" {
			return nil, errors.Errorf("schedule[%d].cron can't be empty", i)
		}
		if _, err := cronParser.Parse(e.Cron); err != nil {
			return nil, errors.Wrapf(err, "schedule[%d].cron is invalid", i)
		}
		if e.File == "" {
			return nil, errors.Errorf("schedule[%d].file can't be empty", i)
		}
	}

	return c, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)
		select {
		case <-ctx.Done():
		case <-sigs:
			logrus.Warnln("Exiting program on Ctrl+C")
			cancel()
		}
	}()
	return ctx, cancel
}

// requestTimeout bounds a single send, including retries
func requestTimeout(c *config) time.Duration {
	return c.WebHook.Timeout * time.Duration(c.WebHook.Retries+1)
}
