package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/nezorflame/slackmsg/datetime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type dateOptions struct {
	pattern  string
	epoch    int64
	at       string
	date     string
	link     string
	fallback bool
}

func newDateCmd() *cobra.Command {
	opts := &dateOptions{}

	cmd := &cobra.Command{
		Use:   "date",
		Short: "Print a <!date> directive for message text",
		Long: "Prints a <!date> directive which Slack renders in the reader's time zone.\n" +
			"The pattern may use the tokens " + tokenList() + ".",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.value(cmd, time.Now)
			if err != nil {
				return err
			}
			if opts.fallback {
				fmt.Fprintln(cmd.OutOrStdout(), v.Fallback())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Format())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", datetime.DefaultFormat.Pattern(), "format pattern")
	cmd.Flags().Int64Var(&opts.epoch, "epoch", 0, "epoch seconds")
	cmd.Flags().StringVar(&opts.at, "at", "", "RFC 3339 timestamp, e.g. 2014-02-18T14:39:42+03:00")
	cmd.Flags().StringVar(&opts.date, "date", "", "calendar date as YYYY-MM-DD, taken at UTC midnight")
	cmd.Flags().StringVar(&opts.link, "link", "", "URL the rendered date links to")
	cmd.Flags().BoolVar(&opts.fallback, "fallback", false, "print only the plain UTC fallback text")
	return cmd
}

// value resolves the flags to a date value; with no time flag set the current time is used
func (o *dateOptions) value(cmd *cobra.Command, now datetime.Clock) (datetime.Value, error) {
	set := 0
	for _, name := range []string{"epoch", "at", "date"} {
		if cmd.Flags().Changed(name) {
			set++
		}
	}
	if set > 1 {
		return datetime.Value{}, errors.New("only one of --epoch, --at and --date can be set")
	}

	var t datetime.Temporal = datetime.Instant{Time: now()}
	switch {
	case cmd.Flags().Changed("epoch"):
		t = datetime.Instant{Time: time.Unix(o.epoch, 0)}
	case o.at != "":
		at, err := time.Parse(time.RFC3339, o.at)
		if err != nil {
			return datetime.Value{}, errors.Wrap(err, "invalid --at")
		}
		t = datetime.Zoned{Time: at}
	case o.date != "":
		d, err := time.Parse("2006-01-02", o.date)
		if err != nil {
			return datetime.Value{}, errors.Wrap(err, "invalid --date")
		}
		t = datetime.DateOf(d)
	}

	epoch, err := datetime.EpochAt(t, now)
	if err != nil {
		return datetime.Value{}, err
	}
	f, err := datetime.FormatOf(o.pattern)
	if err != nil {
		return datetime.Value{}, errors.Wrap(err, "invalid --pattern")
	}
	return datetime.NewValue(epoch).Format(f).Link(o.link).Build()
}

func tokenList() string {
	names := make([]string, 0, len(datetime.Tokens))
	for _, t := range datetime.Tokens {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}
