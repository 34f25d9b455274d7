package main

import (
	"os"
	"strings"
	"time"

	"github.com/nezorflame/slackmsg/message"
	"github.com/nezorflame/slackmsg/slack"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const happyColor = "happy"

type config struct {
	WebHook      slack.Config
	WebHookToken string
	BotToken     string

	Defaults defaults

	DBPath    string
	DBBucket  string
	DBTimeout time.Duration

	Schedule []scheduleEntry
}

type defaults struct {
	Username  string
	IconEmoji string
	Channel   string
}

type scheduleEntry struct {
	Cron string `mapstructure:"cron"`
	File string `mapstructure:"file"`
	API  bool   `mapstructure:"api"`
	Once bool   `mapstructure:"once"`
}

// messageFile is a message definition kept in YAML
type messageFile struct {
	Text        string           `yaml:"text"`
	Username    string           `yaml:"username"`
	IconEmoji   string           `yaml:"icon_emoji"`
	IconURL     string           `yaml:"icon_url"`
	Channel     string           `yaml:"channel"`
	LinkNames   *bool            `yaml:"link_names"`
	UnfurlMedia *bool            `yaml:"unfurl_media"`
	UnfurlLinks *bool            `yaml:"unfurl_links"`
	Markdown    *bool            `yaml:"mrkdwn"`
	Parse       string           `yaml:"parse"`
	Attachments []attachmentFile `yaml:"attachments"`
}

type attachmentFile struct {
	Fallback string      `yaml:"fallback"`
	Color    string      `yaml:"color"`
	Pretext  string      `yaml:"pretext"`
	Author   *authorFile `yaml:"author"`
	Title    *titleFile  `yaml:"title"`
	Text     string      `yaml:"text"`
	ImageURL string      `yaml:"image_url"`
	ThumbURL string      `yaml:"thumb_url"`
	Footer   *footerFile `yaml:"footer"`
	Fields   []fieldFile `yaml:"fields"`
}

type authorFile struct {
	Name string `yaml:"name"`
	Link string `yaml:"link"`
	Icon string `yaml:"icon"`
}

type titleFile struct {
	Text string `yaml:"text"`
	Link string `yaml:"link"`
}

type footerFile struct {
	Text string `yaml:"text"`
	Icon string `yaml:"icon"`
	TS   *int64 `yaml:"ts"`
}

type fieldFile struct {
	Title string `yaml:"title"`
	Value string `yaml:"value"`
	Short *bool  `yaml:"short"`
}

func loadMessageFile(path string) (*messageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open message file %s", path)
	}
	defer f.Close()

	var mf messageFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&mf); err != nil {
		return nil, errors.Wrapf(err, "unable to decode message file %s", path)
	}
	return &mf, nil
}

// builder turns the definition into a request builder, filling empty fields from d
func (mf *messageFile) builder(d defaults) (*message.RequestBuilder, error) {
	username, emoji, channel := mf.Username, mf.IconEmoji, mf.Channel
	if username == "" {
		username = d.Username
	}
	if emoji == "" && mf.IconURL == "" {
		emoji = d.IconEmoji
	}
	if channel == "" {
		channel = d.Channel
	}

	b := message.NewRequest(mf.Text, username).
		IconEmoji(emoji).
		IconURL(mf.IconURL).
		Channel(channel)
	if mf.LinkNames != nil {
		b.LinkNames(*mf.LinkNames)
	}
	if mf.UnfurlMedia != nil {
		b.UnfurlMedia(*mf.UnfurlMedia)
	}
	if mf.UnfurlLinks != nil {
		b.UnfurlLinks(*mf.UnfurlLinks)
	}
	if mf.Markdown != nil {
		b.Markdown(*mf.Markdown)
	}
	if mf.Parse != "" {
		p, err := message.ParseModeOf(mf.Parse)
		if err != nil {
			return nil, err
		}
		b.Parse(p)
	}

	for i, af := range mf.Attachments {
		a, err := af.build()
		if err != nil {
			return nil, errors.Wrapf(err, "attachment %d", i)
		}
		b.AddAttachments(a)
	}
	return b, nil
}

// parseColor reads a preset or hex color; "happy" picks a random pleasant color
func parseColor(s string) (message.Color, error) {
	if strings.EqualFold(s, happyColor) {
		return message.HappyColor(), nil
	}
	return message.ColorOf(s)
}

func (af attachmentFile) build() (message.Attachment, error) {
	b := message.NewAttachment(af.Fallback).
		Pretext(af.Pretext).
		Text(af.Text).
		ImageURL(af.ImageURL).
		ThumbURL(af.ThumbURL)

	if af.Color != "" {
		c, err := parseColor(af.Color)
		if err != nil {
			return message.Attachment{}, err
		}
		b.Color(c)
	}
	if af.Author != nil {
		a, err := message.NewAuthor(af.Author.Name).Link(af.Author.Link).Icon(af.Author.Icon).Build()
		if err != nil {
			return message.Attachment{}, err
		}
		b.Author(a)
	}
	if af.Title != nil {
		t, err := message.NewTitle(af.Title.Text).Link(af.Title.Link).Build()
		if err != nil {
			return message.Attachment{}, err
		}
		b.Title(t)
	}
	if af.Footer != nil {
		fb := message.NewFooter(af.Footer.Text).Icon(af.Footer.Icon)
		if af.Footer.TS != nil {
			fb.Timestamp(*af.Footer.TS)
		}
		f, err := fb.Build()
		if err != nil {
			return message.Attachment{}, err
		}
		b.Footer(f)
	}
	for _, ff := range af.Fields {
		fb := message.NewField(ff.Title, ff.Value)
		if ff.Short != nil {
			fb.Short(*ff.Short)
		}
		f, err := fb.Build()
		if err != nil {
			return message.Attachment{}, err
		}
		b.AddFields(f)
	}
	return b.Build()
}
