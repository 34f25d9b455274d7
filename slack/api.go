package slack

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/nezorflame/slackmsg/message"
	"github.com/nezorflame/slackmsg/option"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
)

// maxRetries caps the retries of a rate limited Web API call.
const maxRetries = 3

// ErrNoChannel is returned when neither the caller nor the request names a channel.
var ErrNoChannel = errors.New("no channel to post to")

// poster is the part of the Web API client used to send messages.
type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// APISender posts messages with the chat.postMessage Web API method and a bot token.
type APISender struct {
	client poster
}

// NewAPISender creates an APISender for the bot token.
func NewAPISender(botToken string, options ...slackapi.Option) (*APISender, error) {
	if botToken == "" {
		return nil, errors.New("bot token must be set")
	}
	return &APISender{client: slackapi.New(botToken, options...)}, nil
}

// Send posts req to channel, or to the request's own channel when channel is empty.
// It returns the timestamp of the posted message.
func (s *APISender) Send(ctx context.Context, channel string, req message.Request) (string, error) {
	if channel == "" {
		channel = req.Channel().OrElse("")
	}
	if channel == "" {
		return "", ErrNoChannel
	}

	var ts string
	err := retryOnRateLimit(ctx, func() error {
		var err error
		_, ts, err = s.client.PostMessageContext(ctx, channel, buildMessageOptions(req)...)
		return err
	})
	if err != nil {
		return "", errors.Wrapf(err, "unable to post message to %s", channel)
	}
	logrus.WithFields(logrus.Fields{"channel": channel, "ts": ts}).Debug("Message posted")
	return ts, nil
}

// buildMessageOptions translates a Request into Web API message options.
func buildMessageOptions(req message.Request) []slackapi.MsgOption {
	params := slackapi.NewPostMessageParameters()
	params.Username = req.Username()
	params.Markdown = req.Markdown()
	params.UnfurlLinks = req.UnfurlLinks()
	params.UnfurlMedia = req.UnfurlMedia()
	params.Parse = req.Parse().String()
	if req.LinkNames() {
		params.LinkNames = 1
	}
	if emoji, ok := req.IconEmoji().Get(); ok {
		params.IconEmoji = emoji
	} else {
		params.IconURL = urlString(req.IconURL())
	}

	options := []slackapi.MsgOption{
		slackapi.MsgOptionText(req.Text(), false),
		slackapi.MsgOptionPostMessageParameters(params),
	}
	if list := req.Attachments(); len(list) > 0 {
		attachments := make([]slackapi.Attachment, 0, len(list))
		for _, a := range list {
			attachments = append(attachments, toAPIAttachment(a))
		}
		options = append(options, slackapi.MsgOptionAttachments(attachments...))
	}
	return options
}

// toAPIAttachment converts an Attachment to its Web API form.
func toAPIAttachment(a message.Attachment) slackapi.Attachment {
	att := slackapi.Attachment{
		Fallback:   a.Fallback(),
		Pretext:    a.Pretext().OrElse(""),
		Text:       a.Text().OrElse(""),
		ImageURL:   urlString(a.ImageURL()),
		ThumbURL:   urlString(a.ThumbURL()),
		MarkdownIn: make([]string, 0, len(a.MarkdownInputs())),
	}
	a.Color().IfPresent(func(c message.Color) { att.Color = c.Value() })
	a.Author().IfPresent(func(au message.Author) {
		att.AuthorName = au.Name()
		att.AuthorLink = urlString(au.Link())
		att.AuthorIcon = urlString(au.Icon())
	})
	a.Title().IfPresent(func(t message.Title) {
		att.Title = t.Text()
		att.TitleLink = urlString(t.Link())
	})
	a.Footer().IfPresent(func(f message.Footer) {
		att.Footer = f.Text()
		att.FooterIcon = urlString(f.Icon())
		if ts, ok := f.Timestamp().Get(); ok {
			att.Ts = json.Number(strconv.FormatInt(ts, 10))
		}
	})
	for _, in := range a.MarkdownInputs() {
		att.MarkdownIn = append(att.MarkdownIn, in.String())
	}
	for _, f := range a.Fields() {
		att.Fields = append(att.Fields, slackapi.AttachmentField{
			Title: f.Title(),
			Value: f.Value(),
			Short: f.IsShort(),
		})
	}
	return att
}

// retryOnRateLimit calls fn and retries with backoff on Slack rate limit errors.
func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) || attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * time.Second
		}
		logrus.WithField("wait", wait).Warn("Rate limited by Slack, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func urlString(u option.Option[url.URL]) string {
	v, ok := u.Get()
	if !ok {
		return ""
	}
	return v.String()
}
