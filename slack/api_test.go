package slack

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/nezorflame/slackmsg/message"

	"github.com/pkg/errors"
	slackapi "github.com/slack-go/slack"
)

type postedMessage struct {
	channelID string
	options   []slackapi.MsgOption
}

type fakePoster struct {
	mu      sync.Mutex
	posted  []postedMessage
	errs    []error
	calls   int
	replyTS string
}

func (f *fakePoster) PostMessageContext(_ context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", "", err
		}
	}
	f.posted = append(f.posted, postedMessage{channelID: channelID, options: options})
	return channelID, f.replyTS, nil
}

func applyOptions(t *testing.T, channel string, options []slackapi.MsgOption) url.Values {
	t.Helper()
	_, values, err := slackapi.UnsafeApplyMsgOptions("xoxb-test", channel, "https://slack.example.com/api/", options...)
	if err != nil {
		t.Fatalf("unable to apply options: %v", err)
	}
	return values
}

func TestAPISenderSend(t *testing.T) {
	client := &fakePoster{replyTS: "1392734382.000100"}
	sender := &APISender{client: client}

	ts, err := sender.Send(context.Background(), "C123", testRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != "1392734382.000100" {
		t.Errorf("ts = %q, want %q", ts, "1392734382.000100")
	}
	if len(client.posted) != 1 {
		t.Fatalf("expected 1 posted message, got %d", len(client.posted))
	}

	values := applyOptions(t, "C123", client.posted[0].options)
	checks := map[string]string{
		"channel":    "C123",
		"text":       "hello",
		"username":   "bot",
		"icon_emoji": ":robot_face:",
		"link_names": "1",
	}
	for key, want := range checks {
		if got := values.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if values.Get("icon_url") != "" {
		t.Errorf("icon_url = %q, want it unset when an emoji is present", values.Get("icon_url"))
	}

	var attachments []slackapi.Attachment
	if err := json.Unmarshal([]byte(values.Get("attachments")), &attachments); err != nil {
		t.Fatalf("unable to decode attachments %q: %v", values.Get("attachments"), err)
	}
	if len(attachments) != 1 || attachments[0].Fallback != "fallback" || attachments[0].Color != "good" {
		t.Errorf("unexpected attachments: %+v", attachments)
	}
}

func TestAPISenderChannel(t *testing.T) {
	client := &fakePoster{}
	sender := &APISender{client: client}

	if _, err := sender.Send(context.Background(), "", testRequest(t)); !errors.Is(err, ErrNoChannel) {
		t.Errorf("err = %v, want ErrNoChannel", err)
	}

	req, err := message.From(testRequest(t)).Channel("#general").Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sender.Send(context.Background(), "", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.posted[0].channelID != "#general" {
		t.Errorf("channel = %q, want #general", client.posted[0].channelID)
	}
}

func TestAPISenderRateLimited(t *testing.T) {
	client := &fakePoster{errs: []error{&slackapi.RateLimitedError{RetryAfter: time.Millisecond}, nil}}
	sender := &APISender{client: client}

	if _, err := sender.Send(context.Background(), "C1", testRequest(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("calls = %d, want 2", client.calls)
	}
}

func TestAPISenderPostError(t *testing.T) {
	client := &fakePoster{errs: []error{errors.New("channel_not_found")}}
	sender := &APISender{client: client}

	if _, err := sender.Send(context.Background(), "C1", testRequest(t)); err == nil {
		t.Fatal("expected an error")
	}
	if client.calls != 1 {
		t.Errorf("other errors should not be retried, got %d calls", client.calls)
	}
}

func TestToAPIAttachment(t *testing.T) {
	author, _ := message.NewAuthor("CI").Link("https://ci.example.com").Build()
	title, _ := message.TitleOf("Build")
	footer, _ := message.NewFooter("nightly").Timestamp(1392734382).Build()
	field, _ := message.NewField("Status", "*ok*").Short(false).Build()
	a, err := message.NewAttachment("fb").
		Pretext("_pre_").
		Author(author).
		Title(title).
		Footer(footer).
		AddFields(field).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	att := toAPIAttachment(a)
	if att.AuthorName != "CI" || att.AuthorLink != "https://ci.example.com" {
		t.Errorf("author = %q %q", att.AuthorName, att.AuthorLink)
	}
	if att.Title != "Build" || att.TitleLink != "" {
		t.Errorf("title = %q %q", att.Title, att.TitleLink)
	}
	if att.Footer != "nightly" || att.Ts != "1392734382" {
		t.Errorf("footer = %q %q", att.Footer, att.Ts)
	}
	if len(att.MarkdownIn) != 2 || att.MarkdownIn[0] != "pretext" || att.MarkdownIn[1] != "fields" {
		t.Errorf("MarkdownIn = %v, want [pretext fields]", att.MarkdownIn)
	}
	if len(att.Fields) != 1 || att.Fields[0].Short {
		t.Errorf("Fields = %+v", att.Fields)
	}
}

func TestNewAPISender(t *testing.T) {
	if _, err := NewAPISender(""); err == nil {
		t.Error("expected an error for an empty token")
	}
	if _, err := NewAPISender("xoxb-test", slackapi.OptionAPIURL("https://slack.example.com/api/")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
