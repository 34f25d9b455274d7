package slack

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nezorflame/slackmsg/message"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrRejected is returned alongside any response code other than ResponseOK.
var ErrRejected = errors.New("message rejected by Slack")

// WebHook posts messages to a Slack incoming webhook.
type WebHook struct {
	token WebHookToken
	cfg   Config
}

// NewWebHook creates a WebHook for token. Empty config fields take their defaults.
func NewWebHook(token WebHookToken, cfg Config) (*WebHook, error) {
	if token.IsZero() {
		return nil, errors.Wrap(ErrInvalidToken, "webhook token must be set")
	}
	return &WebHook{token: token, cfg: cfg.withDefaults()}, nil
}

// URL returns the address messages are posted to.
func (w *WebHook) URL() string {
	return strings.TrimSuffix(w.cfg.URL, "/") + "/" + w.token.String()
}

// Send posts req and returns Slack's answer. A code other than ResponseOK is
// returned together with an error wrapping ErrRejected.
func (w *WebHook) Send(ctx context.Context, req message.Request) (ResponseCode, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, errors.Wrap(err, "unable to marshal request")
	}

	logrus.WithFields(logrus.Fields{
		"team":        w.token.PartT(),
		"attachments": len(req.Attachments()),
	}).Debug("Posting message to webhook")
	resp, err := makeRequest(ctx, w.URL(), methodPOST, contentJSON, w.cfg.UserAgent, body, w.cfg.Timeout, w.cfg.Retries)
	if err != nil {
		return 0, errors.Wrap(err, "unable to make POST request")
	}

	code, err := ParseResponseCode(string(resp.body))
	if err != nil {
		return 0, errors.Wrapf(err, "status %d", resp.status)
	}
	if code != ResponseOK {
		return code, errors.Wrapf(ErrRejected, "%s (status %d)", code, resp.status)
	}
	return code, nil
}
