package main

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nezorflame/slackmsg/message"
	"github.com/nezorflame/slackmsg/slack"
	"github.com/nezorflame/slackmsg/store"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// cronParser accepts 5-field expressions: minute, hour, day of month, month, day of week
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// sender posts a request and returns Slack's answer: a response code or a message timestamp
type sender interface {
	send(ctx context.Context, req message.Request) (string, error)
}

type webhookSender struct {
	hook *slack.WebHook
}

func (s webhookSender) send(ctx context.Context, req message.Request) (string, error) {
	code, err := s.hook.Send(ctx, req)
	if err != nil {
		return "", err
	}
	return code.String(), nil
}

type apiSender struct {
	api *slack.APISender
}

// send posts to the channel of the request
func (s apiSender) send(ctx context.Context, req message.Request) (string, error) {
	return s.api.Send(ctx, "", req)
}

// newSender picks the Web API when useAPI is set, the incoming webhook otherwise
func newSender(c *config, useAPI bool) (sender, error) {
	if useAPI {
		if c.BotToken == "" {
			return nil, errors.New("api.bot_token can't be empty")
		}
		api, err := slack.NewAPISender(c.BotToken)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create Web API sender")
		}
		return apiSender{api: api}, nil
	}

	var (
		token slack.WebHookToken
		err   error
	)
	if c.WebHookToken != "" {
		token, err = slack.ParseWebHookToken(c.WebHookToken)
	} else {
		token, err = slack.WebHookTokenFromEnv()
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to get webhook token")
	}
	hook, err := slack.NewWebHook(token, c.WebHook)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create webhook")
	}
	return webhookSender{hook: hook}, nil
}

// deliver sends req unless once is set and the same payload was already delivered.
// The delivery log is optional.
func deliver(ctx context.Context, s sender, db *store.DeliveryLog, req message.Request, once bool) (skipped bool, err error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return false, errors.Wrap(err, "unable to marshal request")
	}

	if once && db != nil {
		seen, err := db.Seen(payload)
		if err != nil {
			return false, errors.Wrap(err, "unable to check delivery log")
		}
		if seen {
			logrus.WithField("key", store.Key(payload)).Info("Message was already delivered, skipping")
			return true, nil
		}
	}

	answer, err := s.send(ctx, req)
	if err != nil {
		return false, errors.Wrap(err, "unable to send message to Slack")
	}
	logrus.WithField("response", answer).Info("Message sent")

	if db != nil {
		if _, err = db.Record(payload, req.Channel().OrElse(""), answer); err != nil {
			return false, errors.Wrap(err, "unable to record delivery")
		}
	}
	return false, nil
}

// scheduleWatcher posts the scheduled message files until ctx is done
func scheduleWatcher(ctx context.Context, c *config, db *store.DeliveryLog, senderFor func(scheduleEntry) (sender, error)) error {
	if len(c.Schedule) == 0 {
		return errors.New("schedule can't be empty")
	}

	var mu sync.Mutex // bbolt allows a single writer, keep jobs sequential
	sched := cron.New(cron.WithParser(cronParser))
	for i, e := range c.Schedule {
		s, err := senderFor(e)
		if err != nil {
			return errors.Wrapf(err, "schedule[%d]", i)
		}
		job := scheduleJob(ctx, c, db, s, e, &mu)
		if _, err = sched.AddFunc(e.Cron, job); err != nil {
			return errors.Wrapf(err, "unable to schedule %s", e.File)
		}
		logrus.WithFields(logrus.Fields{"cron": e.Cron, "file": e.File}).Info("Message scheduled")
	}

	sched.Start()
	<-ctx.Done()
	logrus.Warn("Stopping schedule watcher")
	<-sched.Stop().Done()
	return nil
}

func scheduleJob(ctx context.Context, c *config, db *store.DeliveryLog, s sender, e scheduleEntry, mu *sync.Mutex) func() {
	return func() {
		mu.Lock()
		defer mu.Unlock()

		log := logrus.WithField("file", e.File)
		mf, err := loadMessageFile(e.File)
		if err != nil {
			log.WithError(err).Error("Unable to load message")
			return
		}
		b, err := mf.builder(c.Defaults)
		if err != nil {
			log.WithError(err).Error("Unable to build message")
			return
		}
		req, err := b.Build()
		if err != nil {
			log.WithError(err).Error("Invalid message")
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, requestTimeout(c))
		defer cancel()
		if _, err = deliver(sendCtx, s, db, req, e.Once); err != nil {
			log.WithError(err).Error("Unable to deliver message")
		}
	}
}
