package slack

import (
	"strings"

	"github.com/nezorflame/slackmsg/enum"

	"github.com/pkg/errors"
)

// ErrUnknownResponse is returned for a webhook answer that is no known ResponseCode.
var ErrUnknownResponse = errors.New("no response code found matching value")

// ResponseCode is the plain-text answer of an incoming webhook.
type ResponseCode int

// Response codes
const (
	ResponseOK ResponseCode = iota
	ResponseChannelNotFound
	ResponseNotInChannel
	ResponseIsArchived
	ResponseMsgTooLong
	ResponseNoText
	ResponseTooManyAttachments
	ResponseRateLimited
	ResponseNotAuthed
	ResponseInvalidAuth
	ResponseAccountInactive
	ResponseInvalidArgName
	ResponseInvalidArrayArg
	ResponseInvalidCharset
	ResponseInvalidFormData
	ResponseInvalidPostType
	ResponseMissingPostType
	ResponseRequestTimeout
	ResponseMissingCharset
	ResponseSuperfluousCharset
)

var responseNames = []string{
	"ok",
	"channel_not_found",
	"not_in_channel",
	"is_archived",
	"msg_too_long",
	"no_text",
	"too_many_attachments",
	"rate_limited",
	"not_authed",
	"invalid_auth",
	"account_inactive",
	"invalid_arg_name",
	"invalid_array_arg",
	"invalid_charset",
	"invalid_form_data",
	"invalid_post_type",
	"missing_post_type",
	"request_timeout",
	"missing_charset",
	"superfluous_charset",
}

// ResponseCodes lists every response code.
var ResponseCodes = func() []ResponseCode {
	codes := make([]ResponseCode, len(responseNames))
	for i := range codes {
		codes[i] = ResponseCode(i)
	}
	return codes
}()

func (c ResponseCode) String() string {
	if c < 0 || int(c) >= len(responseNames) {
		return "unknown"
	}
	return responseNames[c]
}

// ParseResponseCode looks up a response code, ignoring case and surrounding space.
func ParseResponseCode(s string) (ResponseCode, error) {
	c, ok := enum.Lookup(ResponseCodes, strings.TrimSpace(s))
	if !ok {
		return 0, errors.Wrapf(ErrUnknownResponse, "%q", s)
	}
	return c, nil
}
