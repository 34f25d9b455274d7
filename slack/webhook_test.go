package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nezorflame/slackmsg/message"

	"github.com/pkg/errors"
)

const testToken = "T12345678/B12345678/abcdefghijklmnopqrstuvwx"

func TestParseWebHookToken(t *testing.T) {
	for _, in := range []string{
		testToken,
		"https://hooks.slack.com/services/" + testToken,
		" " + testToken + "\n",
	} {
		tok, err := ParseWebHookToken(in)
		if err != nil {
			t.Fatalf("ParseWebHookToken(%q): unexpected error: %v", in, err)
		}
		if tok.String() != testToken {
			t.Errorf("String() = %q, want %q", tok.String(), testToken)
		}
		if tok.PartT() != "T12345678" || tok.PartB() != "B12345678" || tok.PartX() != "abcdefghijklmnopqrstuvwx" {
			t.Errorf("unexpected parts: %s %s %s", tok.PartT(), tok.PartB(), tok.PartX())
		}
	}

	for _, in := range []string{"", "T1234/B1234/xyz", "X12345678/B12345678/abcdefghijklmnopqrstuvwx", "T12345678-B12345678-abcdefghijklmnopqrstuvwx"} {
		if _, err := ParseWebHookToken(in); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseWebHookToken(%q) err = %v, want ErrInvalidToken", in, err)
		}
	}
}

func TestWebHookTokenFromEnv(t *testing.T) {
	t.Setenv(EnvTokenPartT, "T12345678")
	t.Setenv(EnvTokenPartB, "B12345678")
	t.Setenv(EnvTokenPartX, "abcdefghijklmnopqrstuvwx")

	tok, err := WebHookTokenFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.String() != testToken {
		t.Errorf("String() = %q, want %q", tok.String(), testToken)
	}
}

func TestWebHookTokenFromEnvMissing(t *testing.T) {
	t.Setenv(EnvTokenPartT, "T12345678")
	t.Setenv(EnvTokenPartB, "")
	t.Setenv(EnvTokenPartX, "")

	_, err := WebHookTokenFromEnv()
	if !errors.Is(err, ErrMissingEnv) {
		t.Fatalf("err = %v, want ErrMissingEnv", err)
	}
	if !strings.Contains(err.Error(), EnvTokenPartB+", "+EnvTokenPartX) {
		t.Errorf("error %q should list every missing key", err)
	}
	if strings.Contains(err.Error(), EnvTokenPartT) {
		t.Errorf("error %q should not list present keys", err)
	}
}

func TestParseResponseCode(t *testing.T) {
	cases := map[string]ResponseCode{
		"ok":                  ResponseOK,
		"OK\n":                ResponseOK,
		"channel_not_found":   ResponseChannelNotFound,
		"No_Text":             ResponseNoText,
		"superfluous_charset": ResponseSuperfluousCharset,
	}
	for in, want := range cases {
		got, err := ParseResponseCode(in)
		if err != nil || got != want {
			t.Errorf("ParseResponseCode(%q) = (%v, %v), want %v", in, got, err, want)
		}
	}
	if _, err := ParseResponseCode("<html>"); !errors.Is(err, ErrUnknownResponse) {
		t.Errorf("ParseResponseCode(<html>) err = %v, want ErrUnknownResponse", err)
	}
	if len(ResponseCodes) != 20 {
		t.Errorf("len(ResponseCodes) = %d, want 20", len(ResponseCodes))
	}
}

type hookServer struct {
	*httptest.Server
	mu        sync.Mutex
	calls     int32
	path      string
	userAgent string
	body      []byte
}

func newHookServer(t *testing.T, status int, answer string) *hookServer {
	t.Helper()
	hs := &hookServer{}
	hs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hs.calls, 1)
		body, _ := io.ReadAll(r.Body)
		hs.mu.Lock()
		hs.path, hs.userAgent, hs.body = r.URL.Path, r.UserAgent(), body
		hs.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, answer)
	}))
	t.Cleanup(hs.Close)
	return hs
}

func newTestWebHook(t *testing.T, url string) *WebHook {
	t.Helper()
	tok, err := ParseWebHookToken(testToken)
	if err != nil {
		t.Fatal(err)
	}
	hook, err := NewWebHook(tok, Config{URL: url + "/services/", Timeout: time.Second, Retries: 2})
	if err != nil {
		t.Fatal(err)
	}
	return hook
}

func testRequest(t *testing.T) message.Request {
	t.Helper()
	att, err := message.NewAttachment("fallback").Color(message.Good()).Text("*done*").Build()
	if err != nil {
		t.Fatal(err)
	}
	req, err := message.NewRequest("hello", "bot").IconEmoji("robot_face").AddAttachments(att).Build()
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestWebHookSend(t *testing.T) {
	srv := newHookServer(t, http.StatusOK, "ok")
	hook := newTestWebHook(t, srv.URL)

	code, err := hook.Send(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != ResponseOK {
		t.Errorf("code = %v, want %v", code, ResponseOK)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.path != "/services/"+testToken {
		t.Errorf("path = %q, want %q", srv.path, "/services/"+testToken)
	}
	if srv.userAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", srv.userAgent, DefaultUserAgent)
	}
	var decoded message.Request
	if err := json.Unmarshal(srv.body, &decoded); err != nil {
		t.Fatalf("server received an invalid request %s: %v", srv.body, err)
	}
	if decoded.IconEmoji().OrElse("") != ":robot_face:" {
		t.Errorf("icon_emoji = %q, want %q", decoded.IconEmoji().OrElse(""), ":robot_face:")
	}
}

func TestWebHookSendRejected(t *testing.T) {
	srv := newHookServer(t, http.StatusNotFound, "channel_not_found")
	hook := newTestWebHook(t, srv.URL)

	code, err := hook.Send(context.Background(), testRequest(t))
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	if code != ResponseChannelNotFound {
		t.Errorf("code = %v, want %v", code, ResponseChannelNotFound)
	}
	if n := atomic.LoadInt32(&srv.calls); n != 1 {
		t.Errorf("client errors should not be retried, got %d calls", n)
	}
}

func TestWebHookSendUnknownAnswer(t *testing.T) {
	srv := newHookServer(t, http.StatusOK, "<html>maintenance</html>")
	hook := newTestWebHook(t, srv.URL)

	if _, err := hook.Send(context.Background(), testRequest(t)); !errors.Is(err, ErrUnknownResponse) {
		t.Errorf("err = %v, want ErrUnknownResponse", err)
	}
}

func TestWebHookSendServerError(t *testing.T) {
	srv := newHookServer(t, http.StatusInternalServerError, "")
	hook := newTestWebHook(t, srv.URL)

	_, err := hook.Send(context.Background(), testRequest(t))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error %q should contain the status", err)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error %q should count both attempts", err)
	}
	if n := atomic.LoadInt32(&srv.calls); n != 2 {
		t.Errorf("calls = %d, want 2 (one per retry)", n)
	}
}

func TestWebHookSendCanceled(t *testing.T) {
	srv := newHookServer(t, http.StatusOK, "ok")
	hook := newTestWebHook(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := hook.Send(ctx, testRequest(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if err != nil && !strings.Contains(err.Error(), "after 0 attempts") {
		t.Errorf("error %q should report that nothing was sent", err)
	}
	if n := atomic.LoadInt32(&srv.calls); n != 0 {
		t.Errorf("calls = %d, want 0", n)
	}
}

func TestNewWebHook(t *testing.T) {
	if _, err := NewWebHook(WebHookToken{}, Config{}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("NewWebHook(zero token) err = %v, want ErrInvalidToken", err)
	}
	tok, _ := ParseWebHookToken(testToken)
	hook, err := NewWebHook(tok, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hook.URL() != DefaultWebHookURL+testToken {
		t.Errorf("URL() = %q, want %q", hook.URL(), DefaultWebHookURL+testToken)
	}
}
