package notify

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slackServer(t *testing.T, response string, received *map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		if received != nil {
			*received = map[string]string{
				"channel": r.FormValue("channel"),
				"text":    r.FormValue("text"),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSlackNotifier_Notify(t *testing.T) {
	var received map[string]string
	server := slackServer(t, `{"ok":true,"channel":"C123","ts":"1700000000.000100"}`, &received)

	notifier := NewSlackNotifier("xoxb-test", "C123", slack.OptionAPIURL(server.URL+"/"))
	err := notifier.Notify(context.Background(), "measured 6 benchmarks")
	require.NoError(t, err)

	assert.Equal(t, "C123", received["channel"])
	assert.Equal(t, "measured 6 benchmarks", received["text"])
}

func TestSlackNotifier_Notify_Error(t *testing.T) {
	server := slackServer(t, `{"ok":false,"error":"channel_not_found"}`, nil)

	notifier := NewSlackNotifier("xoxb-test", "C404", slack.OptionAPIURL(server.URL+"/"))
	err := notifier.Notify(context.Background(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestSlackNotifier_Notify_MissingChannel(t *testing.T) {
	err := NewSlackNotifier("xoxb-test", "").Notify(context.Background(), "test")
	assert.EqualError(t, err, "slack channel is not configured")
}

func TestNew(t *testing.T) {
	assert.Equal(t, Nop{}, New("", "C123"))
	assert.IsType(t, &SlackNotifier{}, New("xoxb-test", "C123"))
}

func TestSend_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	server := slackServer(t, `{"ok":false,"error":"invalid_auth"}`, nil)
	Send(context.Background(), NewSlackNotifier("bad", "C1", slack.OptionAPIURL(server.URL+"/")), "hello")

	assert.Contains(t, buf.String(), "notification failed")
	assert.Contains(t, buf.String(), "invalid_auth")

	buf.Reset()
	Send(context.Background(), Nop{}, "hello")
	assert.Empty(t, buf.String())
}
