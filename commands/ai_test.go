package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picobox/picobox/commands/cmdtest"
)

func TestAIClientAsk(t *testing.T) {
	t.Run("returns the first choice", func(t *testing.T) {
		var gotAuth string
		var gotReq aiChatRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": "ls -la\n"}},
				},
			})
		}))
		defer server.Close()

		client := &aiClient{
			Endpoint:   server.URL,
			Model:      "test-model",
			APIKey:     "secret",
			HTTPClient: server.Client(),
		}

		answer, err := client.Ask("how do I list all files")
		require.NoError(t, err)

		assert.Equal(t, "ls -la", answer)
		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, "test-model", gotReq.Model)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Equal(t, "how do I list all files", gotReq.Messages[1].Content)
	})

	t.Run("API error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "invalid key"},
			})
		}))
		defer server.Close()

		client := &aiClient{Endpoint: server.URL, HTTPClient: server.Client()}
		_, err := client.Ask("anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid key")
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		}))
		defer server.Close()

		client := &aiClient{Endpoint: server.URL, HTTPClient: server.Client()}
		_, err := client.Ask("anything")
		assert.Error(t, err)
	})
}

func TestAI_missingKey(t *testing.T) {
	cmd := cmdtest.Command(AI, "ai", "how", "do", "I", "exit")
	cmd.Env = []string{"HOME=/home/user"}

	out, err := cmd.CombinedOutput()
	assert.Nil(t, err)
	assert.Equal(t, 1, cmd.ExitStatus)
	assert.Contains(t, string(out), "AI_SHELL")
}

func TestAI_missingQuestion(t *testing.T) {
	cmd := cmdtest.Command(AI, "ai")

	_, err := cmd.CombinedOutput()
	assert.Nil(t, err)
	assert.Equal(t, 1, cmd.ExitStatus)
}

func TestPkg_usage(t *testing.T) {
	t.Run("missing subcommand", func(t *testing.T) {
		cmd := cmdtest.Command(Pkg, "pkg")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "usage:")
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		cmd := cmdtest.Command(Pkg, "pkg", "frobnicate")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "unknown subcommand")
	})
}
