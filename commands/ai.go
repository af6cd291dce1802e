package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/picobox/picobox/core/config"
	"github.com/picobox/picobox/core/proc"
)

// aiSystemPrompt teaches the model what the shell can and can't do so the
// suggestions it gives actually work here.
const aiSystemPrompt = `You are a helpful Unix shell assistant for PicoBox, a compact busybox-style shell.

Shell Capabilities:
- Simple commands: echo hello, ls, pwd, cat file.txt
- Pipelines: cat file | grep pattern | wc -l
- Redirections: echo test > file.txt, cat < input.txt, cmd >> append.txt
- Built-in commands: cd, exit, help, plus the bundled Unix utilities
- Command sequences: cmd1 ; cmd2 ; cmd3

Important Limitations:
- When a command in a pipeline has output redirection (>), it breaks the pipe chain
- No background jobs (&), job control, or command substitution

Response Format:
- For 'how do I' questions: Provide ONLY the command, no explanation
- For 'what is' or 'explain' questions: Brief, friendly explanation
- No markdown formatting, no code blocks, just plain text
- Be concise and beginner-friendly`

type aiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type aiChatRequest struct {
	Model    string          `json:"model"`
	Messages []aiChatMessage `json:"messages"`
}

type aiChatResponse struct {
	Choices []struct {
		Message aiChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// aiClient talks to an OpenAI style chat completions endpoint.
type aiClient struct {
	Endpoint   string
	Model      string
	APIKey     string
	HTTPClient *http.Client
}

// Ask sends the query and returns the assistant's reply.
func (c *aiClient) Ask(query string) (string, error) {
	body, err := json.Marshal(aiChatRequest{
		Model: c.Model,
		Messages: []aiChatMessage{
			{Role: "system", Content: aiSystemPrompt},
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequest(http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Authorization", "Bearer "+c.APIKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	var parsed aiChatResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("bad response from %s: %w", c.Endpoint, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// AI implements the ai applet, an assistant for shell questions.
func AI(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "ai QUESTION...",
		Short: "Ask the AI assistant for help with shell commands.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			return fmt.Errorf("missing QUESTION, try: ai how do I list all files")
		}

		apiKey, ok := p.LookupEnv("AI_SHELL")
		if !ok || apiKey == "" {
			return fmt.Errorf("AI_SHELL environment variable not set, set it with: AI_SHELL=your-api-key")
		}

		cfg, err := config.LoadOrDefault(p.Getenv("PICOBOX_CONFIG"))
		if err != nil {
			return err
		}

		client := &aiClient{
			Endpoint:   cfg.AI.Endpoint,
			Model:      cfg.AI.Model,
			APIKey:     apiKey,
			HTTPClient: http.DefaultClient,
		}

		fmt.Fprintln(p.Stdout, "Thinking...")
		answer, err := client.Ask(strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintln(p.Stdout, answer)
		return nil
	})
}

var _ proc.Func = AI

func init() {
	register("ai", "Ask the AI assistant for help with shell commands.", AI)
}
