package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/autobrr/rxrule/pkg/config"
	"github.com/autobrr/rxrule/pkg/httputils"
)

const (
	maxEmbedsPerMessage = 10
	maxFieldsPerEmbed   = 25
	maxFieldValueLength = 1024

	// hardcoded limit of fields to avoid hammering the api
	defaultMaxFields = 250
	defaultTimeout   = 15 * time.Second
)

type DiscordMessage struct {
	Content   interface{}    `json:"content"`
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

type DiscordEmbed struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Color       int                  `json:"color"`
	Fields      []DiscordEmbedsField `json:"fields,omitempty"`
	Footer      DiscordEmbedsFooter  `json:"footer,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
}

type DiscordEmbedsFooter struct {
	Text string `json:"text"`
}

type DiscordEmbedsField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedColors int

const (
	RED   EmbedColors = 0xed4245
	GREEN EmbedColors = 0x57f287
)

var discordMarkdownChars = regexp.MustCompile("([\\\\*_~`|>])")

func escapeDiscordMarkdown(text string) string {
	if text == "" {
		return text
	}
	return discordMarkdownChars.ReplaceAllString(text, `\$1`)
}

type discordSender struct {
	log    *logrus.Entry
	cfg    config.NotificationsConfig
	client *http.Client
	now    func() time.Time
}

func NewDiscordSender(log *logrus.Entry, cfg config.NotificationsConfig) Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &discordSender{
		log:    log.WithField("notification", "discord"),
		cfg:    cfg,
		client: httputils.NewRetryableHttpClient(timeout, ratelimit.New(1, ratelimit.Per(2*time.Second))),
		now:    time.Now,
	}
}

func (d *discordSender) Name() string {
	return "Discord"
}

func (d *discordSender) CanSend() bool {
	return d.cfg.Discord.WebhookURL != ""
}

func (d *discordSender) Send(ctx context.Context, report Report) error {
	if !d.CanSend() {
		return nil
	}

	if d.cfg.SkipValid && len(report.Violations) == 0 {
		d.log.Debug("Skipping notification for run without violations")
		return nil
	}

	for _, msg := range d.buildMessages(report) {
		if err := d.post(ctx, msg); err != nil {
			return err
		}
	}

	return nil
}

func (d *discordSender) buildMessages(report Report) []DiscordMessage {
	maxFields := d.cfg.MaxFields
	if maxFields <= 0 {
		maxFields = defaultMaxFields
	}

	violations := report.Violations
	truncated := 0
	if len(violations) > maxFields {
		truncated = len(violations) - maxFields
		violations = violations[:maxFields]
	}

	color := GREEN
	if len(report.Violations) > 0 {
		color = RED
	}

	description := fmt.Sprintf("Checked %s value(s) against `%s`, %s violation(s)",
		humanize.Comma(int64(report.Checked)), escapeDiscordMarkdown(report.Pattern),
		humanize.Comma(int64(len(report.Violations))))
	if truncated > 0 {
		description += fmt.Sprintf(" (%s not shown)", humanize.Comma(int64(truncated)))
	}

	footer := DiscordEmbedsFooter{Text: fmt.Sprintf("Took %s", report.RunTime.Truncate(time.Millisecond))}
	timestamp := d.now()

	var embeds []DiscordEmbed
	for start := 0; start < len(violations) || len(embeds) == 0; start += maxFieldsPerEmbed {
		end := min(start+maxFieldsPerEmbed, len(violations))

		embed := DiscordEmbed{
			Title:       fmt.Sprintf("rxrule: %s", report.Rule),
			Description: description,
			Color:       int(color),
			Footer:      footer,
			Timestamp:   timestamp,
		}
		if start > 0 {
			embed.Title += " (continued)"
			embed.Description = ""
		}

		for _, f := range violations[start:end] {
			embed.Fields = append(embed.Fields, DiscordEmbedsField{
				Name:  escapeDiscordMarkdown(f.Name),
				Value: truncate(escapeDiscordMarkdown(f.Value), maxFieldValueLength),
			})
		}

		embeds = append(embeds, embed)
		if end >= len(violations) {
			break
		}
	}

	var messages []DiscordMessage
	for start := 0; start < len(embeds); start += maxEmbedsPerMessage {
		end := min(start+maxEmbedsPerMessage, len(embeds))
		messages = append(messages, DiscordMessage{
			Content:   nil,
			Username:  d.cfg.Discord.Username,
			AvatarURL: d.cfg.Discord.AvatarURL,
			Embeds:    embeds[start:end],
		})
	}

	return messages
}

func (d *discordSender) post(ctx context.Context, msg DiscordMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.Discord.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, bytes.TrimSpace(b))
	}

	d.log.Debugf("Sent notification with %d embed(s)", len(msg.Embeds))
	return nil
}

func truncate(text string, size int) string {
	runes := []rune(text)
	if len(runes) <= size {
		return text
	}
	return string(runes[:size-1]) + "…"
}
