package chat

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultDemoDelay is the pause between streamed words in demo replies.
const DefaultDemoDelay = 40 * time.Millisecond

// demoReply is a scripted answer picked when the question mentions any of
// its keywords.
type demoReply struct {
	keywords []string
	text     string
}

var demoReplies = []demoReply{
	{
		keywords: []string{"activit", "game", "hands-on"},
		text: "Here are a few activities:\n\n" +
			"- **Think, pair, share** to open the topic\n" +
			"- A short **station rotation** with three practice tasks\n" +
			"- An **exit ticket** with one question to check understanding",
	},
	{
		keywords: []string{"objective", "goal", "outcome"},
		text: "Try objectives that start with a verb students can show:\n\n" +
			"1. *Explain* the key idea in their own words\n" +
			"2. *Apply* it to a new example\n" +
			"3. *Compare* two approaches and justify a choice",
	},
	{
		keywords: []string{"tag", "categor", "label"},
		text: "Useful tags are short and reusable: a subject (`math`), " +
			"a grade (`grade-3`), and a format (`group-work`).",
	},
	{
		keywords: []string{"title", "name"},
		text: "Good titles name the idea and the hook, for example " +
			"**Fractions with Pizza** or **Weather Detectives**.",
	},
}

const demoFallback = "I'm the offline demo assistant. Ask me about **activities**, " +
	"**objectives**, **tags**, or **titles** for your lesson."

// DemoService replays scripted replies word by word. It needs no network
// access and is used for offline demos and screenshots.
type DemoService struct {
	Delay time.Duration
}

// NewDemoService returns a demo backend that pauses delay between words.
func NewDemoService(delay time.Duration) *DemoService {
	return &DemoService{Delay: delay}
}

// Stream implements Service.
func (d *DemoService) Stream(ctx context.Context, history []Message) (<-chan Event, error) {
	question := lastUserMessage(history)
	if question == "" {
		return nil, errors.New("no user message to send")
	}

	words := splitKeepSpace(demoAnswer(question))
	events := make(chan Event, 1)

	go func() {
		defer close(events)
		for _, w := range words {
			if !d.wait(ctx) {
				events <- errorEvent(ctx.Err())
				return
			}
			events <- Event{Type: EventText, Text: w}
		}
		events <- Event{Type: EventDone}
	}()

	return events, nil
}

func (d *DemoService) wait(ctx context.Context) bool {
	if d.Delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func demoAnswer(question string) string {
	q := strings.ToLower(question)
	for _, r := range demoReplies {
		for _, k := range r.keywords {
			if strings.Contains(q, k) {
				return r.text
			}
		}
	}
	return demoFallback
}

// splitKeepSpace splits s after each space so the pieces join back to s.
func splitKeepSpace(s string) []string {
	var parts []string
	for s != "" {
		i := strings.IndexByte(s, ' ')
		if i < 0 {
			parts = append(parts, s)
			break
		}
		parts = append(parts, s[:i+1])
		s = s[i+1:]
	}
	return parts
}
