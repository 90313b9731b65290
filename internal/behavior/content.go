package behavior

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Content holds the text pools for the evading control's label and the
// feedback line shown under the question. Pools are data; LoadContent lets a
// JSON file replace any of them.
type Content struct {
	Labels         []string `json:"labels"`
	ExtraLabels    []string `json:"extra_labels"`
	LabelTemplates []string `json:"label_templates"`

	Replies           []string `json:"feedback"`
	ExtraFeedback     []string `json:"extra_feedback"`
	FeedbackTemplates []string `json:"feedback_templates"`
}

// Range boundaries for the label and feedback pools
const (
	LabelTemplateFrom    = 50 // labels switch to templates here
	FeedbackTemplateFrom = 50 // feedback starts mixing in templates here
	FeedbackTemplateStep = 3  // every third attempt past FeedbackTemplateFrom uses a template
)

// ErrEmptyPool is returned when a content pool has no entries
var ErrEmptyPool = errors.New("content pool is empty")

// DefaultContent returns the built-in pools
func DefaultContent() *Content {
	return &Content{
		Labels: []string{
			"No",
			"Are you sure?",
			"Really?",
			"Think again!",
			"Maybe yes?",
			"Last chance!",
			"Please?",
			"Come on...",
			"You sure?",
			"Positive?",
			"Reconsider?",
			"Pretty please?",
			"One more time?",
			"Final answer?",
			"You mean yes?",
		},
		ExtraLabels: []string{
			"Still no?",
			"Seriously?",
			"Not giving up?",
			"Try again!",
			"Nope!",
			"Keep trying!",
			"Almost!",
			"So close!",
			"Nice try!",
			"Oops!",
		},
		LabelTemplates: []string{
			"No #{attempts}?",
			"{attempts} tries...",
			"Try {next}?",
			"Still {attempts}!",
		},
		Replies: []string{
			"",
			"Wait, don't you want to know what happens if you say yes?",
			"I promise this will be the best decision you make today!",
			"Come on... you know you're curious!",
			"What if saying yes unlocks something magical?",
			"The universe is conspiring for you to say yes!",
			"Even this button doesn't want you to say no... see?",
			"Plot twist: the 'No' button is allergic to being clicked!",
			"Fun fact: everyone who said yes was happy they did!",
			"Chocolates, flowers and endless affection are waiting...",
			"Saying yes is scientifically proven to increase happiness!",
			"The button is running away because it knows yes is right!",
			"Even the laws of physics are on my side here!",
			"What if I said pretty please with a cherry on top?",
			"This is your sign to say YES!",
			"The button has given up... but my hope never will!",
			"Okay, honestly: I really, REALLY want you to say yes!",
			"You're making this adorably difficult, but I'm not giving up!",
			"Challenge: try to click 'No' successfully. Spoiler: you can't!",
			"At this point, saying yes is inevitable... embrace it!",
		},
		ExtraFeedback: []string{
			"You're incredibly persistent... I admire that! But yes is still the answer!",
			"The button is exhausted, I'm hopeful, and you're amazing! Say yes?",
			"Plot twist: this whole time, you actually wanted to say yes!",
			"I've prepared a whole speech for when you say yes... don't let it go to waste!",
			"Your determination is actually really cute! But still... yes?",
			"I could do this all day! The button? Not so much.",
			"Imagine all the wonderful moments once you finally say yes!",
			"The 'No' button is filing a restraining order against your cursor!",
			"This is like a romantic comedy, except the ending is you saying YES!",
			"The button is playing hard to get, but I know you're not! Right?",
			"The button is getting dizzy from all this running around!",
			"I'm starting to think you enjoy watching the button escape!",
			"Confession: I've been practicing my happy dance for when you say yes!",
			"The button just asked if it can retire... please say yes!",
			"The button has developed trust issues... help me help it!",
			"The button is writing its memoirs: 'The Day I Ran From Love'",
			"Achievement unlocked: 'Master of Evasion'! Next: 'Master of Yes'!",
			"You're so close to making both of us incredibly happy! Just one yes!",
		},
		FeedbackTemplates: []string{
			"Attempt #{attempts}: the button is getting more creative with its escapes!",
			"{attempts} tries and counting! Your determination is impressive!",
			"The button has now traveled {distance} pixels trying to escape!",
			"Fun stat: you've spent {seconds} seconds not saying yes!",
			"The button's fitness tracker shows {attempts} evasive maneuvers!",
			"After {attempts} attempts, the button is considering a career change!",
			"{attempts} times you've made me smile watching this! Now say yes?",
			"The button has filed {attempts} complaints about working conditions!",
		},
	}
}

// Label returns the evading control's caption for an attempt count
func (c *Content) Label(attempts int) string {
	if attempts < 0 {
		attempts = 0
	}
	switch {
	case attempts < len(c.Labels):
		return c.Labels[attempts]
	case attempts < LabelTemplateFrom:
		return c.ExtraLabels[(attempts-len(c.Labels))%len(c.ExtraLabels)]
	default:
		return expand(c.LabelTemplates[attempts%len(c.LabelTemplates)], attempts)
	}
}

// Feedback returns the message under the question. It is empty before the
// first attempt.
func (c *Content) Feedback(attempts int) string {
	if attempts <= 0 {
		return ""
	}
	if attempts < len(c.Replies) {
		return c.Replies[attempts]
	}
	if attempts >= FeedbackTemplateFrom && attempts%FeedbackTemplateStep == 0 {
		return expand(c.FeedbackTemplates[attempts%len(c.FeedbackTemplates)], attempts)
	}
	return c.ExtraFeedback[(attempts-len(c.Replies))%len(c.ExtraFeedback)]
}

// Stats shown in templates are grouped ("1,230 pixels"); counts are not.
var stats = message.NewPrinter(language.English)

func expand(tmpl string, attempts int) string {
	return strings.NewReplacer(
		"{attempts}", strconv.Itoa(attempts),
		"{next}", strconv.Itoa(attempts+1),
		"{distance}", stats.Sprintf("%d", attempts*10),
		"{seconds}", stats.Sprintf("%d", attempts*2),
	).Replace(tmpl)
}

// Validate checks every pool has at least one entry
func (c *Content) Validate() error {
	pools := []struct {
		name string
		pool []string
	}{
		{"labels", c.Labels},
		{"extra_labels", c.ExtraLabels},
		{"label_templates", c.LabelTemplates},
		{"feedback", c.Replies},
		{"extra_feedback", c.ExtraFeedback},
		{"feedback_templates", c.FeedbackTemplates},
	}
	for _, p := range pools {
		if len(p.pool) == 0 {
			return fmt.Errorf("%s: %w", p.name, ErrEmptyPool)
		}
	}
	return nil
}

// LoadContent reads a JSON file and overlays it on the defaults. Pools
// missing from the file keep their default entries.
func LoadContent(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}

	var file Content
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode content %s: %w", path, err)
	}

	c := DefaultContent()
	overlay(&c.Labels, file.Labels)
	overlay(&c.ExtraLabels, file.ExtraLabels)
	overlay(&c.LabelTemplates, file.LabelTemplates)
	overlay(&c.Replies, file.Replies)
	overlay(&c.ExtraFeedback, file.ExtraFeedback)
	overlay(&c.FeedbackTemplates, file.FeedbackTemplates)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// SaveContent writes c as indented JSON
func SaveContent(path string, c *Content) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write content %s: %w", path, err)
	}
	return nil
}

func overlay(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}
