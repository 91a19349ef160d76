// Package prompt holds the discussion topics offered to students, by class subject.
package prompt

import (
	"sort"
	"strings"
)

const General = "general"

type Prompt struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Starter     string `json:"starter"`
}

var library = map[string][]Prompt{
	General: {
		{
			Title:       "General Discussion",
			Description: "Bring any idea or argument you are working on.",
			Starter:     "Here is what I have been thinking about...",
		},
		{
			Title:       "Argument Analysis",
			Description: "Break down an argument into claims, evidence and assumptions.",
			Starter:     "I want to test this argument:",
		},
		{
			Title:       "Devil's Advocate",
			Description: "Defend a position against the strongest objections you can find.",
			Starter:     "My position is... and I expect people to object that...",
		},
	},
	"history": {
		{
			Title:       "Historical Causation",
			Description: "Weigh the causes of a historical event against each other.",
			Starter:     "I think the main cause of ... was ...",
		},
		{
			Title:       "Counterfactual History",
			Description: "Explore what might have happened if a key decision went the other way.",
			Starter:     "What if ... had not happened?",
		},
		{
			Title:       "Source Evaluation",
			Description: "Judge the reliability and perspective of a primary source.",
			Starter:     "I am reading a source that claims...",
		},
	},
	"science": {
		{
			Title:       "Hypothesis Design",
			Description: "Turn a question into a testable hypothesis and an experiment.",
			Starter:     "I want to find out whether...",
		},
		{
			Title:       "Interpreting Data",
			Description: "Decide what a set of results does and does not show.",
			Starter:     "My results show...",
		},
		{
			Title:       "Science and Society",
			Description: "Debate the ethical side of a scientific development.",
			Starter:     "I am not sure whether we should...",
		},
	},
	"literature": {
		{
			Title:       "Character Motivation",
			Description: "Argue why a character acts the way they do.",
			Starter:     "I think the character does this because...",
		},
		{
			Title:       "Theme Analysis",
			Description: "Trace how a theme develops across a text.",
			Starter:     "One theme I noticed is...",
		},
		{
			Title:       "Author's Choices",
			Description: "Explain the effect of a structural or stylistic decision.",
			Starter:     "The author chose to... and I think it matters because...",
		},
	},
	"philosophy": {
		{
			Title:       "Ethical Dilemma",
			Description: "Reason through a situation where values conflict.",
			Starter:     "Is it right to... when...?",
		},
		{
			Title:       "Thought Experiment",
			Description: "Use a hypothetical scenario to test a principle.",
			Starter:     "Imagine a world where...",
		},
	},
	"economics": {
		{
			Title:       "Policy Trade-offs",
			Description: "Evaluate who gains and who loses from a policy.",
			Starter:     "A policy I want to analyze is...",
		},
		{
			Title:       "Market Behavior",
			Description: "Explain a price or market trend with supply and demand.",
			Starter:     "I noticed that prices of ... have...",
		},
	},
}

// ForSubject returns the topics of the subject, falling back to the general ones.
// The lookup is case-insensitive.
func ForSubject(subject string) (string, []Prompt) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	prompts, ok := library[subject]
	if !ok {
		subject = General
		prompts = library[General]
	}
	out := make([]Prompt, len(prompts))
	copy(out, prompts)
	return subject, out
}

// Subjects lists the subjects that have their own topics.
func Subjects() []string {
	subjects := make([]string, 0, len(library))
	for s := range library {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}
