package chat

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	const suffix = "Frame your responses to help them specifically with this type of analytical thinking."

	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{name: "no topic", want: BaseInstructions},
		{name: "blank topic", topic: "   ", want: BaseInstructions},
		{
			name:  "topic",
			topic: "Historical Causation",
			want: BaseInstructions + "\n\nCurrent Assignment Context: The student is working on \"Historical Causation\". " +
				suffix,
		},
		{
			name:  "topic with quotes",
			topic: `The "Great" Debate`,
			want:  BaseInstructions + "\n\nCurrent Assignment Context: The student is working on \"The \"Great\" Debate\". " + suffix,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSystemPrompt(BaseInstructions, tt.topic); got != tt.want {
				t.Errorf("BuildSystemPrompt() = ...%q, want ...%q", tail(got), tail(tt.want))
			}
		})
	}
}

func TestBaseInstructions(t *testing.T) {
	for _, s := range []string{"Productive Challenge Framework:", "Never Do:", "Your Persona:"} {
		if !strings.Contains(BaseInstructions, s) {
			t.Errorf("BaseInstructions is missing %q", s)
		}
	}
}

func tail(s string) string {
	if len(s) > 200 {
		return s[len(s)-200:]
	}
	return s
}
