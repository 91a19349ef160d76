package prompt

import "testing"

func TestForSubject(t *testing.T) {
	tests := []struct {
		subject     string
		wantSubject string
	}{
		{subject: "history", wantSubject: "history"},
		{subject: "HISTORY", wantSubject: "history"},
		{subject: " Science ", wantSubject: "science"},
		{subject: "general", wantSubject: General},
		{subject: "unknownSubject", wantSubject: General},
		{subject: "", wantSubject: General},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			subject, prompts := ForSubject(tt.subject)
			if subject != tt.wantSubject {
				t.Errorf("ForSubject(%q) subject = %q, want %q", tt.subject, subject, tt.wantSubject)
			}
			if len(prompts) == 0 {
				t.Errorf("ForSubject(%q) returned no prompts", tt.subject)
			}
			if len(prompts) != len(library[tt.wantSubject]) {
				t.Errorf("ForSubject(%q) returned %d prompts, want %d", tt.subject, len(prompts), len(library[tt.wantSubject]))
			}
		})
	}
}

func TestForSubject_returnsCopy(t *testing.T) {
	_, prompts := ForSubject(General)
	prompts[0].Title = "mutated"

	_, fresh := ForSubject(General)
	if fresh[0].Title == "mutated" {
		t.Error("ForSubject() exposes the library")
	}
}

func TestSubjects(t *testing.T) {
	subjects := Subjects()
	if len(subjects) != len(library) {
		t.Fatalf("Subjects() returned %d subjects, want %d", len(subjects), len(library))
	}
	for i := 1; i < len(subjects); i++ {
		if subjects[i-1] > subjects[i] {
			t.Errorf("Subjects() is not sorted: %v", subjects)
		}
	}
}
