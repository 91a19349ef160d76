package classroom

import (
	"crypto/rand"
	"errors"
	"regexp"
	"testing"

	"github.com/trezcool/professor/core"
)

var joinCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := generateJoinCode()
		if err != nil {
			t.Fatalf("generateJoinCode() error = %v", err)
		}
		if !joinCodeRegex.MatchString(code) {
			t.Errorf("generateJoinCode() = %q, want 6 uppercase alphanumeric characters", code)
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 190 {
		t.Errorf("generateJoinCode() produced only %d distinct codes out of 200", len(seen))
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "abc123", want: "ABC123"},
		{code: " AbC123 ", want: "ABC123"},
		{code: "ABC123", want: "ABC123"},
		{code: "", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizeJoinCode(tt.code); got != tt.want {
			t.Errorf("NormalizeJoinCode(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

type teacherOnlyRepo struct {
	Repository
}

func (teacherOnlyRepo) GetTeacherByID(id string) (Teacher, error) {
	return Teacher{ID: id}, nil
}

func TestService_CreateClass_brokenEntropy(t *testing.T) {
	randReader = failingReader{}
	defer func() { randReader = rand.Reader }()

	if _, err := generateJoinCode(); err == nil {
		t.Fatal("generateJoinCode() error = nil, want error")
	}

	svc := NewService(teacherOnlyRepo{}, nil)
	_, err := svc.CreateClass(NewClass{TeacherID: "teacher_1", Name: "Period 3"})
	if !core.IsShutdown(err) {
		t.Errorf("CreateClass() error = %v, want a shutdown error", err)
	}
}
