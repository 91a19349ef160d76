package classroom

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/professor/core"
)

const (
	DefaultSubject     = "general"
	DefaultPromptTitle = "General Discussion"
)

type Teacher struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	School       string    `json:"school"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"-"` // UTC
	ClassIDs     []string  `json:"-"`
}

// passwordKey digests the password so that bcrypt never sees more than its 72 bytes limit.
func passwordKey(pwd string) []byte {
	sum := sha256.Sum256([]byte(pwd))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword(passwordKey(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, passwordKey(pwd))
}

// ActivityRecord is appended to a class after a tracked chat exchange.
type ActivityRecord struct {
	SessionID    string    `json:"sessionId"`
	StudentID    string    `json:"studentId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	PromptTitle  string    `json:"promptTitle"`
	MessageCount int       `json:"messageCount"`
}

type ClassRoom struct {
	ID          string           `json:"id"`
	TeacherID   string           `json:"teacherId"`
	Name        string           `json:"name"`
	Subject     string           `json:"subject"`
	Description string           `json:"description"`
	JoinCode    string           `json:"joinCode"`
	CreatedAt   time.Time        `json:"createdAt"` // UTC
	StudentIDs  []string         `json:"students"`
	Activity    []ActivityRecord `json:"conversations"`
}

// ClassSummary is a ClassRoom as listed on the teacher dashboard.
type ClassSummary struct {
	ClassRoom
	StudentCount   int `json:"studentCount"`
	RecentActivity int `json:"recentActivity"`
}

type Student struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	ClassID           string     `json:"classId"`
	JoinedAt          time.Time  `json:"joinedAt"` // UTC
	ConversationCount int        `json:"conversationCount"`
	LastActivity      *time.Time `json:"lastActivity"`
}

// StudentSummary is a Student as listed on the teacher dashboard.
type StudentSummary struct {
	Student
	ClassName string `json:"className"`
}

type NewTeacher struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	School   string `json:"school"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.School = core.CleanString(nt.School)
	return validate.Struct(nt)
}

// Credentials are not validated: missing fields fail authentication like wrong ones.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewClass struct {
	TeacherID   string `json:"teacherId" validate:"required"`
	Name        string `json:"className" validate:"required"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.TeacherID = core.CleanString(nc.TeacherID)
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

type JoinClass struct {
	JoinCode    string `json:"joinCode" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
}

func (jc *JoinClass) Validate(validate *validator.Validate) error {
	jc.JoinCode = core.CleanString(jc.JoinCode)
	jc.StudentName = core.CleanString(jc.StudentName)
	return validate.Struct(jc)
}
