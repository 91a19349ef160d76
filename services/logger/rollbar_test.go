package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/professor/core"
	"github.com/trezcool/professor/core/classroom"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	teacher := classroom.Teacher{ID: "teacher_1", Name: "Ada", Email: "ada@school.test", PasswordHash: []byte("$2a$10$hash")}
	args := []interface{}{teacher, errors.New("boom"), map[string]interface{}{"sessionId": "abc"}}

	assert.Equal(t, []interface{}{"recording exchange", args[1], args[2]}, logger.prepare("recording exchange", args))

	logger.Warn("recording exchange", args...)
	out := buf.String()
	assert.Contains(t, out, "WARN: recording exchange")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "sessionId:abc")
	assert.NotContains(t, out, "hash")
	assert.NotContains(t, out, "ada@school.test")
}
