// Package activity keeps the usage counters behind the admin analytics.
// They are derived from the chat traffic, never authoritative, and lost on restart.
package activity

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/professor/core/chat"
	"github.com/trezcool/professor/core/classroom"
)

const (
	dayLayout        = "2006-01-02"
	topTeachersLimit = 5
	topTopicsLimit   = 10
)

type (
	// Classroom is the part of classroom.Service the Ledger relies on.
	Classroom interface {
		RecordStudentActivity(studentID string, rec classroom.ActivityRecord) (classroom.Student, classroom.ClassRoom, error)
		RecordClassActivity(classID string, rec classroom.ActivityRecord) (classroom.ClassRoom, error)
		QueryAllTeachers() ([]classroom.Teacher, error)
		QueryAllClasses() ([]classroom.ClassRoom, error)
		QueryAllStudents() ([]classroom.Student, error)
	}

	SessionCounter interface {
		Len() int
	}

	Ledger struct {
		classroom Classroom
		sessions  SessionCounter

		mu                sync.Mutex
		totalExchanges    int
		sessionExchanges  map[string]int // {sessionID: n}
		topicExchanges    map[string]int // {promptTitle: n}
		dailyExchanges    map[string]int // {YYYY-MM-DD: n}
		subjectExchanges  map[string]int
		teacherExchanges  map[string]int
		untrackedExchange int // exchanges whose tracking ids did not resolve
	}
)

var _ chat.Recorder = (*Ledger)(nil)

func NewLedger(cls Classroom, sessions SessionCounter) *Ledger {
	return &Ledger{
		classroom:        cls,
		sessions:         sessions,
		sessionExchanges: make(map[string]int),
		topicExchanges:   make(map[string]int),
		dailyExchanges:   make(map[string]int),
		subjectExchanges: make(map[string]int),
		teacherExchanges: make(map[string]int),
	}
}

// RecordExchange updates the counters, then the student and class the exchange is tracked against.
// An error means the tracking ids did not resolve; the global counters are updated regardless.
func (l *Ledger) RecordExchange(ctx context.Context, ex chat.Exchange) error {
	title := ex.PromptTitle
	if title == "" {
		title = classroom.DefaultPromptTitle
	}

	l.mu.Lock()
	l.totalExchanges++
	l.sessionExchanges[ex.SessionID]++
	l.topicExchanges[title]++
	l.dailyExchanges[ex.At.UTC().Format(dayLayout)]++
	l.mu.Unlock()

	if ex.StudentID == "" && ex.ClassID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rec := classroom.ActivityRecord{
		SessionID:    ex.SessionID,
		Timestamp:    ex.At,
		PromptTitle:  title,
		MessageCount: ex.MessageCount,
	}

	var (
		class classroom.ClassRoom
		err   error
	)
	if ex.StudentID != "" {
		_, class, err = l.classroom.RecordStudentActivity(ex.StudentID, rec)
		err = errors.Wrapf(err, "recording activity of student %q", ex.StudentID)
	} else {
		class, err = l.classroom.RecordClassActivity(ex.ClassID, rec)
		err = errors.Wrapf(err, "recording activity of class %q", ex.ClassID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.untrackedExchange++
		return err
	}
	l.subjectExchanges[class.Subject]++
	l.teacherExchanges[class.TeacherID]++
	return nil
}

// Report builds the analytics from the counters and the classroom tables.
func (l *Ledger) Report() (Report, error) {
	teachers, err := l.classroom.QueryAllTeachers()
	if err != nil {
		return Report{}, errors.Wrap(err, "querying teachers")
	}
	classes, err := l.classroom.QueryAllClasses()
	if err != nil {
		return Report{}, errors.Wrap(err, "querying classes")
	}
	students, err := l.classroom.QueryAllStudents()
	if err != nil {
		return Report{}, errors.Wrap(err, "querying students")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rep := Report{
		Overview: Overview{
			TotalTeachers:  len(teachers),
			TotalClasses:   len(classes),
			TotalStudents:  len(students),
			TotalExchanges: l.totalExchanges,
		},
		Analytics: Analytics{
			ExchangesByDay:     copyCounts(l.dailyExchanges),
			TrackedSessions:    len(l.sessionExchanges),
			UntrackedExchanges: l.untrackedExchange,
		},
		SubjectStats: make(map[string]SubjectStat),
	}
	if l.sessions != nil {
		rep.Overview.ActiveSessions = l.sessions.Len()
	}
	if n := len(l.sessionExchanges); n > 0 {
		rep.Analytics.AvgExchangesPerSession = float64(l.totalExchanges) / float64(n)
	}
	for _, s := range students {
		if s.ConversationCount > 0 {
			rep.Analytics.ActiveStudents++
		}
	}

	teacherStats := make(map[string]*TeacherStat, len(teachers))
	for _, t := range teachers {
		teacherStats[t.ID] = &TeacherStat{
			TeacherID: t.ID,
			Name:      t.Name,
			School:    t.School,
			Exchanges: l.teacherExchanges[t.ID],
		}
	}
	for _, c := range classes {
		stat := rep.SubjectStats[c.Subject]
		stat.Classes++
		stat.Students += len(c.StudentIDs)
		rep.SubjectStats[c.Subject] = stat

		if ts, ok := teacherStats[c.TeacherID]; ok {
			ts.Classes++
			ts.Students += len(c.StudentIDs)
		}
	}
	for subject, n := range l.subjectExchanges {
		stat := rep.SubjectStats[subject]
		stat.Exchanges = n
		rep.SubjectStats[subject] = stat
	}

	rep.TopTeachers = topTeachers(teacherStats, topTeachersLimit)
	rep.PopularTopics = topTopics(l.topicExchanges, topTopicsLimit)
	return rep, nil
}

func topTeachers(stats map[string]*TeacherStat, limit int) []TeacherStat {
	out := make([]TeacherStat, 0, len(stats))
	for _, ts := range stats {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Exchanges != out[j].Exchanges {
			return out[i].Exchanges > out[j].Exchanges
		}
		if out[i].Students != out[j].Students {
			return out[i].Students > out[j].Students
		}
		return out[i].TeacherID < out[j].TeacherID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topTopics(counts map[string]int, limit int) []TopicStat {
	out := make([]TopicStat, 0, len(counts))
	for title, n := range counts {
		out = append(out, TopicStat{Title: title, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Title < out[j].Title
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func copyCounts(m map[string]int) map[string]int {
	c := make(map[string]int, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
