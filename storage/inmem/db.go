package inmemdb

import (
	"sync"

	"github.com/trezcool/professor/core/classroom"
)

// DB holds every table of the in-memory store. Nothing survives a restart.
type DB struct {
	mu sync.RWMutex

	teachers   map[string]*classroom.Teacher
	teacherIDs []string          // insertion order
	emailIndex map[string]string // {email: teacherID}
	classes    map[string]*classroom.ClassRoom
	classIDs   []string
	students   map[string]*classroom.Student
	studentIDs []string
}

func Open() *DB {
	return &DB{
		teachers:   make(map[string]*classroom.Teacher),
		emailIndex: make(map[string]string),
		classes:    make(map[string]*classroom.ClassRoom),
		students:   make(map[string]*classroom.Student),
	}
}

// rows returned to callers never share slices with the tables

func copyTeacher(t *classroom.Teacher) classroom.Teacher {
	c := *t
	c.ClassIDs = append(make([]string, 0, len(t.ClassIDs)), t.ClassIDs...)
	return c
}

func copyClass(cls *classroom.ClassRoom) classroom.ClassRoom {
	c := *cls
	c.StudentIDs = append(make([]string, 0, len(cls.StudentIDs)), cls.StudentIDs...)
	c.Activity = append(make([]classroom.ActivityRecord, 0, len(cls.Activity)), cls.Activity...)
	return c
}

func copyStudent(s *classroom.Student) classroom.Student {
	c := *s
	if s.LastActivity != nil {
		at := *s.LastActivity
		c.LastActivity = &at
	}
	return c
}
