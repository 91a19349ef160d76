package inmemdb

import (
	"time"

	"github.com/trezcool/professor/core/classroom"
)

type classroomRepository struct {
	db *DB
}

var _ classroom.Repository = (*classroomRepository)(nil)

func NewClassroomRepository(db *DB) classroom.Repository {
	return &classroomRepository{db: db}
}

// Teachers

func (repo *classroomRepository) CreateTeacher(teacher classroom.Teacher) (classroom.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.emailIndex[teacher.Email]; ok {
		return classroom.Teacher{}, classroom.ErrEmailExists
	}
	row := copyTeacher(&teacher)
	repo.db.teachers[teacher.ID] = &row
	repo.db.teacherIDs = append(repo.db.teacherIDs, teacher.ID)
	repo.db.emailIndex[teacher.Email] = teacher.ID
	return copyTeacher(&row), nil
}

func (repo *classroomRepository) GetTeacherByID(id string) (classroom.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if t, ok := repo.db.teachers[id]; ok {
		return copyTeacher(t), nil
	}
	return classroom.Teacher{}, classroom.ErrTeacherNotFound
}

func (repo *classroomRepository) GetTeacherByEmail(email string) (classroom.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if id, ok := repo.db.emailIndex[email]; ok {
		if t, ok := repo.db.teachers[id]; ok {
			return copyTeacher(t), nil
		}
	}
	return classroom.Teacher{}, classroom.ErrTeacherNotFound
}

func (repo *classroomRepository) QueryAllTeachers() ([]classroom.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	teachers := make([]classroom.Teacher, 0, len(repo.db.teacherIDs))
	for _, id := range repo.db.teacherIDs {
		teachers = append(teachers, copyTeacher(repo.db.teachers[id]))
	}
	return teachers, nil
}

// Classes

func (repo *classroomRepository) CreateClass(class classroom.ClassRoom) (classroom.ClassRoom, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	teacher, ok := repo.db.teachers[class.TeacherID]
	if !ok {
		return classroom.ClassRoom{}, classroom.ErrTeacherNotFound
	}
	row := copyClass(&class)
	repo.db.classes[class.ID] = &row
	repo.db.classIDs = append(repo.db.classIDs, class.ID)
	teacher.ClassIDs = append(teacher.ClassIDs, class.ID)
	return copyClass(&row), nil
}

func (repo *classroomRepository) GetClassByID(id string) (classroom.ClassRoom, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return copyClass(cls), nil
	}
	return classroom.ClassRoom{}, classroom.ErrClassNotFound
}

func (repo *classroomRepository) GetClassByJoinCode(code string) (classroom.ClassRoom, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, id := range repo.db.classIDs {
		if cls := repo.db.classes[id]; cls.JoinCode == code {
			return copyClass(cls), nil
		}
	}
	return classroom.ClassRoom{}, classroom.ErrClassNotFound
}

// QueryClassesByID skips dangling ids.
func (repo *classroomRepository) QueryClassesByID(ids ...string) ([]classroom.ClassRoom, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	classes := make([]classroom.ClassRoom, 0, len(ids))
	for _, id := range ids {
		if cls, ok := repo.db.classes[id]; ok {
			classes = append(classes, copyClass(cls))
		}
	}
	return classes, nil
}

func (repo *classroomRepository) QueryAllClasses() ([]classroom.ClassRoom, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	classes := make([]classroom.ClassRoom, 0, len(repo.db.classIDs))
	for _, id := range repo.db.classIDs {
		classes = append(classes, copyClass(repo.db.classes[id]))
	}
	return classes, nil
}

func (repo *classroomRepository) AddClassActivity(classID string, rec classroom.ActivityRecord) (classroom.ClassRoom, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cls, ok := repo.db.classes[classID]
	if !ok {
		return classroom.ClassRoom{}, classroom.ErrClassNotFound
	}
	cls.Activity = append(cls.Activity, rec)
	return copyClass(cls), nil
}

// Students

func (repo *classroomRepository) CreateStudent(student classroom.Student) (classroom.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cls, ok := repo.db.classes[student.ClassID]
	if !ok {
		return classroom.Student{}, classroom.ErrClassNotFound
	}
	row := copyStudent(&student)
	repo.db.students[student.ID] = &row
	repo.db.studentIDs = append(repo.db.studentIDs, student.ID)
	cls.StudentIDs = append(cls.StudentIDs, student.ID)
	return copyStudent(&row), nil
}

func (repo *classroomRepository) GetStudentByID(id string) (classroom.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return copyStudent(s), nil
	}
	return classroom.Student{}, classroom.ErrStudentNotFound
}

// QueryStudentsByID skips dangling ids.
func (repo *classroomRepository) QueryStudentsByID(ids ...string) ([]classroom.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]classroom.Student, 0, len(ids))
	for _, id := range ids {
		if s, ok := repo.db.students[id]; ok {
			students = append(students, copyStudent(s))
		}
	}
	return students, nil
}

func (repo *classroomRepository) QueryAllStudents() ([]classroom.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]classroom.Student, 0, len(repo.db.studentIDs))
	for _, id := range repo.db.studentIDs {
		students = append(students, copyStudent(repo.db.students[id]))
	}
	return students, nil
}

func (repo *classroomRepository) TouchStudent(id string, at time.Time) (classroom.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s, ok := repo.db.students[id]
	if !ok {
		return classroom.Student{}, classroom.ErrStudentNotFound
	}
	s.ConversationCount++
	s.LastActivity = &at
	return copyStudent(s), nil
}
