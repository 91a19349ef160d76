package classroom

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core"
)

var (
	// errors
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CreateTeacher fails with ErrEmailExists if the email is already taken.
		CreateTeacher(teacher Teacher) (Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		GetTeacherByEmail(email string) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)

		// CreateClass also adds the class to its teacher's class list.
		CreateClass(class ClassRoom) (ClassRoom, error)
		GetClassByID(id string) (ClassRoom, error)
		// GetClassByJoinCode returns the first class created with this code.
		GetClassByJoinCode(code string) (ClassRoom, error)
		QueryClassesByID(ids ...string) ([]ClassRoom, error)
		QueryAllClasses() ([]ClassRoom, error)
		AddClassActivity(classID string, rec ActivityRecord) (ClassRoom, error)

		// CreateStudent also enrolls the student in their class.
		CreateStudent(student Student) (Student, error)
		GetStudentByID(id string) (Student, error)
		QueryStudentsByID(ids ...string) ([]Student, error)
		QueryAllStudents() ([]Student, error)
		// TouchStudent increments the student's conversation count and sets their last activity.
		TouchStudent(id string, at time.Time) (Student, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (svc *Service) Register(nt NewTeacher) (Teacher, error) {
	teacher := Teacher{
		ID:        newID("teacher"),
		Name:      nt.Name,
		Email:     core.CleanString(nt.Email, true /* lower */),
		School:    nt.School,
		CreatedAt: nowFunc().UTC(),
		ClassIDs:  make([]string, 0),
	}
	if err := teacher.SetPassword(nt.Password); err != nil {
		return Teacher{}, errors.Wrap(err, "hashing password")
	}

	teacher, err := svc.repo.CreateTeacher(teacher)
	if err != nil {
		if err == ErrEmailExists {
			return Teacher{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return Teacher{}, err
	}

	svc.sendWelcomeMail(teacher)
	return teacher, nil
}

// Authenticate does not tell an unknown email from a wrong password.
func (svc *Service) Authenticate(email, password string) (Teacher, error) {
	teacher, err := svc.repo.GetTeacherByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		if err == ErrTeacherNotFound {
			return Teacher{}, ErrInvalidCredentials
		}
		return Teacher{}, err
	}
	if err = teacher.CheckPassword(password); err != nil {
		return Teacher{}, ErrInvalidCredentials
	}
	return teacher, nil
}

func (svc *Service) GetTeacher(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) CreateClass(nc NewClass) (ClassRoom, error) {
	teacher, err := svc.repo.GetTeacherByID(nc.TeacherID)
	if err != nil {
		return ClassRoom{}, err
	}

	code, err := generateJoinCode()
	if err != nil { // the entropy source is broken
		return ClassRoom{}, core.NewShutdownError("generating join code: " + err.Error())
	}

	subject := nc.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	class, err := svc.repo.CreateClass(ClassRoom{
		ID:          newID("class"),
		TeacherID:   teacher.ID,
		Name:        nc.Name,
		Subject:     subject,
		Description: nc.Description,
		JoinCode:    code,
		CreatedAt:   nowFunc().UTC(),
		StudentIDs:  make([]string, 0),
		Activity:    make([]ActivityRecord, 0),
	})
	if err != nil {
		return ClassRoom{}, err
	}

	svc.sendClassCreatedMail(teacher, class)
	return class, nil
}

func (svc *Service) Join(jc JoinClass) (Student, ClassRoom, error) {
	class, err := svc.repo.GetClassByJoinCode(NormalizeJoinCode(jc.JoinCode))
	if err != nil {
		return Student{}, ClassRoom{}, err
	}

	student, err := svc.repo.CreateStudent(Student{
		ID:       newID("student"),
		Name:     jc.StudentName,
		ClassID:  class.ID,
		JoinedAt: nowFunc().UTC(),
	})
	if err != nil {
		return Student{}, ClassRoom{}, err
	}
	return student, class, nil
}

func (svc *Service) GetClass(id string) (ClassRoom, error) {
	return svc.repo.GetClassByID(id)
}

func (svc *Service) GetStudent(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// TeacherClasses lists the classes of the teacher in creation order.
func (svc *Service) TeacherClasses(teacherID string) ([]ClassSummary, error) {
	teacher, err := svc.repo.GetTeacherByID(teacherID)
	if err != nil {
		return nil, err
	}
	classes, err := svc.repo.QueryClassesByID(teacher.ClassIDs...)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClassSummary, 0, len(classes))
	for _, class := range classes {
		summaries = append(summaries, ClassSummary{
			ClassRoom:      class,
			StudentCount:   len(class.StudentIDs),
			RecentActivity: len(class.Activity),
		})
	}
	return summaries, nil
}

// TeacherStudents lists the students of every class of the teacher.
func (svc *Service) TeacherStudents(teacherID string) ([]StudentSummary, error) {
	teacher, err := svc.repo.GetTeacherByID(teacherID)
	if err != nil {
		return nil, err
	}
	classes, err := svc.repo.QueryClassesByID(teacher.ClassIDs...)
	if err != nil {
		return nil, err
	}

	summaries := make([]StudentSummary, 0)
	for _, class := range classes {
		students, err := svc.repo.QueryStudentsByID(class.StudentIDs...)
		if err != nil {
			return nil, err
		}
		for _, student := range students {
			summaries = append(summaries, StudentSummary{Student: student, ClassName: class.Name})
		}
	}
	return summaries, nil
}

// RecordStudentActivity bumps the student's counters and appends rec to the student's class.
func (svc *Service) RecordStudentActivity(studentID string, rec ActivityRecord) (Student, ClassRoom, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = nowFunc().UTC()
	}
	if rec.PromptTitle == "" {
		rec.PromptTitle = DefaultPromptTitle
	}
	rec.StudentID = studentID

	student, err := svc.repo.TouchStudent(studentID, rec.Timestamp)
	if err != nil {
		return Student{}, ClassRoom{}, err
	}
	class, err := svc.repo.AddClassActivity(student.ClassID, rec)
	if err != nil {
		return student, ClassRoom{}, err
	}
	return student, class, nil
}

// RecordClassActivity appends rec to the class, for exchanges tracked without a student.
func (svc *Service) RecordClassActivity(classID string, rec ActivityRecord) (ClassRoom, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = nowFunc().UTC()
	}
	if rec.PromptTitle == "" {
		rec.PromptTitle = DefaultPromptTitle
	}
	return svc.repo.AddClassActivity(classID, rec)
}

func (svc *Service) QueryAllTeachers() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) QueryAllClasses() ([]ClassRoom, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) QueryAllStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func teacherAddress(teacher Teacher) []mail.Address {
	return []mail.Address{{Name: teacher.Name, Address: teacher.Email}}
}
