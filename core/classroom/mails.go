package classroom

import (
	"github.com/trezcool/professor/core"
)

type classCreatedData struct {
	TeacherName string
	ClassName   string
	Subject     string
	JoinCode    string
}

func (svc *Service) sendWelcomeMail(teacher Teacher) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           teacherAddress(teacher),
		Subject:      "Welcome!",
		TemplateName: "teacher_welcome",
		TemplateData: teacher,
	})
}

func (svc *Service) sendClassCreatedMail(teacher Teacher, class ClassRoom) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           teacherAddress(teacher),
		Subject:      "Your class " + class.Name + " is ready",
		TemplateName: "class_created",
		TemplateData: classCreatedData{
			TeacherName: teacher.Name,
			ClassName:   class.Name,
			Subject:     class.Subject,
			JoinCode:    class.JoinCode,
		},
	})
}
