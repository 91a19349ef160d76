package activity

type (
	Report struct {
		Overview      Overview               `json:"overview"`
		Analytics     Analytics              `json:"analytics"`
		SubjectStats  map[string]SubjectStat `json:"subjectStats"`
		TopTeachers   []TeacherStat          `json:"topTeachers"`
		PopularTopics []TopicStat            `json:"popularTopics"`
	}

	Overview struct {
		TotalTeachers  int `json:"totalTeachers"`
		TotalClasses   int `json:"totalClasses"`
		TotalStudents  int `json:"totalStudents"`
		TotalExchanges int `json:"totalExchanges"`
		ActiveSessions int `json:"activeSessions"`
	}

	Analytics struct {
		ExchangesByDay         map[string]int `json:"exchangesByDay"` // {YYYY-MM-DD: n}, UTC days
		TrackedSessions        int            `json:"trackedSessions"`
		AvgExchangesPerSession float64        `json:"avgExchangesPerSession"`
		ActiveStudents         int            `json:"activeStudents"`
		UntrackedExchanges     int            `json:"untrackedExchanges"`
	}

	SubjectStat struct {
		Classes   int `json:"classes"`
		Students  int `json:"students"`
		Exchanges int `json:"exchanges"`
	}

	TeacherStat struct {
		TeacherID string `json:"teacherId"`
		Name      string `json:"name"`
		School    string `json:"school"`
		Classes   int    `json:"classes"`
		Students  int    `json:"students"`
		Exchanges int    `json:"exchanges"`
	}

	TopicStat struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}
)
