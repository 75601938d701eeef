package models

import "time"

// SalaryKeyFullTime единственный ключ ожидаемой зарплаты, который учитывают фильтры и сортировка.
const SalaryKeyFullTime = "full-time"

// Candidate профиль соискателя. Запись читается из хранилища профилей и не изменяется сервисом.
type Candidate struct {
	ID                      string            `json:"id"`
	Name                    string            `json:"name"`
	Email                   string            `json:"email"`
	Phone                   string            `json:"phone"`
	Location                string            `json:"location"`
	SubmittedAt             string            `json:"submitted_at"`
	WorkAvailability        []string          `json:"work_availability"`
	AnnualSalaryExpectation map[string]string `json:"annual_salary_expectation"`
	WorkExperiences         []WorkExperience  `json:"work_experiences"`
	Education               Education         `json:"education"`
	Skills                  []string          `json:"skills"`
}

// WorkExperience одно место работы. Первый элемент списка UI показывает как основное.
type WorkExperience struct {
	Company  string `json:"company"`
	RoleName string `json:"roleName"`
}

// Education сведения об образовании.
type Education struct {
	HighestLevel string   `json:"highest_level"`
	Degrees      []Degree `json:"degrees"`
}

// Degree отдельная степень.
type Degree struct {
	Degree    string `json:"degree"`
	Subject   string `json:"subject"`
	School    string `json:"school"`
	GPA       string `json:"gpa,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	IsTop50   bool   `json:"isTop50"`
}

// FullTimeSalary возвращает строку ожидаемой зарплаты для полной занятости.
func (c *Candidate) FullTimeSalary() (string, bool) {
	if c.AnnualSalaryExpectation == nil {
		return "", false
	}
	v, ok := c.AnnualSalaryExpectation[SalaryKeyFullTime]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// submittedLayout формат submitted_at в ответах API.
const submittedLayout = "2006-01-02T15:04:05.000Z"

// ParseSubmittedAt читает время подачи анкеты в одном из известных форматов.
func ParseSubmittedAt(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999-07", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatSubmittedAt форматирует время подачи в UTC с миллисекундами.
func FormatSubmittedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(submittedLayout)
}
