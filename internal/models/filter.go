package models

// Ключи сортировки списка кандидатов.
const (
	SortByName       = "name"
	SortBySubmitted  = "submitted"
	SortBySalary     = "salary"
	SortByExperience = "experience"
)

// FilterAll значение одиночного фильтра, означающее "не задан".
const FilterAll = "all"

// Уровни опыта, вычисляемые по количеству мест работы.
const (
	ExperienceLevelEntry  = "entry"
	ExperienceLevelMid    = "mid"
	ExperienceLevelSenior = "senior"
)

// Границы диапазона зарплаты по умолчанию.
const (
	DefaultSalaryMin = 50000
	DefaultSalaryMax = 300000
)

// ValidSortKeys список допустимых ключей сортировки.
var ValidSortKeys = map[string]struct{}{
	SortByName:       {},
	SortBySubmitted:  {},
	SortBySalary:     {},
	SortByExperience: {},
}

// ValidExperienceLevels список допустимых значений фильтра опыта.
var ValidExperienceLevels = map[string]struct{}{
	FilterAll:             {},
	ExperienceLevelEntry:  {},
	ExperienceLevelMid:    {},
	ExperienceLevelSenior: {},
}

// SalaryRange включительный диапазон [Min, Max].
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// IsDefault сообщает, совпадает ли диапазон с диапазоном по умолчанию.
func (r SalaryRange) IsDefault() bool {
	return r.Min == DefaultSalaryMin && r.Max == DefaultSalaryMax
}

// FilterState полный набор пользовательских параметров поиска.
type FilterState struct {
	SearchTerm            string      `json:"search_term"`
	SortBy                string      `json:"sort_by"`
	LocationFilter        []string    `json:"location_filter"`
	SkillFilter           []string    `json:"skill_filter"`
	CompanyFilter         []string    `json:"company_filter"`
	EducationLevelFilter  string      `json:"education_level_filter"`
	SubjectFilter         string      `json:"subject_filter"`
	AvailabilityFilter    string      `json:"availability_filter"`
	ExperienceLevelFilter string      `json:"experience_level_filter"`
	RoleTypeFilter        string      `json:"role_type_filter"`
	SalaryRange           SalaryRange `json:"salary_range"`
	ShowSelected          bool        `json:"show_selected"`
}

// DefaultFilterState возвращает состояние фильтров без ограничений.
func DefaultFilterState() FilterState {
	return FilterState{
		SortBy:                SortByName,
		LocationFilter:        []string{},
		SkillFilter:           []string{},
		CompanyFilter:         []string{},
		EducationLevelFilter:  FilterAll,
		SubjectFilter:         FilterAll,
		AvailabilityFilter:    FilterAll,
		ExperienceLevelFilter: FilterAll,
		RoleTypeFilter:        FilterAll,
		SalaryRange:           SalaryRange{Min: DefaultSalaryMin, Max: DefaultSalaryMax},
	}
}

// Normalize заменяет пустые одиночные фильтры на FilterAll и пустой ключ сортировки на name.
// Диапазон зарплаты не трогается: нулевой диапазон [0, 0] является заданным фильтром.
func (f *FilterState) Normalize() {
	for _, v := range []*string{
		&f.EducationLevelFilter,
		&f.SubjectFilter,
		&f.AvailabilityFilter,
		&f.ExperienceLevelFilter,
		&f.RoleTypeFilter,
	} {
		if *v == "" {
			*v = FilterAll
		}
	}
	if f.SortBy == "" {
		f.SortBy = SortByName
	}
}

// FilterOptions полный перечень значений для выпадающих списков фильтров.
type FilterOptions struct {
	Skills          []string `json:"skills"`
	Locations       []string `json:"locations"`
	Companies       []string `json:"companies"`
	EducationLevels []string `json:"education_levels"`
	Subjects        []string `json:"subjects"`
	Availability    []string `json:"availability"`
}
