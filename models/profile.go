package models

// PersonalInfo holds the identity fields used to answer contact-style
// questions.
type PersonalInfo struct {
	FirstName        string `yaml:"first_name" json:"first_name" validate:"required"`
	LastName         string `yaml:"last_name" json:"last_name" validate:"required"`
	Email            string `yaml:"email" json:"email" validate:"required,email"`
	Phone            string `yaml:"phone" json:"phone" validate:"required"`
	PhoneCountryCode string `yaml:"phone_country_code" json:"phone_country_code"`
	StreetAddress    string `yaml:"street_address" json:"street_address"`
	City             string `yaml:"city" json:"city"`
	State            string `yaml:"state" json:"state"`
	Zip              string `yaml:"zip" json:"zip"`
	LinkedIn         string `yaml:"linkedin" json:"linkedin"`
	Website          string `yaml:"website" json:"website"`
}

// WorkPreferences are the boolean answers for authorization-style
// yes/no questions.
type WorkPreferences struct {
	LegallyAuthorized bool `yaml:"legally_authorized" json:"legally_authorized"`
	RequiresVisa      bool `yaml:"requires_visa" json:"requires_visa"`
	DriversLicense    bool `yaml:"drivers_license" json:"drivers_license"`
	UrgentFill        bool `yaml:"urgent_fill" json:"urgent_fill"`
	Commute           bool `yaml:"commute" json:"commute"`
	BackgroundCheck   bool `yaml:"background_check" json:"background_check"`
}

// UserProfile is the immutable per-run configuration the classifier and
// the AI agent answer from. It is constructed once from external
// configuration, validated there, and read-only afterwards.
type UserProfile struct {
	Personal    PersonalInfo    `yaml:"personal" json:"personal" validate:"required"`
	Preferences WorkPreferences `yaml:"preferences" json:"preferences"`

	// Years of experience per technology / industry, each with a
	// "default" key used when nothing in the question matches.
	Technology        map[string]int `yaml:"technology" json:"technology"`
	TechnologyDefault int            `yaml:"technology_default" json:"technology_default" validate:"gte=0"`
	Industry          map[string]int `yaml:"industry" json:"industry"`
	IndustryDefault   int            `yaml:"industry_default" json:"industry_default" validate:"gte=0"`

	GPA string `yaml:"gpa" json:"gpa"`

	// Language name -> proficiency level ("Native", "Professional", ...).
	Languages map[string]string `yaml:"languages" json:"languages"`

	// Completed degree labels ("Bachelor's Degree", "Master's Degree").
	Degrees []string `yaml:"degrees" json:"degrees"`
}

// TechnologyYears returns the configured years for a technology name,
// falling back to the technology default.
func (p *UserProfile) TechnologyYears(name string) (int, bool) {
	if years, ok := p.Technology[name]; ok {
		return years, true
	}
	return p.TechnologyDefault, false
}

// FullName joins the first and last name for free-form name fields.
func (p *UserProfile) FullName() string {
	return p.Personal.FirstName + " " + p.Personal.LastName
}
