package models

// News categories accepted at the submission boundary.
const (
	CategoryPlacement     = "placement"
	CategoryCertification = "online_course_certification"
	CategorySkillTraining = "skill_training_programme"
	CategoryBitGurgulam   = "bit_gurgulam"
	CategoryEvent         = "event"
	CategoryOther         = "other"
)

// CategoryDetailFields lists the required structured detail keys per
// category. A submission carrying a details payload must fill these;
// additional keys are allowed and stored as-is.
var CategoryDetailFields = map[string][]string{
	CategoryPlacement: {
		"company_name", "job_role", "drive_date", "result_announced",
		"salary_package", "organized_by", "round_type",
		"process_description", "skills_assessed",
	},
	CategoryCertification: {
		"staff_name", "qualified", "completion_status", "course_name",
		"score", "certification_category", "month_received",
	},
	CategorySkillTraining: {
		"time_of_day", "departments", "skill_name", "no_of_students",
		"no_of_venue",
	},
	CategoryBitGurgulam: {
		"program_type", "date", "total_attendees", "departments",
		"academic_year",
	},
	CategoryEvent: {
		"event_name", "event_type", "date", "venue",
		"organizing_department",
	},
	CategoryOther: nil,
}

// IsValidCategory reports whether category is one of the accepted values.
func IsValidCategory(category string) bool {
	_, ok := CategoryDetailFields[category]
	return ok
}
