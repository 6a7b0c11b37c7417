package domain

// CourseRecord is one completed course as read from the certifications CSV.
// Company is the provider name the report groups by; DurationHours comes from
// the "duration" column, already parsed.
type CourseRecord struct {
	Company       string
	DurationHours float64
}
