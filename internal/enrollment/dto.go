package enrollment

type CreateEnrollmentDTO struct {
	TrainingID int64 `json:"training_id" validate:"required,gt=0"`
}

type RecordAttendanceDTO struct {
	EnrollmentID int64  `json:"enrollment_id" validate:"required,gt=0"`
	SessionDate  string `json:"session_date" validate:"required,datetime=2006-01-02"`
	// Attended defaults to true when omitted.
	Attended *bool `json:"attended"`
}
