package profile

type UpdateProfileDTO struct {
	TechStack *string `json:"tech_stack" validate:"omitempty,max=2000"`
}

type CreateCertificationDTO struct {
	Name             string  `json:"name" validate:"required,max=200"`
	Issuer           *string `json:"issuer" validate:"omitempty,max=200"`
	IssueDate        *string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate       *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	LinkedTrainingID *int64  `json:"linked_training_id" validate:"omitempty,gt=0"`
}
