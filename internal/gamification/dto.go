package gamification

type CreateOptionDTO struct {
	Text      string `json:"text" validate:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateQuestionDTO struct {
	Text    string            `json:"text" validate:"required,max=2000"`
	Options []CreateOptionDTO `json:"options" validate:"required,min=1,dive"`
}

type CreateQuizDTO struct {
	TrainingID  int64               `json:"training_id" validate:"required,gt=0"`
	Title       string              `json:"title" validate:"required,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=5000"`
	Questions   []CreateQuestionDTO `json:"questions" validate:"required,min=1,dive"`
}

// SubmitQuizDTO maps question id to the chosen option id.
type SubmitQuizDTO struct {
	Answers map[int64]int64 `json:"answers" validate:"required"`
}
