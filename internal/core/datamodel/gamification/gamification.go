package gamification

import "time"

type Badge struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"column:name;uniqueIndex;not null;size:32"`
	ThresholdHours int    `gorm:"column:threshold_hours;not null"`
}

func (Badge) TableName() string { return "badges" }

type UserBadge struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uq_user_badge"`
	BadgeID   int64     `gorm:"column:badge_id;not null;uniqueIndex:uq_user_badge"`
	AwardedAt time.Time `gorm:"column:awarded_at;not null"`
}

func (UserBadge) TableName() string { return "user_badges" }

type Quiz struct {
	ID          int64     `gorm:"primaryKey"`
	TrainingID  int64     `gorm:"column:training_id;not null;index"`
	Title       string    `gorm:"column:title;not null;size:200"`
	Description *string   `gorm:"column:description"`
	CreatedByID int64     `gorm:"column:created_by_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Quiz) TableName() string { return "quizzes" }

type Question struct {
	ID       int64  `gorm:"primaryKey"`
	QuizID   int64  `gorm:"column:quiz_id;not null;index"`
	Text     string `gorm:"column:text;not null"`
	Position int    `gorm:"column:position;not null;default:0"`
}

func (Question) TableName() string { return "quiz_questions" }

type Option struct {
	ID         int64  `gorm:"primaryKey"`
	QuestionID int64  `gorm:"column:question_id;not null;index"`
	Text       string `gorm:"column:text;not null"`
	IsCorrect  bool   `gorm:"column:is_correct;not null;default:false"`
}

func (Option) TableName() string { return "quiz_options" }

type QuizSubmission struct {
	ID          int64     `gorm:"primaryKey"`
	QuizID      int64     `gorm:"column:quiz_id;not null;index"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Score       float64   `gorm:"column:score;not null"`
	MaxScore    float64   `gorm:"column:max_score;not null"`
	Passed      bool      `gorm:"column:passed;not null"`
	SubmittedAt time.Time `gorm:"column:submitted_at;not null"`
}

func (QuizSubmission) TableName() string { return "quiz_submissions" }
