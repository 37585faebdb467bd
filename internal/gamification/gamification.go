package gamification

import (
	"time"

	gamificationDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/gamification"
)

const (
	BadgeSilver   = "SILVER"
	BadgeGold     = "GOLD"
	BadgePlatinum = "PLATINUM"
)

// PassRatio is the share of correct answers needed to pass a quiz.
const PassRatio = 0.6

// BadgeDefinition is one entry of the seeded badge catalog.
type BadgeDefinition struct {
	Name           string
	ThresholdHours int
}

// BadgeDefinitions is seeded in this order; award checks walk badges by id.
var BadgeDefinitions = []BadgeDefinition{
	{Name: BadgeSilver, ThresholdHours: 25},
	{Name: BadgeGold, ThresholdHours: 50},
	{Name: BadgePlatinum, ThresholdHours: 100},
}

type Badge struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ThresholdHours int    `json:"threshold_hours"`
}

type UserBadge struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Badge     Badge     `json:"badge"`
	AwardedAt time.Time `json:"awarded_at"`
}

type Option struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Options []*Option `json:"options"`
}

type Quiz struct {
	ID          int64       `json:"id"`
	TrainingID  int64       `json:"training_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Questions   []*Question `json:"questions"`
}

type Submission struct {
	ID          int64     `json:"id"`
	QuizID      int64     `json:"quiz_id"`
	UserID      int64     `json:"user_id"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	Passed      bool      `json:"passed"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuizTree is a quiz row with its questions and their options, as stored.
type QuizTree struct {
	Quiz      *gamificationDatamodel.Quiz
	Questions []*QuestionTree
}

type QuestionTree struct {
	Question *gamificationDatamodel.Question
	Options  []*gamificationDatamodel.Option
}

// Score awards one point per question whose chosen option belongs to it and is
// marked correct. Unanswered questions score nothing.
func (t *QuizTree) Score(answers map[int64]int64) (score, maxScore float64, passed bool) {
	maxScore = float64(len(t.Questions))
	for _, q := range t.Questions {
		chosen, ok := answers[q.Question.ID]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.ID == chosen && o.IsCorrect {
				score++
				break
			}
		}
	}
	return score, maxScore, score >= maxScore*PassRatio
}

func BadgeFromDataModel(b *gamificationDatamodel.Badge) *Badge {
	return &Badge{ID: b.ID, Name: b.Name, ThresholdHours: b.ThresholdHours}
}

func QuizFromTree(t *QuizTree) *Quiz {
	q := &Quiz{
		ID:          t.Quiz.ID,
		TrainingID:  t.Quiz.TrainingID,
		Title:       t.Quiz.Title,
		Description: t.Quiz.Description,
		Questions:   make([]*Question, 0, len(t.Questions)),
	}
	for _, qt := range t.Questions {
		question := &Question{
			ID:      qt.Question.ID,
			Text:    qt.Question.Text,
			Options: make([]*Option, 0, len(qt.Options)),
		}
		for _, o := range qt.Options {
			question.Options = append(question.Options, &Option{ID: o.ID, Text: o.Text, IsCorrect: o.IsCorrect})
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

func SubmissionFromDataModel(s *gamificationDatamodel.QuizSubmission) *Submission {
	return &Submission{
		ID:          s.ID,
		QuizID:      s.QuizID,
		UserID:      s.UserID,
		Score:       s.Score,
		MaxScore:    s.MaxScore,
		Passed:      s.Passed,
		SubmittedAt: s.SubmittedAt,
	}
}
