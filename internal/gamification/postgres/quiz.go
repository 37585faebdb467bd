package postgres

import (
	"context"
	"errors"

	gamificationDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/gamification"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) CreateTree(ctx context.Context, tree *gamification.QuizTree) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tree.Quiz).Error; err != nil {
			return err
		}
		for _, qt := range tree.Questions {
			qt.Question.QuizID = tree.Quiz.ID
			if err := tx.Create(qt.Question).Error; err != nil {
				return err
			}
			for _, o := range qt.Options {
				o.QuestionID = qt.Question.ID
			}
			if len(qt.Options) == 0 {
				continue
			}
			if err := tx.Create(qt.Options).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) GetTree(ctx context.Context, quizID int64) (*gamification.QuizTree, error) {
	var quiz gamificationDatamodel.Quiz
	if err := r.db.WithContext(ctx).Where("id = ?", quizID).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	trees, err := r.loadTrees(ctx, []*gamificationDatamodel.Quiz{&quiz})
	if err != nil {
		return nil, err
	}
	return trees[0], nil
}

func (r *QuizRepository) ListTreesByTraining(ctx context.Context, trainingID int64) ([]*gamification.QuizTree, error) {
	var quizzes []*gamificationDatamodel.Quiz
	if err := r.db.WithContext(ctx).Where("training_id = ?", trainingID).Order("id").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return []*gamification.QuizTree{}, nil
	}
	return r.loadTrees(ctx, quizzes)
}

func (r *QuizRepository) CreateSubmission(ctx context.Context, s *gamificationDatamodel.QuizSubmission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// loadTrees fetches questions and options for all quizzes in two queries.
func (r *QuizRepository) loadTrees(ctx context.Context, quizzes []*gamificationDatamodel.Quiz) ([]*gamification.QuizTree, error) {
	quizIDs := make([]int64, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}

	var questions []*gamificationDatamodel.Question
	if err := r.db.WithContext(ctx).
		Where("quiz_id IN ?", quizIDs).
		Order("position, id").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	questionIDs := make([]int64, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	optionsByQuestion := make(map[int64][]*gamificationDatamodel.Option)
	if len(questionIDs) > 0 {
		var options []*gamificationDatamodel.Option
		if err := r.db.WithContext(ctx).
			Where("question_id IN ?", questionIDs).
			Order("id").
			Find(&options).Error; err != nil {
			return nil, err
		}
		for _, o := range options {
			optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], o)
		}
	}

	questionsByQuiz := make(map[int64][]*gamification.QuestionTree)
	for _, q := range questions {
		questionsByQuiz[q.QuizID] = append(questionsByQuiz[q.QuizID], &gamification.QuestionTree{
			Question: q,
			Options:  optionsByQuestion[q.ID],
		})
	}

	trees := make([]*gamification.QuizTree, 0, len(quizzes))
	for _, q := range quizzes {
		trees = append(trees, &gamification.QuizTree{Quiz: q, Questions: questionsByQuiz[q.ID]})
	}
	return trees, nil
}
