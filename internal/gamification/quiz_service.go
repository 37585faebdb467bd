package gamification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	gamificationDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/gamification"
	"github.com/frahmantamala/ld-portal/internal/training"
)

type QuizRepository interface {
	// CreateTree stores the quiz with its questions and options in one transaction.
	CreateTree(ctx context.Context, tree *QuizTree) error
	// GetTree returns nil, nil for an unknown quiz.
	GetTree(ctx context.Context, quizID int64) (*QuizTree, error)
	ListTreesByTraining(ctx context.Context, trainingID int64) ([]*QuizTree, error)
	CreateSubmission(ctx context.Context, s *gamificationDatamodel.QuizSubmission) error
}

type TrainingGetter interface {
	GetTraining(ctx context.Context, id int64) (*training.Training, error)
}

type QuizService struct {
	repo      QuizRepository
	trainings TrainingGetter
	logger    *slog.Logger
	now       func() time.Time
}

func NewQuizService(repo QuizRepository, trainings TrainingGetter, logger *slog.Logger) *QuizService {
	return &QuizService{
		repo:      repo,
		trainings: trainings,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *QuizService) CreateQuiz(ctx context.Context, dto CreateQuizDTO, createdBy int64) (*Quiz, error) {
	dto.Title = strings.TrimSpace(dto.Title)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if _, err := s.trainings.GetTraining(ctx, dto.TrainingID); err != nil {
		return nil, err
	}

	tree := &QuizTree{
		Quiz: &gamificationDatamodel.Quiz{
			TrainingID:  dto.TrainingID,
			Title:       dto.Title,
			Description: dto.Description,
			CreatedByID: createdBy,
		},
		Questions: make([]*QuestionTree, 0, len(dto.Questions)),
	}
	for i, q := range dto.Questions {
		qt := &QuestionTree{
			Question: &gamificationDatamodel.Question{Text: q.Text, Position: i},
			Options:  make([]*gamificationDatamodel.Option, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			qt.Options = append(qt.Options, &gamificationDatamodel.Option{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		tree.Questions = append(tree.Questions, qt)
	}

	if err := s.repo.CreateTree(ctx, tree); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.logger.InfoContext(ctx, "quiz created",
		"quiz_id", tree.Quiz.ID,
		"training_id", dto.TrainingID,
		"questions", len(tree.Questions))
	return QuizFromTree(tree), nil
}

func (s *QuizService) ListByTraining(ctx context.Context, trainingID int64) ([]*Quiz, error) {
	trees, err := s.repo.ListTreesByTraining(ctx, trainingID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	quizzes := make([]*Quiz, 0, len(trees))
	for _, t := range trees {
		quizzes = append(quizzes, QuizFromTree(t))
	}
	return quizzes, nil
}

// Submit scores the answers and records a new submission on every call.
func (s *QuizService) Submit(ctx context.Context, quizID, userID int64, dto SubmitQuizDTO) (*Submission, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	tree, err := s.repo.GetTree(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if tree == nil {
		return nil, internal.ErrQuizNotFound
	}

	score, maxScore, passed := tree.Score(dto.Answers)
	row := &gamificationDatamodel.QuizSubmission{
		QuizID:      quizID,
		UserID:      userID,
		Score:       score,
		MaxScore:    maxScore,
		Passed:      passed,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.repo.CreateSubmission(ctx, row); err != nil {
		return nil, fmt.Errorf("record submission: %w", err)
	}

	s.logger.InfoContext(ctx, "quiz submitted",
		"quiz_id", quizID,
		"user_id", userID,
		"score", score,
		"max_score", maxScore,
		"passed", passed)
	return SubmissionFromDataModel(row), nil
}
