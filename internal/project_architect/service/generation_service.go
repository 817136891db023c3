package service

import (
	"context"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/llm"
)

// GenerationService turns student constraints into a validated ProjectRecord.
type GenerationService struct {
	model llm.Model
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(model llm.Model) *GenerationService {
	return &GenerationService{model: model}
}

// GenerateProject sends one structured request and returns the record or a
// *domain.GenerationError. It never retries.
func (s *GenerationService) GenerateProject(ctx context.Context, in domain.ConstraintInput) (domain.ProjectRecord, error) {
	logger := NewLogger(ctx)
	start := time.Now()
	logger.LogInfof("generate_project", "semester=%q skill=%q interest=%q budget=%q type=%q",
		in.Semester, in.SkillLevel, in.InterestArea, in.Budget, in.ProjectType)

	rec, err := s.generate(ctx, in)
	recordGeneration(time.Since(start), err)
	if err != nil {
		logger.LogError("generate_project", err)
		return domain.ProjectRecord{}, domain.NewGenerationError(err)
	}

	logger.LogInfof("generate_project", "title=%q components=%d latency=%s",
		rec.Title, len(rec.HardwareComponents), time.Since(start))
	return rec, nil
}

func (s *GenerationService) generate(ctx context.Context, in domain.ConstraintInput) (domain.ProjectRecord, error) {
	text, err := s.model.GenerateJSON(ctx, []llm.Part{llm.TextPart(projectPrompt(in))}, llm.ProjectSchema())
	if err != nil {
		return domain.ProjectRecord{}, err
	}

	var w wireProject
	if err := decodeOne(text, &w); err != nil {
		return domain.ProjectRecord{}, err
	}
	return w.record()
}
