package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/llm"
)

const defaultImageMIME = "image/jpeg"

// AnalysisService classifies a single image for fire, smoke and gas hazards.
type AnalysisService struct {
	model llm.Model
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(model llm.Model) *AnalysisService {
	return &AnalysisService{model: model}
}

// AnalyzeImage accepts a data URL or a bare base64 payload. Failures come
// back as *domain.AnalysisError.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, image string) (domain.HazardResult, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	res, err := s.analyze(ctx, image)
	recordAnalysis(time.Since(start), err)
	if err != nil {
		logger.LogError("analyze_image", err)
		return domain.HazardResult{}, domain.NewAnalysisError(err)
	}

	logger.LogInfof("analyze_image", "hazard=%t type=%q confidence=%.0f latency=%s",
		res.HazardDetected, res.Type, res.Confidence, time.Since(start))
	return res, nil
}

func (s *AnalysisService) analyze(ctx context.Context, image string) (domain.HazardResult, error) {
	data, mimeType, err := DecodeImage(image)
	if err != nil {
		return domain.HazardResult{}, err
	}

	parts := []llm.Part{llm.TextPart(hazardInstruction), llm.BlobPart(data, mimeType)}
	text, err := s.model.GenerateJSON(ctx, parts, llm.HazardSchema())
	if err != nil {
		return domain.HazardResult{}, err
	}

	var w wireHazard
	if err := decodeOne(text, &w); err != nil {
		return domain.HazardResult{}, err
	}
	return w.result()
}

// DecodeImage strips a data URL prefix and returns the raw bytes with the
// declared MIME type. A bare payload is treated as JPEG.
func DecodeImage(image string) ([]byte, string, error) {
	image = strings.TrimSpace(image)
	if image == "" {
		return nil, "", domain.ErrNoImage
	}

	mimeType := defaultImageMIME
	payload := image
	if meta, rest, ok := strings.Cut(image, ","); ok {
		payload = rest
		if m, found := strings.CutPrefix(meta, "data:"); found {
			m, _, _ = strings.Cut(m, ";")
			if m != "" {
				mimeType = strings.ToLower(m)
			}
		}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%w: mime type %q", domain.ErrInvalidImage, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty payload", domain.ErrInvalidImage)
	}
	return data, mimeType, nil
}

// EncodeDataURL is the inverse of DecodeImage, used when a file is uploaded.
func EncodeDataURL(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = defaultImageMIME
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
