package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

var errTrailingData = errors.New("response holds more than one JSON document")

// decodeOne decodes exactly one JSON document from text into v.
func decodeOne(text string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// Wire shapes keep numeric and boolean fields as pointers so that an
// omitted field is distinguishable from a zero value.
type wireComponent struct {
	Name string   `json:"name"`
	Use  string   `json:"use"`
	Cost *float64 `json:"cost"`
}

type wireProject struct {
	Title              string          `json:"title"`
	ProblemDefinition  string          `json:"problemDefinition"`
	WorkingLogic       []string        `json:"workingLogic"`
	HardwareComponents []wireComponent `json:"hardwareComponents"`
	SoftwareTools      []string        `json:"softwareTools"`
	FutureScope        []string        `json:"futureScope"`
	Report             *domain.Report  `json:"report"`
}

func (w wireProject) record() (domain.ProjectRecord, error) {
	if w.Report == nil {
		return domain.ProjectRecord{}, &domain.ValidationError{Problems: []string{"report is missing"}}
	}

	var missing []string
	var components []domain.HardwareComponent
	if w.HardwareComponents != nil {
		components = make([]domain.HardwareComponent, 0, len(w.HardwareComponents))
	}
	for i, c := range w.HardwareComponents {
		if c.Cost == nil {
			missing = append(missing, fmt.Sprintf("hardwareComponents[%d].cost is missing", i))
			continue
		}
		components = append(components, domain.HardwareComponent{Name: c.Name, Use: c.Use, Cost: *c.Cost})
	}
	if len(missing) > 0 {
		return domain.ProjectRecord{}, &domain.ValidationError{Problems: missing}
	}

	rec := domain.ProjectRecord{
		Title:              w.Title,
		ProblemDefinition:  w.ProblemDefinition,
		WorkingLogic:       w.WorkingLogic,
		HardwareComponents: components,
		SoftwareTools:      w.SoftwareTools,
		FutureScope:        w.FutureScope,
		Report:             *w.Report,
	}
	if err := rec.Validate(); err != nil {
		return domain.ProjectRecord{}, err
	}
	return rec, nil
}

type wireHazard struct {
	HazardDetected *bool    `json:"hazard_detected"`
	Type           *string  `json:"type"`
	Confidence     *float64 `json:"confidence"`
}

func (w wireHazard) result() (domain.HazardResult, error) {
	var missing []string
	if w.HazardDetected == nil {
		missing = append(missing, "hazard_detected is missing")
	}
	if w.Type == nil {
		missing = append(missing, "type is missing")
	}
	if w.Confidence == nil {
		missing = append(missing, "confidence is missing")
	}
	if len(missing) > 0 {
		return domain.HazardResult{}, &domain.ValidationError{Problems: missing}
	}

	res := domain.HazardResult{
		HazardDetected: *w.HazardDetected,
		Type:           *w.Type,
		Confidence:     *w.Confidence,
	}
	if err := res.Validate(); err != nil {
		return domain.HazardResult{}, err
	}
	return res, nil
}
