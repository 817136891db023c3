package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

// LineKind selects how a transcript line is styled.
type LineKind string

const (
	KindSystem  LineKind = "system"
	KindEvent   LineKind = "event"
	KindCloud   LineKind = "cloud"
	KindResult  LineKind = "result"
	KindAlert   LineKind = "alert"
	KindSecure  LineKind = "secure"
	KindFailure LineKind = "failure"
)

// Line is one row of the device log.
type Line struct {
	Kind LineKind `json:"kind"`
	Tag  string   `json:"tag,omitempty"`
	Text string   `json:"text"`
}

func (l Line) String() string {
	if l.Tag == "" {
		return l.Text
	}
	return l.Tag + " " + l.Text
}

// Transcript is the synthetic device log shown next to the simulator.
type Transcript struct {
	Header string `json:"header"`
	Lines  []Line `json:"lines"`
}

const (
	TranscriptHeader = "DEVICE_LOGS @ ESP32_SENTINEL"
	AlertLine        = "!!! TRIGGERING BUZZER & NOTIFICATION !!!"
	SecureLine       = "✓ STATUS: SECURE (FALSE TRIGGER)"
)

var bootLines = []Line{
	{Kind: KindSystem, Tag: "[SYSTEM]", Text: "Initializing IoT Node..."},
	{Kind: KindSystem, Tag: "[SYSTEM]", Text: "Sensors: MQ-2 (OK), PIR (OK)"},
	{Kind: KindSystem, Tag: "[WIFI]", Text: "Connected to Cloud Server"},
}

// NewTranscript builds the log for the panel state. analyzing reports an
// outstanding request, which may differ from the phase after a re-selection.
func NewTranscript(sim domain.SimulatorState, analyzing bool) Transcript {
	t := Transcript{Header: TranscriptHeader, Lines: append([]Line(nil), bootLines...)}
	if sim.Image != "" {
		t.Lines = append(t.Lines, Line{Kind: KindEvent, Tag: "[EVENT]", Text: "Motion/Gas Trigger! Capture Frame..."})
	}
	if analyzing || sim.Phase == domain.PhaseAnalyzing {
		t.Lines = append(t.Lines, Line{Kind: KindCloud, Tag: "[CLOUD]", Text: "Sending payload to Gemini API..."})
	}
	if sim.Phase != domain.PhaseResultReady {
		return t
	}

	if sim.Result == nil {
		msg := sim.Error
		if msg == "" {
			msg = domain.AnalysisFailedMessage
		}
		t.Lines = append(t.Lines, Line{Kind: KindFailure, Tag: "[ERROR]", Text: msg})
		return t
	}

	r := sim.Result
	hazardType := strings.TrimSpace(r.Type)
	if hazardType == "" {
		hazardType = "N/A"
	}
	t.Lines = append(t.Lines,
		Line{Kind: KindResult, Text: "--- ANALYSIS RESULT ---"},
		Line{Kind: KindResult, Text: "HAZARD_DETECTED: " + strings.ToUpper(strconv.FormatBool(r.HazardDetected))},
		Line{Kind: KindResult, Text: "TYPE: " + hazardType},
		Line{Kind: KindResult, Text: fmt.Sprintf("CONFIDENCE: %s%%", strconv.FormatFloat(r.Confidence, 'f', -1, 64))},
	)
	if r.HazardDetected {
		t.Lines = append(t.Lines, Line{Kind: KindAlert, Text: AlertLine})
	} else {
		t.Lines = append(t.Lines, Line{Kind: KindSecure, Text: SecureLine})
	}
	return t
}

// Text joins the lines as they appear on the device console.
func (t Transcript) Text() string {
	var b strings.Builder
	b.WriteString(t.Header)
	for _, l := range t.Lines {
		b.WriteByte('\n')
		b.WriteString(l.String())
	}
	return b.String()
}
