package pipeline

// Analysis stages reported through ProgressEvent.Step.
const (
	StepSkills     = "skills"
	StepExperience = "experience"
	StepMatching   = "matching"
	StepScoring    = "scoring"
	StepComplete   = "complete"
)

// ProgressEvent represents a progress update during an analysis.
type ProgressEvent struct {
	Step     string `json:"step"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
	ResultID string `json:"result_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs. During a batch it
// may be called from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

func (e *Engine) emitProgress(step, source, message string, content any) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{
			Step:    step,
			Source:  source,
			Message: message,
			Content: content,
		})
	}
}
