package domain

// Phase is the lifecycle position of the current tab selection
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseLoading          Phase = "loading"
	PhaseLoaded           Phase = "loaded"
	PhaseExtractionFailed Phase = "extraction_failed"
	PhaseConverting       Phase = "converting"
	PhaseConverted        Phase = "converted"
	PhaseConversionFailed Phase = "conversion_failed"
)

// ViewMode selects which text of the record is displayed
type ViewMode string

const (
	ViewRaw      ViewMode = "raw"
	ViewMarkdown ViewMode = "markdown"
)

// StatusLevel classifies a user-visible status message
type StatusLevel string

const (
	StatusSuccess StatusLevel = "success"
	StatusError   StatusLevel = "error"
)

// Status is the last user-visible outcome message
type Status struct {
	Level   StatusLevel `json:"level"`
	Message string      `json:"message"`
}
