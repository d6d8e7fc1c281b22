package ws

const (
	TypeHello            = "hello"
	TypeQuestionsChanged = "questions_changed"
)

type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// RefreshPayload carries the shared refresh counter. Dashboards re-fetch the
// question list whenever Version moves past the one they rendered.
type RefreshPayload struct {
	Version int64  `json:"version"`
	Reason  string `json:"reason,omitempty"`
}
