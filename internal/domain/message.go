package domain

// DetectedMessage is a new piece of content observed on a monitored tab
// during a poll tick. Production is append-only; consumers read, never
// mutate.
type DetectedMessage struct {
	TabID     string `json:"tab_id"`
	TabTitle  string `json:"tab_title"`
	Domain    string `json:"domain"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}
