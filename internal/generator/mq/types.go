package mq

const (
	kindProgress = "progress"
	kindResult   = "result"
)

type progress struct {
	RunID    string   `json:"run_id"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Fraction float64  `json:"fraction"`
	Phase    string   `json:"phase"`
	Record   string   `json:"record"`
	Status   string   `json:"status"`
	Files    []string `json:"files,omitempty"`
}

type failure struct {
	Index  int    `json:"index"`
	Record string `json:"record"`
	Error  string `json:"error"`
}

type result struct {
	RunID    string    `json:"run_id"`
	Mode     string    `json:"mode"`
	State    string    `json:"state"`
	Count    int       `json:"count"`
	Total    int       `json:"total"`
	Files    []string  `json:"files"`
	Failures []failure `json:"failures,omitempty"`
	Summary  string    `json:"summary"`
	Duration string    `json:"duration"`
}
