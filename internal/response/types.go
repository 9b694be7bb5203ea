package response

type response struct {
	IsOk    bool        `json:"is_ok"`
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}
