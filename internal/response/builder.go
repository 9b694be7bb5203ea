package response

import (
	"encoding/json"
)

// Build message of kind with payload or error.
func Build(kind string, payload interface{}, err error) ([]byte, error) {
	response := response{
		IsOk: err == nil,
		Kind: kind,
	}

	if payload != nil {
		response.Payload = payload
	}

	if !response.IsOk {
		response.Error = err.Error()
	}
	return json.Marshal(response)
}
