package model

// ErrorEnvelope is the JSON body returned on every failed request
type ErrorEnvelope struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
