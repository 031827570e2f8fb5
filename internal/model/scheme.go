package model

// CheckRequest is the request body for POST /check_status.
type CheckRequest struct {
	SchemeID string `json:"scheme_id"`
}

// CheckResult is the response body for a successful scheme check.
type CheckResult struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

// MaxSchemeIDLength bounds the scheme ID typed into the portal form.
const MaxSchemeIDLength = 64
