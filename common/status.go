package common

// StatusInfo describes the outcome of a status check.
type StatusInfo struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// ApiStatus is the body of the /status route.
type ApiStatus struct {
	Status StatusInfo `json:"status"`
}

func NewApiStatus(code int, reason string) ApiStatus {
	return ApiStatus{Status: StatusInfo{Code: code, Reason: reason}}
}
