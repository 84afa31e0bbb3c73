package dto

// Response is the success envelope: {"data": ...}
type Response struct {
	Data any `json:"data"`
}

// ErrorResponse is the failure envelope. Error carries the message shown to
// the operator; clients that only read "error" keep working.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Data: data}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Code:  code,
	}
}

// NewErrorResponseWithRequestID creates an error response with request ID
func NewErrorResponseWithRequestID(code, message, requestID string) ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// StatusResponse is returned by the root and health endpoints
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Store   string `json:"store,omitempty"`
	Time    string `json:"time,omitempty"`
}
