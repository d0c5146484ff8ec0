//nolint:all
package model

// ImplResponse defines an implementation response with error code and the associated body
type ImplResponse struct {
	Code int
	Body interface{}
}

// Response returns an ImplResponse with the given code and body.
func Response(code int, body interface{}) ImplResponse {
	return ImplResponse{
		Code: code,
		Body: body,
	}
}

// FileDownload is a helper payload type for binary responses with a custom
// content type (rendered graphs, QR codes).
type FileDownload struct {
	Content     []byte
	ContentType string
	Filename    string
}
