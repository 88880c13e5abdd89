// Package service implements the business rules behind the request handlers.
package service

// FieldError is a field-level validation failure, surfaced back to the
// submission form for re-rendering.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PostForm is the bound input of the post create/edit submissions. The image
// part travels separately as multipart content.
type PostForm struct {
	Text    string `form:"text" json:"text"`
	GroupID *uint  `form:"group" json:"group,omitempty"`
}

// CommentForm is the bound input of the comment submission. It is also the
// empty form object handed to the detail view for rendering.
type CommentForm struct {
	Text string `form:"text" json:"text"`
}
