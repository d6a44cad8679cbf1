package models

// ContactSubmission is a validated contact-form record. It lives for exactly
// one request and is never persisted.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contact_email"`
	Phone   string `json:"phone" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Contact form field names as they appear in the JSON body
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// RequiredFields lists every field a submission must carry.
var RequiredFields = []string{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}

// MessageResponse is the JSON body of every response the relay produces.
type MessageResponse struct {
	Message string `json:"message"`
}
