package validator

// RegisterRequest represents the request structure for local signup
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	FullName    string `json:"full_name" validate:"required,arabic_text"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,egypt_phone"`
	NationalID  string `json:"national_id" validate:"required,national_id"`
	StudentID   string `json:"student_id" validate:"required,max=32"`
}

// LoginRequest represents the request structure for local login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ApplicationCreateRequest represents a housing application submission.
// GPA scale depends on the student type and is checked as a business rule,
// not a struct tag.
type ApplicationCreateRequest struct {
	StudentType    string  `json:"student_type" validate:"required,oneof=new old"`
	FullName       string  `json:"full_name" validate:"required,arabic_text"`
	StudentID      string  `json:"student_id" validate:"required,max=32"`
	NationalID     string  `json:"national_id" validate:"omitempty,national_id"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required,egypt_phone"`
	Major          string  `json:"major" validate:"required,arabic_text"`
	GPA            float64 `json:"gpa"`
	Address        string  `json:"address" validate:"required,arabic_text"`
	Governorate    string  `json:"governorate" validate:"required,arabic_text"`
	FamilyIncome   string  `json:"family_income" validate:"required,max=64"`
	AdditionalInfo string  `json:"additional_info" validate:"omitempty,max=1000"`
}

// ComplaintCreateRequest represents a student complaint submission
type ComplaintCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
}

// FeePaymentRequest represents recording a fee payment
type FeePaymentRequest struct {
	FeeID       uint    `json:"fee_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	ReceiptFile string  `json:"receipt_file" validate:"omitempty,max=255"`
}

// InquiryRequest represents a national-id status lookup
type InquiryRequest struct {
	NationalID string `json:"national_id" validate:"required"`
}
