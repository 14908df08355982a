package validator

// ValidateApplicationCreate validates an application submission: struct
// rules first, then the per-variant GPA scale. New-student forms grade on
// 0-100, old-student forms on 0-4; the two scales coexist on purpose.
func (v *Validator) ValidateApplicationCreate(req *ApplicationCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, v.Validate(req)...)

	switch req.StudentType {
	case "new":
		if req.GPA < 0 || req.GPA > 100 {
			errors = append(errors, ValidationError{
				Field:   "gpa",
				Message: "must be between 0 and 100",
				Value:   req.GPA,
				Rule:    "gpa100",
			})
		}
	case "old":
		if req.GPA < 0 || req.GPA > 4 {
			errors = append(errors, ValidationError{
				Field:   "gpa",
				Message: "must be between 0 and 4",
				Value:   req.GPA,
				Rule:    "gpa4",
			})
		}
	}

	return errors
}

// ValidateInquiry checks the lookup input before any repository or
// upstream call is made: trim, strip non-digits, require exactly 14 digits.
// Returns the normalized id on success.
func (v *Validator) ValidateInquiry(nationalID string) (string, ValidationErrors) {
	normalized := DigitsOnly(nationalID)
	if len(normalized) != 14 {
		return "", ValidationErrors{{
			Field:   "national_id",
			Message: "must be exactly 14 digits",
			Value:   nationalID,
			Rule:    "national_id",
		}}
	}
	return normalized, nil
}
