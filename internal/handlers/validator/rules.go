package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewTransitionValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("stage", stageValidator),
		},
		{
			Rule: registerFn("stage_status", stageStatusValidator),
		},
		{
			Rule: registerFn("offer_status", offerStatusValidator),
		},
		{
			Rule: registerFn("final_outcome", finalOutcomeValidator),
		},
		{
			Rule: registerFn("rejection_reason", rejectionReasonValidator),
		},
	}
}

func NewPositionValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("position_title", titleValidator),
		},
	}
}

func NewCandidateValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("person_name", personNameValidator),
		},
	}
}
