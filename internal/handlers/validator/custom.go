package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/powhr/talentflow/internal/pipeline"
)

var (
	titleValidRegex      = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 +\-_./()&,]{0,149}$`)
	personNameValidRegex = regexp.MustCompile(`^[\p{L}][\p{L} '\-.]{0,99}$`)
)

func stringField(fl validator.FieldLevel) (string, bool) {
	if val, ok := fl.Field().Interface().(string); ok {
		return val, true
	}
	if val, ok := fl.Field().Addr().Interface().(*string); ok && val != nil {
		return *val, true
	}
	return "", false
}

func stageValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := pipeline.ParseStage(val)
	return err == nil
}

func stageStatusValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := pipeline.ParseStageStatus(val)
	return err == nil
}

func offerStatusValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := pipeline.ParseOfferStatus(val)
	return err == nil
}

func finalOutcomeValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := pipeline.ParseFinalOutcome(val)
	return err == nil
}

func rejectionReasonValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := pipeline.ParseRejectionReason(val)
	return err == nil
}

func titleValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	return titleValidRegex.MatchString(val)
}

func personNameValidator(fl validator.FieldLevel) bool {
	val, ok := stringField(fl)
	if !ok {
		return false
	}
	return personNameValidRegex.MatchString(val)
}
