package customerr

import "github.com/pkg/errors"

const (
	SignInMessage      = "Please sign in to continue."
	UpsellMessage      = "You need a premium plan to generate AI reports. Upgrade your plan to unlock them."
	LimitMessage       = "You have reached the monthly transaction limit of the free plan. Upgrade your plan to add more."
	RetryMessage       = "The service is temporarily unavailable, please try again."
	GenerationMessage  = "Report generation failed, try again."
	UnexpectedMessage  = "Sorry, something wrong happened..."
	validationTemplate = "Please check the form: "
)

// UserMessage renders err the way it is shown to users.
func UserMessage(err error) string {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return validationTemplate + vErr.Error()
	case errors.Is(err, ErrUnauthenticated):
		return SignInMessage
	case errors.Is(err, ErrPlanRequired):
		return UpsellMessage
	case errors.Is(err, ErrLimitExceeded):
		return LimitMessage
	case errors.Is(err, ErrDependencyUnavailable):
		return RetryMessage
	case errors.Is(err, ErrGenerationFailed):
		return GenerationMessage
	}
	return UnexpectedMessage
}
