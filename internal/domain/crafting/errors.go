package crafting

import "errors"

var (
	ErrUnknownRecipe         = errors.New("recipe does not exist")
	ErrInsufficientSkill     = errors.New("insufficient skill level")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrConsumptionFailed     = errors.New("resource consumption failed")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrDuplicateRecipe       = errors.New("recipe already registered")
	ErrInvalidTransition     = errors.New("invalid process transition")
)

var failureReasons = map[error]string{
	ErrUnknownRecipe:         "Recipe does not exist",
	ErrInsufficientSkill:     "Insufficient skill level",
	ErrInsufficientResources: "Insufficient resources",
	ErrConsumptionFailed:     "Resource consumption failed",
	ErrInvalidQuantity:       "Invalid quantity",
}

// FailureReason maps a start failure to the reason shown to players
func FailureReason(err error) string {
	for sentinel, reason := range failureReasons {
		if errors.Is(err, sentinel) {
			return reason
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
