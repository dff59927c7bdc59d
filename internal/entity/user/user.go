package user

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// Profile is the identity provider's view of a user. It is read-only here.
type Profile struct {
	ID         string
	Email      string
	Plan       Plan
	TelegramID int64
}

func (p Profile) IsPremium() bool {
	return p.Plan == PlanPremium
}

// ParsePlan maps stored plan metadata to a Plan, anything unknown is free.
func ParsePlan(raw string) Plan {
	if Plan(raw) == PlanPremium {
		return PlanPremium
	}
	return PlanFree
}
