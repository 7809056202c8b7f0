package db_models

type Plan string

const (
	PlanFree     Plan = "FREE"
	PlanBasic    Plan = "BASIC"
	PlanStandard Plan = "STANDARD"
	PlanPremium  Plan = "PREMIUM"
)

type OnboardingStatus string

const (
	OnboardingNotStarted OnboardingStatus = "NOT_STARTED"
	OnboardingSkipped    OnboardingStatus = "SKIPPED"
	OnboardingCompleted  OnboardingStatus = "COMPLETED"
)
