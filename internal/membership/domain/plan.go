// Package domain holds the membership plan catalog and inquiry record.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/rindi230/angelsfitnesgym/pkg/slug"
)

// Plan is a membership tier offered by the gym. Prices are monthly, in cents.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceMonthly int64    `json:"price_monthly"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Popular      bool     `json:"popular"`
}

// Plans returns the membership tiers. The catalog is static: tiers change
// rarely and only together with marketing copy. Plan IDs are slugs derived
// from the tier name so they stay stable in links and API paths.
func Plans() []Plan {
	return []Plan{
		{
			ID:           slug.Generate("Basic"),
			Name:         "Basic",
			PriceMonthly: 2900,
			Description:  "Perfect for getting started with your fitness journey",
			Features: []string{
				"Access to gym equipment",
				"Basic locker room access",
				"Free parking",
				"Online workout tracking",
			},
		},
		{
			ID:           slug.Generate("Premium"),
			Name:         "Premium",
			PriceMonthly: 4900,
			Description:  "Most popular choice with added benefits",
			Features: []string{
				"All Basic features",
				"Group fitness classes",
				"Personal training consultation",
				"Nutritional guidance",
				"Priority booking",
				"Guest passes (2 per month)",
			},
			Popular: true,
		},
		{
			ID:           slug.Generate("Elite"),
			Name:         "Elite",
			PriceMonthly: 7900,
			Description:  "Ultimate fitness experience with VIP treatment",
			Features: []string{
				"All Premium features",
				"Unlimited personal training",
				"Massage therapy sessions",
				"VIP locker room access",
				"Unlimited guest passes",
				"Custom meal planning",
				"24/7 gym access",
			},
		},
	}
}

// PlanByID looks up a plan by its ID. The second return value reports
// whether the plan exists.
func PlanByID(id string) (Plan, bool) {
	for _, plan := range Plans() {
		if plan.ID == id {
			return plan, true
		}
	}
	return Plan{}, false
}

// Inquiry is a prospective member's interest in a plan.
type Inquiry struct {
	ID        uuid.UUID `json:"id"`
	PlanID    string    `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
