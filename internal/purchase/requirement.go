package purchase

import (
	"strings"

	"abod-card-app/internal/model"
	"abod-card-app/internal/ui"
)

// Requirement is the extra buyer input a delivery mechanism demands before
// a purchase may be submitted.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireAccountID
	RequireEmail
	RequirePhone
)

// RequirementFor maps a delivery mechanism to its input requirement. Pure
// and total over the mechanism enum: code and manual need nothing from the
// buyer (manual only differs in that the resulting order stays pending,
// which the backend decides, not us).
func RequirementFor(m model.DeliveryMechanism) Requirement {
	switch m {
	case model.DeliveryAccountID:
		return RequireAccountID
	case model.DeliveryEmail:
		return RequireEmail
	case model.DeliveryPhone:
		return RequirePhone
	default:
		return RequireNone
	}
}

// infoKey is the additional_info field name the backend expects.
func (r Requirement) infoKey() string {
	switch r {
	case RequireAccountID:
		return "user_id"
	case RequireEmail:
		return "email"
	case RequirePhone:
		return "phone"
	default:
		return ""
	}
}

// promptSpec describes the dialog shown for this requirement.
func (r Requirement) promptSpec() ui.PromptSpec {
	switch r {
	case RequireAccountID:
		return ui.PromptSpec{
			Title:       "Enter the account ID",
			Label:       "Account ID",
			Placeholder: "123456789",
			Help:        "Double-check the ID before confirming",
		}
	case RequireEmail:
		return ui.PromptSpec{
			Title:       "Enter your email address",
			Label:       "Email",
			Placeholder: "example@domain.com",
			Help:        "The item will be sent to this address",
		}
	case RequirePhone:
		return ui.PromptSpec{
			Title:       "Enter your phone number",
			Label:       "Phone",
			Placeholder: "+966xxxxxxxxx",
			Help:        "Double-check the number before confirming",
		}
	default:
		return ui.PromptSpec{}
	}
}

// validate checks a collected value. The returned message is user-visible;
// the dialog re-prompts on failure instead of surfacing an error.
func (r Requirement) validate(value string) (string, bool) {
	if value == "" {
		return "Please enter the required information", false
	}
	switch r {
	case RequireEmail:
		if !strings.Contains(value, "@") {
			return "Please enter a valid email address", false
		}
	case RequirePhone:
		if len(value) < 8 {
			return "Please enter a valid phone number", false
		}
	}
	return "", true
}
