package booking

import (
	"strings"

	"tourbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type ParticipantType string

const (
	ParticipantAdult  ParticipantType = "adult"
	ParticipantChild  ParticipantType = "child"
	ParticipantInfant ParticipantType = "infant"
)

// Participant is a named guest on a booking. Capacity is counted from Guests, never from participants.
type Participant struct {
	ID                  uuid.UUID
	BookingID           uuid.UUID
	FirstName           string
	LastName            string
	Email               *string
	Phone               *string
	Type                ParticipantType
	DietaryRequirements *string
	AccessibilityNeeds  *string
}

func NewParticipant(bookingID uuid.UUID, firstName, lastName string, typ ParticipantType) (Participant, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" {
		return Participant{}, errs.Validation("Participant first name is required")
	}
	switch typ {
	case "":
		typ = ParticipantAdult
	case ParticipantAdult, ParticipantChild, ParticipantInfant:
	default:
		return Participant{}, errs.Validation("Invalid participant type: %s", typ)
	}
	return Participant{
		ID:        uuid.New(),
		BookingID: bookingID,
		FirstName: firstName,
		LastName:  lastName,
		Type:      typ,
	}, nil
}
