package dashboard

import (
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prioritize reorders cards so role-relevant events sort first: a manager's
// own events, or the events a volunteer holds an APPROVED registration for.
// It is a stable partition (both sublists keep their original relative
// order) and for admins or unknown roles it is the identity.
func Prioritize(cards []EventCard, userID primitive.ObjectID, role string) []EventCard {
	var isMine func(EventCard) bool
	switch role {
	case models.RoleEventManager:
		isMine = func(c EventCard) bool { return c.ManagerID == userID }
	case models.RoleVolunteer:
		isMine = func(c EventCard) bool { return c.MyRegistrationID != nil }
	default:
		return cards
	}

	mine := make([]EventCard, 0, len(cards))
	rest := make([]EventCard, 0, len(cards))
	for _, c := range cards {
		if isMine(c) {
			mine = append(mine, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(mine, rest...)
}
