package live

import (
	"fmt"
	"sort"

	"github.com/classpulse/backend/internal/domain/entities"
)

// NameResolver maps a detector person id to a roster identity. The returned
// studentID may be empty when the person has no roster entry; name falls
// back to the person id in that case.
type NameResolver func(personID string) (studentID, name string)

// Translate diffs the current status map against the previous one and emits
// the activity events describing what changed. Persons are visited in
// lexicographic person-id order so a single tick always produces the same
// event sequence. Absence from the current map emits nothing: brief
// detection dropouts must not fabricate leave events.
func Translate(current, previous map[string]entities.PersonStatus, resolve NameResolver) []entities.ActivityEvent {
	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var events []entities.ActivityEvent
	for _, id := range ids {
		cur := current[id]
		studentID, name := resolve(id)
		if name == "" {
			name = id
		}

		prev, present := previous[id]
		if !present {
			events = append(events, entities.ActivityEvent{
				Message:     fmt.Sprintf("%s joined the session", name),
				Type:        entities.EventTypeInfo,
				StudentID:   studentID,
				StudentName: name,
				ActionType:  entities.ActionJoin,
			})
			continue
		}

		if cur.Attention != prev.Attention {
			focused := cur.Attention == entities.AttentionFocused
			ev := entities.ActivityEvent{
				StudentID:   studentID,
				StudentName: name,
				ActionType:  entities.ActionFocusChange,
				Focused:     &focused,
			}
			if focused {
				ev.Type = entities.EventTypeSuccess
				ev.Message = fmt.Sprintf("%s is focused again", name)
			} else {
				ev.Type = entities.EventTypeWarning
				ev.Message = fmt.Sprintf("%s lost focus", name)
			}
			events = append(events, ev)
		}

		if cur.HandRaised != prev.HandRaised {
			ev := entities.ActivityEvent{
				StudentID:   studentID,
				StudentName: name,
				ActionType:  entities.ActionHandRaised,
			}
			if cur.HandRaised {
				ev.Type = entities.EventTypeWarning
				ev.Message = fmt.Sprintf("%s raised their hand", name)
			} else {
				ev.Type = entities.EventTypeInfo
				ev.Message = fmt.Sprintf("%s lowered their hand", name)
			}
			events = append(events, ev)
		}
	}
	return events
}
