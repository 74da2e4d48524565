package calendar

// HasConflict reports whether the candidate collides with an existing
// event: same calendar day, same tag, different id. An event never
// conflicts with its own stored record, so edits can keep the date and tag.
func HasConflict(candidate Event, existing []Event) bool {
	for _, ev := range existing {
		if ev.ID == candidate.ID {
			continue
		}
		if SameDay(ev.Date, candidate.Date) && ev.Tag == candidate.Tag {
			return true
		}
	}
	return false
}
