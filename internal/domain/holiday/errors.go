package holiday

import "errors"

var ErrInvalidRecurrenceRule = errors.New("holiday recurrence rule is not a valid RRULE")
