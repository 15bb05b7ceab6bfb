package attendance

import "errors"

var (
	ErrRecordNotFound          = errors.New("attendance record not found")
	ErrAlreadyMarked           = errors.New("attendance already marked for this date")
	ErrNoEntryRecorded         = errors.New("no entry recorded for this date")
	ErrInvalidTimeOrder        = errors.New("exit time must be after entry time")
	ErrIncompleteTimes         = errors.New("entry and exit times do not match the requested status")
	ErrReasonTooShort          = errors.New("correction reason must be at least 10 characters")
	ErrOutsideCorrectionWindow = errors.New("date is outside the correction window")
	ErrInactiveEmployee        = errors.New("employee is not active")
	ErrStoreUnavailable        = errors.New("attendance store unavailable")
)
