package turn

import "errors"

var (
	ErrNotAwaitingInput = errors.New("scheduler is not awaiting input")
	ErrNotPending       = errors.New("entity is not the one awaiting input")
	ErrEnded            = errors.New("scheduler has ended")
)
