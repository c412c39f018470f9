package study

import (
	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
)

// reviewRecordedMsg is sent once a verdict has been written to the store.
type reviewRecordedMsg struct {
	CardID  int64
	Outcome spacedrep.Outcome
	Card    *store.Card
	Err     error
}
