package llm

import (
	"golang.org/x/sync/semaphore"
)

// TextSem caps concurrent text generations across the process
var (
	TextWeight = int64(5)
	TextSem    = semaphore.NewWeighted(TextWeight)
)
