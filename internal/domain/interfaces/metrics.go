package interfaces

import "time"

type RefreshMetrics interface {
	RefreshCompleted(kind string, rows int)
	RefreshFailed(kind string)
}

type FetchMetrics interface {
	FetchObserved(feed string, took time.Duration, err error)
}
