package tasks

// TaskSchedulerInterface is the scheduler surface used by the main
// application and the HTTP API: queue management, worker pool control, and
// run counters for the stats endpoint.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	Counters() RunCounters
}

// RunCounters accumulate gateway outcomes across the run, for logging and
// the stats endpoint.
type RunCounters struct {
	Processed  int `json:"processed"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
	Failed     int `json:"failed"`
}
