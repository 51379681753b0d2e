package lookupdest

// Job is a unit of scheduled work. Jobs run once, on whichever worker
// picks them up.
type Job interface {
	Name() string
	RunJob()
}

type funcJob struct {
	name string
	fn   func()
}

// NewJob wraps fn as a Job.
func NewJob(name string, fn func()) Job {
	return &funcJob{name: name, fn: fn}
}

func (j *funcJob) Name() string { return j.name }

func (j *funcJob) RunJob() { j.fn() }
