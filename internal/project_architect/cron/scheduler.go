package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one periodic cleanup step. It returns how many entries it removed.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

type Scheduler struct {
	spec string
	jobs []Job
	c    *cron.Cron
}

// NewScheduler runs every job on the given cron spec, e.g. "@every 1m".
func NewScheduler(spec string, jobs ...Job) *Scheduler {
	return &Scheduler{spec: spec, jobs: jobs}
}

// Start initializes cron tasks
func (s *Scheduler) Start() error {
	s.c = cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))

	if _, err := s.c.AddFunc(s.spec, s.RunOnce); err != nil {
		return err
	}

	log.Printf("Cron scheduler started (sweeping %s)", s.spec)
	s.c.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.c == nil {
		return
	}
	<-s.c.Stop().Done()
}

// RunOnce runs all jobs in order. A failing job does not stop the others.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, j := range s.jobs {
		n, err := j.Run(ctx)
		if err != nil {
			log.Printf("[warn] operation=sweep job=%s error=%v", j.Name, err)
			continue
		}
		if n > 0 {
			log.Printf("[info] operation=sweep job=%s removed=%d", j.Name, n)
		}
	}
}
