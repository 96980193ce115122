package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/chronosmaps/discovery/internal/config"
	"github.com/chronosmaps/discovery/internal/jobs"
	"github.com/chronosmaps/discovery/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var st store.Store
	if cfg.UsePostgres() {
		st, err = store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
	} else {
		st, err = store.NewSQLiteStore(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("store error: %v", err)
	}
	defer func() { _ = st.Close() }()

	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"maintenance": 5,
			"default":     1,
		},
	})
	mux := asynq.NewServeMux()

	mux.HandleFunc(jobs.TaskPurgeExpired, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.PurgeExpiredPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Printf("[asynq] bad payload: %v", err)
			return err
		}
		if p.DryRun {
			log.Printf("[purge] dry run requested, skipping delete")
			return nil
		}

		start := time.Now()
		removed, err := st.PurgeExpired(ctx, time.Now())
		if err != nil {
			log.Printf("[purge] failed after %v: %v", time.Since(start), err)
			return err // allow retry
		}
		log.Printf("[purge] done removed=%d duration=%v", removed, time.Since(start))
		return nil
	})

	// Enqueue the purge on a fixed schedule; the task itself runs above.
	scheduler := asynq.NewScheduler(redisOpt, nil)
	payload, _ := json.Marshal(jobs.PurgeExpiredPayload{})
	if _, err := scheduler.Register(cfg.PurgeSchedule,
		asynq.NewTask(jobs.TaskPurgeExpired, payload),
		asynq.Queue("maintenance"),
	); err != nil {
		log.Fatalf("schedule error: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("scheduler error: %v", err)
		}
	}()

	log.Println("Worker running...")
	log.Fatal(srv.Run(mux))
}
