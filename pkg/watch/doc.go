// Package watch re-runs mandate checks when workspace documents change or
// on a cron schedule.
//
// A Runner serialises check runs so a file event and a scheduled tick never
// overlap. FileWatcher and Scheduler are the two event sources; both stop
// when their context is cancelled.
//
//	runner := watch.NewRunner(check, logger)
//
//	fw, _ := watch.NewFileWatcher(&watch.FileWatcherConfig{
//	    Dir:   dir,
//	    Names: []string{".usdc-mandate.json", ".usdc-mandate-ledger.json"},
//	}, logger)
//	go fw.Watch(ctx, runner.Trigger(watch.TriggerFile))
//
//	sched := watch.NewScheduler(logger)
//	sched.Add("check", "*/5 * * * *", runner.Trigger(watch.TriggerSchedule))
//	sched.Start(ctx)
package watch
