/*
Package operation runs one size-suffix cleanup pass over a static export.

	+-------------+
	|  Discover   |
	|   (Paths)   |
	+------+------+
	       |
	+------+------+
	|   Process   |
	|  (Rewrite)  |
	+------+------+
	       |
	+------+------+
	|   Status    |
	| (Backup/IO) |
	+-------------+

🔄 Per file:

	Discovered → Read → Matched → NoChangeNeeded
	                            → DryRunReported
	                            → BackedUp → Written
	                                               → Counted

A failure at any step is logged with the file and the step, counted, and the
run moves on to the next file. Only configuration problems stop a run, and
those are caught before Run is called.

Files are handled one at a time on the calling goroutine. Stats are owned by
the Runner for the length of Run and returned when it finishes.

🔍 Example:

	runner, err := operation.New(operation.Options{
		Config: cfg,
		Files:  mgr,
		Logger: logger,
	})
	stats := runner.Run(ctx)
*/
package operation
