// Package reporter implements polymorphic log reporters.
//
// A Reporter is an iface wrapper whose table is Operations. Backends:
//
//   - NewTextStream formats entries and writes them to a stream, which
//     becomes the reporter's private instance. NewTextFile and
//     NewTextStdout build the stream for you.
//   - NewZap forwards entries to a zap logger.
//   - NewFilter drops entries below a threshold before passing the rest to
//     another reporter.
//
// Reporters nest: releasing the outermost one releases each inner stream or
// reporter exactly once, when no one else holds it.
//
//	rep, err := reporter.NewTextStdout(rt)
//	if err != nil {
//	    return err
//	}
//	defer reporter.Release(&rep)
//	reporter.ReportString(rep, logentry.LevelInfo, "ready")
package reporter
