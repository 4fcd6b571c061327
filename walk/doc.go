// Package walk finds files by glob pattern, one directory or a whole tree at a time.
//
// Listing a single directory:
//
//	entries, err := walk.List("/etc")
//	confs, err := walk.Find("/etc", "*.conf")
//
// Walking a tree, matching the pattern in every directory:
//
//	docs, err := walk.FindRecursive("/src", "*.md")
//
//	// Several patterns in one pass
//	files, err := walk.FindRecursiveAny("/src", []string{"*.md", "*.gradle"})
//
// Unreadable directories are handled by an access-denied policy: a log
// severity and an action, chosen independently.
//
//	files, err := walk.FindRecursiveWithPolicy("/", "*.log",
//		walk.ActionTerminate, // stop at the first unreadable directory, keep what was found
//		walk.LogWarn,         // and say so at warn level
//		3,                    // list at most three levels below the root
//		false)                // do not follow symlinks
//
// With an options struct and a context:
//
//	opts := walk.DefaultOptions()
//	opts.AccessDenied = walk.ActionFail
//	opts.Logger = logger
//	files, err := walk.FindRecursiveWithOptions(ctx, "/data", []string{"*.csv"}, opts)
//	if errors.Is(err, walk.ErrAccessDenied) {
//		// ...
//	}
//
// Watching a tree and receiving the full match list whenever it changes:
//
//	err := walk.Watch(ctx, "/src", []string{"*.go"}, walk.DefaultOptions(), walk.WatchOptions{},
//		func(ctx context.Context, result walk.WatchResult) error {
//			fmt.Println(len(result.Paths), "files")
//			return nil
//		})
package walk
