// Package shutdown runs cleanup hooks when QuestKeep is interrupted.
//
// The interactive shell owns unsaved state and an open storage engine. A
// Handler collects named hooks (save the snapshot, close the engine) and
// runs them once, in reverse registration order, on SIGINT, SIGTERM or
// when the caller's context ends.
//
// Usage:
//
//	h := shutdown.NewHandler(5*time.Second, shutdown.WithLogger(log))
//	h.OnShutdown("close engine", engine.Close)
//	h.OnShutdown("save snapshot", keeper.Save)
//	go func() {
//		if sig, _ := h.Wait(ctx); sig != nil {
//			os.Exit(130)
//		}
//	}()
package shutdown
