// Package ui contains the Bubble Tea program that powers the flatpak
// dashboard.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Screens form a stack of Modes. The top mode receives keys; the modes
//     below keep their state and resume unchanged when it is popped. A
//     confirmation prompt can overlay any mode and hands its Decision to a
//     continuation.
//   - Each mode has a poll timeout. Non-blocking modes run a tick chain
//     (dashboard refresh, search debounce, session reads); blocking modes
//     only react to keys. Changing mode starts a new chain and stale ticks
//     are dropped by generation.
//
// State ownership:
//   - Installed apps and the running map live in internal/state and are
//     replaced wholesale by the dispatcher after each refresh.
//   - Cursors, filters and query text live in internal/ui/state.
//   - Every call into flatpak or the pseudo-terminal runs inside a tea.Cmd;
//     results come back as messages so Update never blocks.
//
// Interrupts:
//   - RequestExit may be called from a signal handler goroutine. It only
//     sets an atomic flag which the next dashboard tick turns into the exit
//     prompt.
package ui
