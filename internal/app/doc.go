// Package app is the composition root of the weatherpi kiosk.
//
// # Overview
//
// Run loads configuration, builds the logger, weather client, icon resolver
// and display model, performs one synchronous weather fetch for the first
// frame, then hands the terminal to Bubble Tea while two periodic tasks keep
// the display current.
//
// # Lifecycle
//
//	Starting ──launch──> Running ──close / signal / fatal fetch──> Stopped
//
// Tasks never touch the model directly. They call Lifecycle.Dispatch, which
// forwards a message to the program only while the kiosk is Running; anything
// else is dropped and counted.
//
// Stop cancels both tasks, waits for in-flight ones to return, and then
// quits the program. It is idempotent and safe from any goroutine except a
// task. A fatal weather error therefore goes through Fail, which only asks
// the program to quit; Run calls Stop once the program has exited.
//
// # Tasks
//
//   - time: every second, first run immediately. Sets time and date.
//   - weather: every weather_refresh seconds, first run one period after the
//     startup fetch. Sets temperature, icon and last update.
//
// # Fetch failures
//
// With fetch_error_policy = "exit" (the default) a failed or malformed fetch
// halts the weather task and ends the program with the error. With "keep"
// the failure is logged, recorded in the state store, and the display keeps
// the last good reading until the next interval. Configuration errors are
// fatal under both policies.
package app
