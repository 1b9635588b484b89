// Package engine implements the page synchronization core.
//
// When a tracked navigation operation completes on one surface, the engine
// computes a staircase of target pages across every surface showing the same
// buffer (each window one page step further than the window to its left,
// clamped to the document's page range) and applies it.
//
// # Synchronization pass
//
// A pass runs synchronously in the goroutine that fired the navigation hook:
//
//  1. Preconditions: the buffer's mode has a registered viewer, at least two
//     live surfaces show the buffer, and the triggering surface is among
//     them. Any failure is a silent no-op; the next navigation retries from
//     scratch.
//  2. The surfaces are ordered left-to-right, top-to-bottom, and target
//     pages are computed with Staircase.
//  3. Under the Guard, every non-triggering surface that is still live and
//     not already on its target page is moved there, and a debounced
//     redisplay is scheduled for it. A capability failure on one surface is
//     logged and the loop continues with the rest.
//
// The Guard suppresses this mode's navigation hooks for the duration of
// step 3, so the GotoPage calls the engine makes cannot recursively trigger
// another pass. Hooks are re-enabled on every exit path.
package engine
