// Package host turns raw toolkit input into events the stick controller understands.
//
// Toolkits either deliver discrete mouse messages (Bubble Tea) or expose
// per-frame snapshots of the mouse button and active touch points (raylib).
// [MouseTracker] and [TouchTracker] reduce both to the unified kinds
// [stick.Start], [stick.Move], [stick.End] and [stick.EndOutside]:
//
//   - a press or touch only starts a drag inside the [HitArea]
//   - a lift inside the hit area is End, anywhere else EndOutside
//   - touches that began outside the hit area are ignored until lifted
//
// [Dispatcher] delivers each event to its listeners in order and stops as
// soon as one of them stops propagation.
package host
