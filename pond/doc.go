// Package pond simulates a scene of ducks. Each Duck owns a Pose and exactly
// one Behavior, which is the only code that moves it: PlayerControlled
// integrates input, Wander follows a Spline. A Scene advances its clock and
// every duck once per tick; a Runner drives ticks and notifies observers.
package pond
