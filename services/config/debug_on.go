//go:build debug_timers

package config

// DebugBuild is set by the debug_timers build tag.
const DebugBuild = true
