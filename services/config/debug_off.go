//go:build !debug_timers

package config

const DebugBuild = false
