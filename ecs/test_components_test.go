package ecs_test

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

// Custom primitive type for testing non-struct components
type Score int32

// World-global fixtures
type Gravity struct {
	G float64
}

type FrameCounter struct {
	Frames int
}
