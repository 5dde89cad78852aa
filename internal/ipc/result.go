package ipc

// Shape tells the document how to interpret a response value.
type Shape string

// The closed set of result shapes. Adding a handler that returns a new
// structure means adding its domain name here.
const (
	ShapeVoid   Shape = "Void"
	ShapeString Shape = "String"
	ShapeI32    Shape = "i32"
	ShapeUser   Shape = "User"
	ShapeError  Shape = "Error"
)

var shapes = []Shape{ShapeVoid, ShapeString, ShapeI32, ShapeUser, ShapeError}

// Shapes returns every valid shape.
func Shapes() []Shape {
	return append([]Shape(nil), shapes...)
}

// Valid reports whether s belongs to the closed set.
func (s Shape) Valid() bool {
	for _, known := range shapes {
		if s == known {
			return true
		}
	}
	return false
}

// Result is a handler's successful outcome: the payload and its declared shape.
type Result struct {
	Shape Shape
	Value interface{}
}

// Void is the result of handlers that only have side effects.
func Void() Result {
	return Result{Shape: ShapeVoid}
}

// Text wraps a textual payload.
func Text(s string) Result {
	return Result{Shape: ShapeString, Value: s}
}

// I32 wraps a 32-bit integer payload.
func I32(n int32) Result {
	return Result{Shape: ShapeI32, Value: n}
}

// Record wraps a structured payload under its domain name.
func Record(shape Shape, value interface{}) Result {
	return Result{Shape: shape, Value: value}
}

func failed() Result {
	return Result{Shape: ShapeError}
}
