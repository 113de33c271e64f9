package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-joy/internal/lexer"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "Frame with position",
			frame: StackFrame{
				FunctionName: "factorial",
				FileName:     "fact.joy",
				Position:     &lexer.Position{Line: 10, Column: 5},
			},
			expected: "factorial [line: 10, column: 5]",
		},
		{
			name: "Frame without position",
			frame: StackFrame{
				FunctionName: "factorial",
				FileName:     "fact.joy",
				Position:     nil,
			},
			expected: "factorial",
		},
		{
			name: "Frame with quotation label",
			frame: StackFrame{
				FunctionName: "<quotation>",
				FileName:     "",
				Position:     &lexer.Position{Line: 7, Column: 1},
			},
			expected: "<quotation> [line: 7, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: "main [line: 1, column: 1]",
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "fib", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "binrec", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: "binrec [line: 10, column: 3]\nfib [line: 15, column: 5]\nmain [line: 20, column: 1]",
		},
		{
			name: "Frames with and without position",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "fib", Position: nil},
			},
			expected: "fib\nmain [line: 20, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "First", Position: &lexer.Position{Line: 1, Column: 1}},
		{FunctionName: "Second", Position: &lexer.Position{Line: 2, Column: 1}},
		{FunctionName: "Third", Position: &lexer.Position{Line: 3, Column: 1}},
	}

	reversed := original.Reverse()

	if reversed[0].FunctionName != "Third" {
		t.Errorf("Expected first frame to be 'Third', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "Second" {
		t.Errorf("Expected second frame to be 'Second', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "First" {
		t.Errorf("Expected third frame to be 'First', got %q", reversed[2].FunctionName)
	}

	if original[0].FunctionName != "First" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "fib", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "binrec", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("binrec"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else {
				if top == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if top.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "fib", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "binrec", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("main"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else {
				if bottom == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if bottom.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: 0,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main"},
			},
			expected: 1,
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main"},
				{FunctionName: "fib"},
				{FunctionName: "binrec"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestNewStackFrame(t *testing.T) {
	pos := &lexer.Position{Line: 42, Column: 13}
	frame := NewStackFrame("factorial", "fact.joy", pos)

	if frame.FunctionName != "factorial" {
		t.Errorf("Expected FunctionName 'factorial', got %q", frame.FunctionName)
	}
	if frame.FileName != "fact.joy" {
		t.Errorf("Expected FileName 'fact.joy', got %q", frame.FileName)
	}
	if frame.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, frame.Position)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	// Simulate a user-word call chain: main -> process -> validate
	trace := StackTrace{
		{FunctionName: "main", FileName: "main.joy", Position: &lexer.Position{Line: 50, Column: 1}},
		{FunctionName: "process", FileName: "main.joy", Position: &lexer.Position{Line: 30, Column: 5}},
		{FunctionName: "validate", FileName: "main.joy", Position: &lexer.Position{Line: 10, Column: 3}},
	}

	expected := "validate [line: 10, column: 3]\nprocess [line: 30, column: 5]\nmain [line: 50, column: 1]"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	top := trace.Top()
	if top == nil || top.FunctionName != "validate" {
		t.Errorf("Expected top to be validate, got %v", top)
	}

	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "main" {
		t.Errorf("Expected bottom to be main, got %v", bottom)
	}
}

func TestStackTrace_FrameOrdering(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "caller", Position: &lexer.Position{Line: 8, Column: 4}},
		{FunctionName: "callee", Position: &lexer.Position{Line: 3, Column: 20}},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "callee [line: 3, column: 20]" {
		t.Errorf("First line doesn't match expected format: %q", lines[0])
	}
	if lines[1] != "caller [line: 8, column: 4]" {
		t.Errorf("Second line doesn't match expected format: %q", lines[1])
	}
}

// Helper function for tests
func stringPtr(s string) *string {
	return &s
}
