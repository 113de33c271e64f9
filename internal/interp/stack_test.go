package interp

import (
	"reflect"
	"testing"

	"github.com/cwbudde/go-joy/internal/ast"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	s.Push(ast.Int(2))
	s.Push(ast.Int(3))

	if s.Depth() != 3 {
		t.Fatalf("Depth() = %d, want 3", s.Depth())
	}

	v, ok := s.Pop()
	if !ok || v.Int != 3 {
		t.Fatalf("Pop() = %v, %v, want 3, true", v, ok)
	}
	if s.Depth() != 2 {
		t.Fatalf("Depth() after pop = %d, want 2", s.Depth())
	}
}

func TestStackPopEmpty(t *testing.T) {
	s := NewStack()
	_, ok := s.Pop()
	if ok {
		t.Fatal("Pop() on empty stack returned ok=true")
	}
}

func TestStackPeek(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	s.Push(ast.Int(2))
	s.Push(ast.Int(3))

	top, ok := s.Peek(0)
	if !ok || top.Int != 3 {
		t.Fatalf("Peek(0) = %v, %v, want 3, true", top, ok)
	}
	deep, ok := s.Peek(2)
	if !ok || deep.Int != 1 {
		t.Fatalf("Peek(2) = %v, %v, want 1, true", deep, ok)
	}
	_, ok = s.Peek(3)
	if ok {
		t.Fatal("Peek(3) beyond stack depth returned ok=true")
	}
}

func TestStackPopNTopFirst(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	s.Push(ast.Int(2))
	s.Push(ast.Int(3))

	vs, ok := s.PopN(2)
	if !ok {
		t.Fatal("PopN(2) returned ok=false")
	}
	if vs[0].Int != 3 || vs[1].Int != 2 {
		t.Fatalf("PopN(2) = %v, want [3 2]", vs)
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() after PopN = %d, want 1", s.Depth())
	}
}

func TestStackPopNUnderflow(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	_, ok := s.PopN(5)
	if ok {
		t.Fatal("PopN(5) on a 1-deep stack returned ok=true")
	}
	if s.Depth() != 1 {
		t.Fatal("PopN should not mutate the stack on failure")
	}
}

func TestStackSnapshotRestore(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	s.Push(ast.Int(2))

	snap := s.Snapshot()
	s.Push(ast.Int(3))
	s.Pop()
	s.Pop()

	s.Restore(snap)
	if s.Depth() != 2 {
		t.Fatalf("Depth() after Restore = %d, want 2", s.Depth())
	}

	// Mutating the live stack must not alter a prior snapshot.
	s.Push(ast.Int(99))
	if len(snap) != 2 {
		t.Fatalf("snapshot mutated after Restore: %v", snap)
	}
}

func TestStackItemsBottomFirst(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	s.Push(ast.Int(2))
	s.Push(ast.Int(3))

	got := s.Items()
	want := []ast.Value{ast.Int(1), ast.Int(2), ast.Int(3)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
}

func TestStackPushAllPreservesOrder(t *testing.T) {
	s := NewStack()
	s.PushAll([]ast.Value{ast.Int(1), ast.Int(2), ast.Int(3)})
	top, _ := s.Peek(0)
	if top.Int != 3 {
		t.Fatalf("top after PushAll = %v, want 3 (last element on top)", top)
	}
}

func TestStackClear(t *testing.T) {
	s := NewStack()
	s.Push(ast.Int(1))
	s.Clear()
	if !s.IsEmpty() {
		t.Fatal("Clear() did not empty the stack")
	}
}
