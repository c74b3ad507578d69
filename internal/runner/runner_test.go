package runner

import (
	"reflect"
	"testing"
)

func TestRunnerFIFO(t *testing.T) {
	r := New()
	var order []int

	for i := 1; i <= 3; i++ {
		r.Add(func() { order = append(order, i) })
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", r.Len())
	}

	r.Update()

	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("run order = %v, expected [1 2 3]", order)
	}
	if r.Len() != 0 {
		t.Errorf("queue should be empty after Update, Len() = %d", r.Len())
	}
}

func TestRunnerDrainsNestedActions(t *testing.T) {
	r := New()
	var order []string

	r.Add(func() {
		order = append(order, "outer")
		r.Add(func() { order = append(order, "nested") })
	})
	r.Add(func() { order = append(order, "second") })

	r.Update()

	expected := []string{"outer", "second", "nested"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("run order = %v, expected %v", order, expected)
	}
}

func TestRunnerIgnoresNil(t *testing.T) {
	r := New()
	r.Add(nil)
	if r.Len() != 0 {
		t.Errorf("nil action should not be queued, Len() = %d", r.Len())
	}
	r.Update() // Should not panic
}
