package flow

import "testing"

func TestHappyPath(t *testing.T) {
	f := New()
	if f.Screen() != Intro {
		t.Fatalf("starts at %s", f.Screen())
	}
	if f.Attempt() != 0 {
		t.Fatal("attempt counted on the intro")
	}
	if !f.Begin() || f.Screen() != Question {
		t.Fatal("Begin did not reach the question")
	}
	if f.Begin() {
		t.Fatal("Begin changed screens twice")
	}

	for i := 1; i <= 4; i++ {
		if got := f.Attempt(); got != i {
			t.Fatalf("Attempt() = %d, want %d", got, i)
		}
	}
	if !f.Accept() || f.Screen() != Celebrating {
		t.Fatal("Accept did not start the celebration")
	}
	if f.Attempt() != 4 {
		t.Fatal("attempt counted while celebrating")
	}
	if f.Accept() {
		t.Fatal("accepted twice")
	}
}

func TestRestartClearsAttempts(t *testing.T) {
	f := New()
	f.Begin()
	f.Attempt()
	f.Attempt()
	f.Accept()

	f.Restart()
	if f.Screen() != Intro || f.Attempts() != 0 {
		t.Fatalf("after restart: %s with %d attempts", f.Screen(), f.Attempts())
	}
}

func TestOnChange(t *testing.T) {
	f := New()
	type change struct {
		screen   Screen
		attempts int
	}
	var got []change
	f.OnChange(func(s Screen, a int) { got = append(got, change{s, a}) })

	f.Begin()
	f.Attempt()
	f.Accept()
	f.Restart()
	f.Restart() // already fresh

	want := []change{{Question, 0}, {Question, 1}, {Celebrating, 1}, {Intro, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %d notifications, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
