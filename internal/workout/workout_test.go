package workout

import (
	"errors"
	"strings"
	"testing"

	"github.com/meltforce/wodlog/internal/movement"
	"github.com/meltforce/wodlog/internal/notation"
)

func mustCompile(t *testing.T, input, comments, name string) (string, *Workout) {
	t.Helper()
	out, w, err := Compile(input, comments, name)
	if err != nil {
		t.Fatalf("Compile(%q): unexpected error: %v", input, err)
	}
	return out, w
}

// TestRender verifies the full markdown for each layout.
func TestRender(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			"shared scheme",
			"ft 21-15-9 pull up, thruster @43/30kg",
			"---\n\n**For Time**\n\n21-15-9\n\n- Pull Up\n\n- Thruster At 43/30kg\n\n",
		},
		{
			"rounds walk",
			"4rd 21 box jump over, 15 bar muscle up",
			"---\n\n**4 rounds for time**\n\n- 21 Box Jump Over\n\n- 15 Bar Muscle Up\n\n",
		},
		{
			"walk with weight",
			"ft 15cal echo bike, 15 thruster @40kg",
			"---\n\n**For Time**\n\n- 15 calories Echo Bike\n\n- 15 Thruster At 40kg\n\n",
		},
		{
			"amrap walk",
			"amrap-20 5 pull up, 10 push up, 15 air squat",
			"---\n\n**AMRAP 20 minutes**\n\n- 5 Pull Up\n\n- 10 Push Up\n\n- 15 Air Squat\n\n",
		},
		{
			"weightlifting sets",
			"wl 4x2 snatch @85%",
			"---\n\n**Weightlifting**\n\n4x2 Snatch @ 85%\n\n",
		},
		{
			"weightlifting complex",
			"wl 3x(1+1+1) clean,front squat,split jerk @ 80kg",
			"---\n\n**Weightlifting**\n\n3x(1+1+1) Clean + Front Squat + Split Jerk @ 80kg\n\n",
		},
		{
			"weightlifting plus only",
			"wl 1+1 power clean, push jerk @ 70kg",
			"---\n\n**Weightlifting**\n\n1+1 Power Clean + Push Jerk @ 70kg\n\n",
		},
		{
			"weightlifting rep max",
			"wl 1rm back squat",
			"---\n\n**Weightlifting**\n\n1RM Back Squat\n\n",
		},
		{
			"emom default clauses",
			"emom-12 15cal row, 12 t2b, max db clean and jerk @22/15kg",
			"---\n\n**EMOM 12 minutes**\n\n- 15 calories Row\n\n- 12 Toes To Bar\n\n" +
				"- Max reps of Dumbbell Clean and Jerk At 22/15kg\n\n",
		},
		{
			"emom with clauses",
			"emom-12-3m-r1m 15cal row, 12 t2b, max db clean and jerk @22/15kg",
			"---\n\n**EMOM 12 minutes**\n\nwork every 3 minutes, rest 1 minute\n\n" +
				"- 15 calories Row\n\n- 12 Toes To Bar\n\n" +
				"- Max reps of Dumbbell Clean and Jerk At 22/15kg\n\n",
		},
		{
			"emom alternating",
			"emom-8-20s-alt 12 power clean @ 60/40kg, 20cal row",
			"---\n\n**EMOM 8 minutes**\n\nwork every 20 seconds, alternating\n\n" +
				"- 12 Power Clean At 60/40kg\n\n- 20 calories Row\n\n",
		},
		{
			"rest line",
			"5rd 10 burpee, 200m run, r1m",
			"---\n\n**5 rounds for time**\n\n- 10 Burpee\n\n- 200m Run\n\n- Rest 1 minute\n\n",
		},
		{
			"distance and time",
			"3rd 400m ski, 30sec handstand hold",
			"---\n\n**3 rounds for time**\n\n- 400m Ski\n\n- 30 sec Handstand Hold\n\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := mustCompile(t, tc.input, "", "")
			if got != tc.want {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestRenderNameAndComments verifies the italic name line and per-line
// italic comments block.
func TestRenderNameAndComments(t *testing.T) {
	got, _ := mustCompile(t, "ft 21-15-9 pull up, thruster @43/30kg", "felt heavy\n\n  unbroken pull ups ", "Fran")
	want := "---\n\n*Fran*\n\n**For Time**\n\n21-15-9\n\n- Pull Up\n\n- Thruster At 43/30kg\n\n" +
		"*felt heavy*\n*unbroken pull ups*\n\n"
	if got != want {
		t.Errorf("got: %q\nwant: %q", got, want)
	}
}

// TestRenderDeterministic verifies the same workout renders identically.
func TestRenderDeterministic(t *testing.T) {
	_, w := mustCompile(t, "emom-12-3m-r1m 15cal row, 12 t2b", "note", "name")
	first := Render(w)
	for range 5 {
		if again := Render(w); again != first {
			t.Fatalf("render changed: %q vs %q", first, again)
		}
	}
}

// TestAssembleBuckets verifies each token lands in exactly one bucket and the
// raw order is kept.
func TestAssembleBuckets(t *testing.T) {
	tokens, err := notation.Tokenize("wl 3x(1+1+1) clean,front squat,split jerk @ 80kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := Assemble(tokens, "", "")

	if w.Kind.Type != notation.KindWeightlifting {
		t.Errorf("kind = %v, want weightlifting", w.Kind.Type)
	}
	if len(w.Measures) != 4 {
		t.Errorf("measures = %d, want 4", len(w.Measures))
	}
	if len(w.SetMarkers) != 1 || len(w.SupersetMarkers) != 2 || len(w.WeightAtMarkers) != 1 {
		t.Errorf("markers x=%d plus=%d at=%d, want 1 2 1",
			len(w.SetMarkers), len(w.SupersetMarkers), len(w.WeightAtMarkers))
	}
	wantMoves := []movement.Movement{movement.Clean, movement.FrontSquat, movement.SplitJerk}
	if len(w.Movements) != len(wantMoves) {
		t.Fatalf("movements = %v, want %v", w.Movements, wantMoves)
	}
	for i, m := range wantMoves {
		if w.Movements[i] != m {
			t.Errorf("movements[%d] = %v, want %v", i, w.Movements[i], m)
		}
	}
	total := 1 + len(w.Movements) + len(w.Measures) + len(w.Weights) + len(w.RepMaxes) +
		len(w.SetMarkers) + len(w.SupersetMarkers) + len(w.WeightAtMarkers)
	if total != len(w.Tokens) {
		t.Errorf("bucketed %d tokens, have %d", total, len(w.Tokens))
	}
	if w.Tokens[w.SetMarkers[0]].Type != notation.TokenX {
		t.Errorf("set marker index %d does not point at an X token", w.SetMarkers[0])
	}
}

// TestDroppedWeights verifies extra weights in a lifting complex are counted.
func TestDroppedWeights(t *testing.T) {
	_, w := mustCompile(t, "wl 5x1 snatch @ 60kg, clean @ 80kg", "", "")
	if got := w.DroppedWeights(); got != 1 {
		t.Errorf("DroppedWeights() = %d, want 1", got)
	}
	_, w = mustCompile(t, "ft 10 thruster @ 40kg, 10 clean @ 60kg", "", "")
	if got := w.DroppedWeights(); got != 0 {
		t.Errorf("for time DroppedWeights() = %d, want 0", got)
	}
}

// TestMovementNames verifies the rest placeholder is left out.
func TestMovementNames(t *testing.T) {
	_, w := mustCompile(t, "5rd 10 burpee, r1m", "", "")
	got := strings.Join(w.MovementNames(), ",")
	if got != "Burpee" {
		t.Errorf("MovementNames() = %q, want %q", got, "Burpee")
	}
}

// TestCompileError verifies lexer failures pass through untouched.
func TestCompileError(t *testing.T) {
	_, w, err := Compile("ft 21 Pushup", "", "")
	if w != nil {
		t.Error("expected nil workout on error")
	}
	var unknown *movement.UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *movement.UnknownError", err)
	}
}

// TestWarnings verifies a lossy lifting render produces one warning.
func TestWarnings(t *testing.T) {
	_, w := mustCompile(t, "wl 5x1 snatch @ 60kg, clean @ 80kg", "", "")
	if got := w.Warnings(); len(got) != 1 || !strings.Contains(got[0], "1 more") {
		t.Errorf("Warnings() = %q", got)
	}
	_, w = mustCompile(t, "wl 4x2 snatch @85%", "", "")
	if got := w.Warnings(); got != nil {
		t.Errorf("Warnings() = %q, want none", got)
	}
}
