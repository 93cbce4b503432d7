// Package movement holds the closed catalog of exercise names the notation
// accepts, with their display names and reference links.
package movement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Movement identifies one exercise in the catalog.
type Movement uint8

const (
	AirSquat Movement = iota + 1
	FrontSquat
	BackSquat
	OverheadSquat
	PistolSquat
	GobletSquat
	Deadlift
	SumoDeadlift
	RomanianDeadlift
	ShoulderPress
	PushPress
	PushJerk
	SplitJerk
	BenchPress
	Clean
	PowerClean
	HangClean
	HangPowerClean
	CleanAndJerk
	PowerCleanAndJerk
	CleanPull
	CleanDeadlift
	Snatch
	PowerSnatch
	HangSnatch
	HangPowerSnatch
	SnatchBalance
	SnatchPull
	SnatchDeadlift
	MuscleSnatch
	PushUp
	PullUp
	ChinUp
	ChestToBar
	MuscleUp
	BarMuscleUp
	RingMuscleUp
	ToesToBar
	KneesToElbows
	LSit
	SitUp
	VUp
	GHD
	StrictPullUp
	StrictHandstandPushUp
	HandstandPushUp
	WallWalk
	HandstandWalk
	HandstandHold
	Thruster
	FrontRackLunge
	BackRackLunge
	OverheadWalkingLunge
	Burpee
	BoxJump
	BoxJumpOver
	BurpeeBoxJump
	BurpeeBoxJumpOver
	BurpeeOverTheBar
	BurpeeToTarget
	BurpeePullUp
	DoubleUnder
	WallBall
	KettlebellSwing
	TurkishGetUp
	FarmersCarry
	SledPush
	SledPull
	SledDrag
	RopeClimb
	LeglessRopeClimb
	SandbagClean
	DBall
	DBallHold
	DBallCarry
	Row
	Run
	Bike
	EchoBike
	Ski
	DumbbellSnatch
	DumbbellClean
	DumbbellPowerClean
	DumbbellHangClean
	DumbbellCleanAndJerk
	DumbbellHangCleanAndJerk
	DevilPress

	// Rest is the placeholder the lexer emits after a rest period so the
	// period still gets its own line when rendered.
	Rest
)

// alias maps one accepted spelling to its movement. Several spellings may
// point at the same movement.
type alias struct {
	name     string
	movement Movement
}

// aliases is the canonical lookup table. Its order is also the order used to
// break ties when suggesting the closest spelling.
var aliases = []alias{
	// Squats
	{"air squat", AirSquat},
	{"front squat", FrontSquat},
	{"back squat", BackSquat},
	{"ohs", OverheadSquat},
	{"overhead squat", OverheadSquat},
	{"pistol squat", PistolSquat},
	{"goblet squat", GobletSquat},
	// Deadlifts
	{"deadlift", Deadlift},
	{"sumo deadlift", SumoDeadlift},
	{"romanian deadlift", RomanianDeadlift},
	// Presses
	{"shoulder press", ShoulderPress},
	{"push press", PushPress},
	{"push jerk", PushJerk},
	{"split jerk", SplitJerk},
	{"bench press", BenchPress},
	// Olympic lifts
	{"clean", Clean},
	{"power clean", PowerClean},
	{"hang clean", HangClean},
	{"hang power clean", HangPowerClean},
	{"clean and jerk", CleanAndJerk},
	{"power clean and jerk", PowerCleanAndJerk},
	{"clean pull", CleanPull},
	{"clean deadlift", CleanDeadlift},
	{"clean-deadlift", CleanDeadlift},
	{"snatch", Snatch},
	{"power snatch", PowerSnatch},
	{"hang snatch", HangSnatch},
	{"hang power snatch", HangPowerSnatch},
	{"snatch balance", SnatchBalance},
	{"snatch pull", SnatchPull},
	{"snatch deadlift", SnatchDeadlift},
	{"muscle snatch", MuscleSnatch},
	// Gymnastics
	{"push up", PushUp},
	{"pull up", PullUp},
	{"chin up", ChinUp},
	{"c2b", ChestToBar},
	{"chest to bar", ChestToBar},
	{"muscle up", MuscleUp},
	{"bar muscle up", BarMuscleUp},
	{"bar mu", BarMuscleUp},
	{"ring muscle up", RingMuscleUp},
	{"ring mu", RingMuscleUp},
	{"t2b", ToesToBar},
	{"toes to bar", ToesToBar},
	{"knees to elbows", KneesToElbows},
	{"l sit", LSit},
	{"l-sit", LSit},
	{"strict pull up", StrictPullUp},
	{"shspu", StrictHandstandPushUp},
	{"strict handstand push up", StrictHandstandPushUp},
	{"hspu", HandstandPushUp},
	{"handstand push up", HandstandPushUp},
	{"wall walk", WallWalk},
	{"handstand walk", HandstandWalk},
	{"hsw", HandstandWalk},
	{"hs walk", HandstandWalk},
	{"handstand hold", HandstandHold},
	{"sit up", SitUp},
	{"v up", VUp},
	{"ghd", GHD},
	// Barbell
	{"thruster", Thruster},
	{"front rack lunge", FrontRackLunge},
	{"back rack lunge", BackRackLunge},
	{"overhead walking lunge", OverheadWalkingLunge},
	// Conditioning
	{"burpee", Burpee},
	{"box jump", BoxJump},
	{"box jump over", BoxJumpOver},
	{"burpee box jump", BurpeeBoxJump},
	{"burpee box jump over", BurpeeBoxJumpOver},
	{"burpee over the bar", BurpeeOverTheBar},
	{"burpee to target", BurpeeToTarget},
	{"burpee pull up", BurpeePullUp},
	{"du", DoubleUnder},
	{"double under", DoubleUnder},
	{"wall ball", WallBall},
	{"kettlebell swing", KettlebellSwing},
	{"kb swing", KettlebellSwing},
	{"turkish get up", TurkishGetUp},
	{"db farmer carry", FarmersCarry},
	{"farmer carry", FarmersCarry},
	{"sled push", SledPush},
	{"sled pull", SledPull},
	{"sled drag", SledDrag},
	{"rope climb", RopeClimb},
	{"rc", RopeClimb},
	{"legless rope climb", LeglessRopeClimb},
	{"legless rc", LeglessRopeClimb},
	{"sandbag clean", SandbagClean},
	{"dball", DBall},
	{"dball hold", DBallHold},
	{"dball carry", DBallCarry},
	// Machines
	{"row", Row},
	{"run", Run},
	{"bike", Bike},
	{"echo bike", EchoBike},
	{"ski", Ski},
	// Dumbbell
	{"db snatch", DumbbellSnatch},
	{"dumbbell snatch", DumbbellSnatch},
	{"db clean", DumbbellClean},
	{"dumbbell clean", DumbbellClean},
	{"db power clean", DumbbellPowerClean},
	{"dumbbell power clean", DumbbellPowerClean},
	{"db hang clean", DumbbellHangClean},
	{"dumbbell hang clean", DumbbellHangClean},
	{"db clean and jerk", DumbbellCleanAndJerk},
	{"dumbbell clean and jerk", DumbbellCleanAndJerk},
	{"db hang clean and jerk", DumbbellHangCleanAndJerk},
	{"dumbbell hang clean and jerk", DumbbellHangCleanAndJerk},
	{"devil press", DevilPress},
	// Placeholder
	{"rest", Rest},
}

type entry struct {
	display string
	url     string
}

// catalog holds one display name per movement.
var catalog = map[Movement]entry{
	AirSquat:                 {"Air Squat", "https://www.crossfit.com/essentials/the-air-squat"},
	FrontSquat:               {"Front Squat", "https://www.crossfit.com/essentials/the-front-squat"},
	BackSquat:                {"Back Squat", "https://www.crossfit.com/essentials/the-back-squat"},
	OverheadSquat:            {"Overhead Squat", "https://www.crossfit.com/essentials/the-overhead-squat"},
	PistolSquat:              {"Pistol Squat", "https://www.crossfit.com/essentials/the-single-leg-squat"},
	GobletSquat:              {"Goblet Squat", ""},
	Deadlift:                 {"Deadlift", "https://www.crossfit.com/essentials/the-deadlift"},
	SumoDeadlift:             {"Sumo Deadlift", "https://www.crossfit.com/essentials/the-sumo-deadlift"},
	RomanianDeadlift:         {"Romanian Deadlift", ""},
	ShoulderPress:            {"Shoulder Press", "https://www.crossfit.com/essentials/the-shoulder-press"},
	PushPress:                {"Push Press", "https://www.crossfit.com/essentials/the-push-press"},
	PushJerk:                 {"Push Jerk", "https://www.crossfit.com/essentials/the-push-jerk"},
	SplitJerk:                {"Split Jerk", "https://www.crossfit.com/essentials/the-split-jerk"},
	BenchPress:               {"Bench Press", "https://www.crossfit.com/essentials/the-bench-press"},
	Clean:                    {"Clean", "https://www.crossfit.com/essentials/the-clean-2"},
	PowerClean:               {"Power Clean", "https://www.crossfit.com/essentials/the-power-clean"},
	HangClean:                {"Hang Clean", "https://www.crossfit.com/essentials/the-hang-squat-clean"},
	HangPowerClean:           {"Hang Power Clean", "https://www.crossfit.com/essentials/the-hang-power-clean"},
	CleanAndJerk:             {"Clean And Jerk", "https://www.crossfit.com/essentials/the-clean-and-jerk"},
	PowerCleanAndJerk:        {"Power Clean And Jerk", "https://www.crossfit.com/essentials/the-squat-clean-and-push-jerk"},
	CleanPull:                {"Clean Pull", ""},
	CleanDeadlift:            {"Clean Deadlift", ""},
	Snatch:                   {"Snatch", "https://www.crossfit.com/essentials/the-snatch"},
	PowerSnatch:              {"Power Snatch", "https://www.crossfit.com/essentials/the-power-snatch"},
	HangSnatch:               {"Hang Snatch", "https://www.crossfit.com/essentials/the-hang-snatch"},
	HangPowerSnatch:          {"Hang Power Snatch", "https://www.crossfit.com/essentials/the-hang-power-snatch"},
	SnatchBalance:            {"Snatch Balance", "https://www.crossfit.com/essentials/the-snatch-balance"},
	SnatchPull:               {"Snatch Pull", ""},
	SnatchDeadlift:           {"Snatch Deadlift", ""},
	MuscleSnatch:             {"Muscle Snatch", "https://www.crossfit.com/essentials/the-muscle-snatch"},
	PushUp:                   {"Push Up", ""},
	PullUp:                   {"Pull Up", ""},
	ChinUp:                   {"Chin Up", ""},
	ChestToBar:               {"Chest To Bar", ""},
	MuscleUp:                 {"Muscle Up", ""},
	BarMuscleUp:              {"Bar Muscle Up", ""},
	RingMuscleUp:             {"Ring Muscle Up", ""},
	ToesToBar:                {"Toes To Bar", ""},
	KneesToElbows:            {"Knees To Elbows", ""},
	LSit:                     {"L Sit", ""},
	SitUp:                    {"Sit Up", ""},
	VUp:                      {"V Up", ""},
	GHD:                      {"GHD", ""},
	StrictPullUp:             {"Strict Pull Up", ""},
	StrictHandstandPushUp:    {"Strict Handstand Push Up", ""},
	HandstandPushUp:          {"Handstand Push Up", ""},
	WallWalk:                 {"Wall Walk", ""},
	HandstandWalk:            {"Handstand Walk", ""},
	HandstandHold:            {"Handstand Hold", ""},
	Thruster:                 {"Thruster", ""},
	FrontRackLunge:           {"Front Rack Lunge", ""},
	BackRackLunge:            {"Back Rack Lunge", ""},
	OverheadWalkingLunge:     {"Overhead Walking Lunge", ""},
	Burpee:                   {"Burpee", ""},
	BoxJump:                  {"Box Jump", ""},
	BoxJumpOver:              {"Box Jump Over", ""},
	BurpeeBoxJump:            {"Burpee Box Jump", ""},
	BurpeeBoxJumpOver:        {"Burpee Box Jump Over", ""},
	BurpeeOverTheBar:         {"Burpee Over The Bar", ""},
	BurpeeToTarget:           {"Burpee To Target", ""},
	BurpeePullUp:             {"Burpee Pull Up", ""},
	DoubleUnder:              {"Double Under", ""},
	WallBall:                 {"Wall Ball", ""},
	KettlebellSwing:          {"Kettlebell Swing", ""},
	TurkishGetUp:             {"Turkish Get Up", ""},
	FarmersCarry:             {"Farmer's Carry", ""},
	SledPush:                 {"Sled Push", ""},
	SledPull:                 {"Sled Pull", ""},
	SledDrag:                 {"Sled Drag", ""},
	RopeClimb:                {"Rope Climb", ""},
	LeglessRopeClimb:         {"Legless Rope Climb", ""},
	SandbagClean:             {"Sandbag Clean", ""},
	DBall:                    {"DBall", ""},
	DBallHold:                {"DBall Hold", ""},
	DBallCarry:               {"DBall Carry", ""},
	Row:                      {"Row", ""},
	Run:                      {"Run", ""},
	Bike:                     {"Bike", ""},
	EchoBike:                 {"Echo Bike", ""},
	Ski:                      {"Ski", ""},
	DumbbellSnatch:           {"Dumbbell Snatch", ""},
	DumbbellClean:            {"Dumbbell Clean", ""},
	DumbbellPowerClean:       {"Dumbbell Power Clean", ""},
	DumbbellHangClean:        {"Dumbbell Hang Clean", ""},
	DumbbellCleanAndJerk:     {"Dumbbell Clean and Jerk", ""},
	DumbbellHangCleanAndJerk: {"Dumbbell Hang Clean and Jerk", ""},
	DevilPress:               {"Devil Press", ""},
	Rest:                     {"Rest", ""},
}

var byAlias = func() map[string]Movement {
	m := make(map[string]Movement, len(aliases))
	for _, a := range aliases {
		m[a.name] = a.movement
	}
	return m
}()

// UnknownError is returned when a name matches no catalog spelling.
type UnknownError struct {
	Name       string
	Suggestion string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("invalid movement: `%s`, did you mean: `%s`?", e.Name, e.Suggestion)
}

// Resolve looks a name up in the catalog. Unknown names fail with an
// *UnknownError carrying the closest spelling; the suggestion is never
// applied on the caller's behalf.
func Resolve(name string) (Movement, error) {
	norm := normalize(name)
	if m, ok := byAlias[norm]; ok {
		return m, nil
	}
	return 0, &UnknownError{Name: name, Suggestion: Suggest(norm)}
}

// Suggest returns the catalog spelling with the smallest edit distance to
// name. Ties go to the spelling that appears first in the catalog.
func Suggest(name string) string {
	norm := normalize(name)
	best := ""
	bestDist := -1
	for _, a := range aliases {
		d := levenshtein.ComputeDistance(norm, a.name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = a.name, d
		}
	}
	return best
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// String returns the display name.
func (m Movement) String() string {
	if e, ok := catalog[m]; ok {
		return e.display
	}
	return fmt.Sprintf("Movement(%d)", uint8(m))
}

// URL returns the reference page for m, or "" when none is known.
func (m Movement) URL() string {
	return catalog[m].url
}

// Valid reports whether m is a catalog member.
func (m Movement) Valid() bool {
	_, ok := catalog[m]
	return ok
}

// All returns every movement in catalog order, excluding the Rest placeholder.
func All() []Movement {
	seen := make(map[Movement]bool, len(catalog))
	var out []Movement
	for _, a := range aliases {
		if a.movement == Rest || seen[a.movement] {
			continue
		}
		seen[a.movement] = true
		out = append(out, a.movement)
	}
	return out
}

// Aliases returns the accepted spellings in catalog order.
func Aliases() []string {
	out := make([]string, len(aliases))
	for i, a := range aliases {
		out[i] = a.name
	}
	return out
}

// Listing is one row of the paged movement listing.
type Listing struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// DefaultPageSize is the number of rows per page used by the CLI listing.
const DefaultPageSize = 20

// Page returns the 1-based page of movements sorted by display name, and the
// total number of pages. Out of range pages return no rows.
func Page(page, size int) ([]Listing, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	all := All()
	sort.Slice(all, func(i, j int) bool { return all[i].String() < all[j].String() })

	pages := (len(all) + size - 1) / size
	if page < 1 || page > pages {
		return nil, pages
	}
	start := (page - 1) * size
	end := min(start+size, len(all))

	rows := make([]Listing, 0, end-start)
	for _, m := range all[start:end] {
		rows = append(rows, Listing{Name: m.String(), URL: m.URL()})
	}
	return rows, pages
}
