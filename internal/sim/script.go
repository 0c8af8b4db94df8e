package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/swbase/swb/internal/weapon"
)

// AllPlayers addresses a step to every player.
const AllPlayers = "*"

var buttons = map[string]weapon.Button{
	"attack1": weapon.ButtonAttack1,
	"attack2": weapon.ButtonAttack2,
	"reload":  weapon.ButtonReload,
	"run":     weapon.ButtonRun,
	"duck":    weapon.ButtonDuck,
	"jump":    weapon.ButtonJump,
}

// Step is one scripted action.
//
//	<seconds> <player|*> +attack1     hold a button (attack1 attack2 reload run duck jump)
//	<seconds> <player|*> -attack1     release it
//	<seconds> <player|*> reload       tap it for one tick
//	<seconds> <player|*> +forward     walk along the view yaw, -forward stops
//	<seconds> <player|*> +aim         aim down sights, -aim stops
//	<seconds> <player|*> +tuck        lower the weapon against a wall, -tuck raises it
//	<seconds> <player|*> look <body>  track a body, "none" stops
//	<seconds> <player|*> equip <name> switch to a carried weapon
//	<seconds> <player|*> view first   first or third person
type Step struct {
	At     float64
	Player string
	Action string
	Arg    string
	Line   int
}

// Script is a timeline of steps ordered by time, file order on ties.
type Script struct {
	steps  []Step
	cursor int
}

// NewScript orders steps into a script.
func NewScript(steps []Step) *Script {
	out := slices.Clone(steps)
	slices.SortStableFunc(out, func(a, b Step) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return &Script{steps: out}
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	s, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScript reads one step per line. Blank lines and lines starting with # are
// skipped.
func ParseScript(r io.Reader) (*Script, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		step, err := parseStep(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		step.Line = line
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return NewScript(steps), nil
}

func parseStep(text string) (Step, error) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return Step{}, fmt.Errorf("want <seconds> <player> <action>, got %q", text)
	}
	at, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || at < 0 {
		return Step{}, fmt.Errorf("bad time %q", fields[0])
	}
	s := Step{At: at, Player: fields[1], Action: strings.ToLower(fields[2])}
	if len(fields) > 3 {
		s.Arg = fields[3]
	}
	return s, validate(s)
}

func validate(s Step) error {
	name := strings.TrimLeft(s.Action, "+-")
	switch name {
	case "forward", "aim", "tuck":
		if name == s.Action {
			return fmt.Errorf("%s needs + or -", name)
		}
		return nil
	case "look", "equip", "view":
		if s.Arg == "" {
			return fmt.Errorf("%s needs an argument", name)
		}
		if name == "view" && s.Arg != "first" && s.Arg != "third" {
			return fmt.Errorf("view must be first or third, got %q", s.Arg)
		}
		return nil
	}
	if _, ok := buttons[name]; !ok {
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// Due returns the steps whose time has come and advances past them.
func (s *Script) Due(now float64) []Step {
	start := s.cursor
	for s.cursor < len(s.steps) && s.steps[s.cursor].At <= now {
		s.cursor++
	}
	return s.steps[start:s.cursor]
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Steps returns a copy of the timeline.
func (s *Script) Steps() []Step {
	return slices.Clone(s.steps)
}

// DefaultScript keeps every player shooting at a target for the run: a held trigger,
// a reload, a short walk and a jump, a weapon switch when more than one weapon is
// carried, then aimed single shots.
func DefaultScript(players, targets, weaponNames []string, duration float64) *Script {
	var steps []Step
	add := func(frac float64, player, action, arg string) {
		steps = append(steps, Step{At: frac * duration, Player: player, Action: action, Arg: arg})
	}
	for i, p := range players {
		if len(targets) > 0 {
			add(0, p, "look", targets[i%len(targets)])
		}
		add(0.02, p, "+attack1", "")
		add(0.30, p, "-attack1", "")
		add(0.32, p, "reload", "")
		add(0.40, p, "+forward", "")
		add(0.42, p, "jump", "")
		add(0.48, p, "-forward", "")
		if len(weaponNames) > 1 {
			add(0.50, p, "equip", weaponNames[1])
		}
		add(0.55, p, "+aim", "")
		for f := 0.60; f < 0.91; f += 0.06 {
			add(f, p, "attack1", "")
		}
		add(0.92, p, "-aim", "")
		add(0.94, p, "reload", "")
	}
	return NewScript(steps)
}
