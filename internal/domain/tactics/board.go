package tactics

import (
	"sort"
	"strconv"
)

// Point is a normalized pitch position, 0..1 on both axes with the own goal at x=0.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Formation templates: goalkeeper first, then lines from defence to attack.
var templates = map[string][]Point{
	Formation433: {
		{0.07, 0.50},
		{0.20, 0.15}, {0.20, 0.40}, {0.20, 0.60}, {0.20, 0.85},
		{0.40, 0.25}, {0.40, 0.50}, {0.40, 0.75},
		{0.65, 0.20}, {0.75, 0.50}, {0.65, 0.80},
	},
	Formation4231: {
		{0.07, 0.50},
		{0.20, 0.15}, {0.20, 0.40}, {0.20, 0.60}, {0.20, 0.85},
		{0.38, 0.40}, {0.38, 0.60},
		{0.55, 0.25}, {0.50, 0.50}, {0.55, 0.75},
		{0.78, 0.50},
	},
	Formation343: {
		{0.07, 0.50},
		{0.20, 0.25}, {0.20, 0.50}, {0.20, 0.75},
		{0.40, 0.20}, {0.40, 0.40}, {0.40, 0.60}, {0.40, 0.80},
		{0.65, 0.20}, {0.75, 0.50}, {0.65, 0.80},
	},
	Formation442: {
		{0.07, 0.50},
		{0.20, 0.15}, {0.20, 0.40}, {0.20, 0.60}, {0.20, 0.85},
		{0.40, 0.25}, {0.40, 0.45}, {0.40, 0.55}, {0.40, 0.75},
		{0.70, 0.40}, {0.70, 0.60},
	},
	Formation532: {
		{0.07, 0.50},
		{0.17, 0.12}, {0.17, 0.30}, {0.17, 0.50}, {0.17, 0.70}, {0.17, 0.88},
		{0.38, 0.30}, {0.38, 0.50}, {0.38, 0.70},
		{0.68, 0.40}, {0.68, 0.60},
	},
	Formation4222: {
		{0.07, 0.50},
		{0.20, 0.15}, {0.20, 0.40}, {0.20, 0.60}, {0.20, 0.85},
		{0.38, 0.35}, {0.38, 0.65},
		{0.55, 0.35}, {0.55, 0.65},
		{0.75, 0.45}, {0.78, 0.55},
	},
	Formation442Diamond: {
		{0.07, 0.50},
		{0.20, 0.15}, {0.20, 0.40}, {0.20, 0.60}, {0.20, 0.85},
		{0.38, 0.25}, {0.38, 0.50}, {0.38, 0.75}, {0.48, 0.50},
		{0.72, 0.40}, {0.72, 0.60},
	},
}

const (
	DefaultBoardWidth  = 900
	DefaultBoardHeight = 600
	opponentFormation  = Formation442
)

// Layout returns the template for formation. Unknown names fall back to 4-3-3 and
// report false.
func Layout(formation string) ([]Point, bool) {
	points, ok := templates[formation]
	if !ok {
		points = templates[Formation433]
	}
	return append([]Point(nil), points...), ok
}

// FormationNames lists the formations with a board template.
func FormationNames() []string {
	out := make([]string, 0, len(templates))
	for name := range templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type Side string

const (
	SideOwn      Side = "own"
	SideOpponent Side = "opponent"
)

type Token struct {
	Side   Side    `json:"side"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Locked bool    `json:"locked"`
}

type Zone struct {
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type BoardOptions struct {
	Width         float64
	Height        float64
	Formation     string
	ShowWeakLeft  bool
	ShowWeakRight bool
	ShowHalfSpace bool
}

type Board struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Formation string  `json:"formation"`
	Zones     []Zone  `json:"zones"`
	Tokens    []Token `json:"tokens"`
}

// BuildBoard lays out the own formation, a mirrored reference 4-4-2 for the
// opponent and the requested weak-zone highlights in canvas pixels.
func BuildBoard(opts BoardOptions) Board {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultBoardWidth
	}
	if height <= 0 {
		height = DefaultBoardHeight
	}

	own, ok := Layout(opts.Formation)
	formation := opts.Formation
	if !ok {
		formation = Formation433
	}

	board := Board{
		Width:     width,
		Height:    height,
		Formation: formation,
		Zones:     make([]Zone, 0, 3),
		Tokens:    make([]Token, 0, 22),
	}

	if opts.ShowWeakLeft {
		board.Zones = append(board.Zones, Zone{Label: "Weak zone: left flank", X: width * 0.55, Y: height * 0.05, Width: width * 0.40, Height: height * 0.20})
	}
	if opts.ShowWeakRight {
		board.Zones = append(board.Zones, Zone{Label: "Weak zone: right flank", X: width * 0.55, Y: height * 0.75, Width: width * 0.40, Height: height * 0.20})
	}
	if opts.ShowHalfSpace {
		board.Zones = append(board.Zones, Zone{Label: "Between the lines", X: width * 0.45, Y: height * 0.30, Width: width * 0.20, Height: height * 0.40})
	}

	for i, p := range own {
		board.Tokens = append(board.Tokens, Token{
			Side:  SideOwn,
			Label: tokenLabel(i),
			X:     p.X * width,
			Y:     p.Y * height,
		})
	}

	opponent, _ := Layout(opponentFormation)
	for i, p := range opponent {
		board.Tokens = append(board.Tokens, Token{
			Side:   SideOpponent,
			Label:  tokenLabel(i),
			X:      (1 - p.X) * width,
			Y:      (1 - p.Y) * height,
			Locked: true,
		})
	}

	return board
}

func tokenLabel(index int) string {
	if index == 0 {
		return "GK"
	}
	return strconv.Itoa(index + 1)
}
