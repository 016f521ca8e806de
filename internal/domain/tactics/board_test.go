package tactics

import "testing"

func TestLayout_AllTemplatesHaveElevenPlayers(t *testing.T) {
	for _, name := range FormationNames() {
		points, ok := Layout(name)
		if !ok {
			t.Fatalf("template %q not found", name)
		}
		if len(points) != 11 {
			t.Fatalf("template %q has %d players", name, len(points))
		}
		for _, p := range points {
			if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
				t.Fatalf("template %q has out of range point %+v", name, p)
			}
		}
	}
	if len(FormationNames()) != 7 {
		t.Fatalf("expected 7 templates, got %d", len(FormationNames()))
	}
}

func TestLayout_UnknownFallsBackTo433(t *testing.T) {
	got, ok := Layout("2-3-5")
	if ok {
		t.Fatalf("expected unknown formation to report false")
	}
	want, _ := Layout(Formation433)
	if len(got) != len(want) || got[10] != want[10] {
		t.Fatalf("expected 4-3-3 fallback layout")
	}
}

func TestBuildBoard(t *testing.T) {
	board := BuildBoard(BoardOptions{
		Width:         1000,
		Height:        500,
		Formation:     Formation4231,
		ShowWeakLeft:  true,
		ShowHalfSpace: true,
	})

	if len(board.Tokens) != 22 {
		t.Fatalf("expected 22 tokens, got %d", len(board.Tokens))
	}
	if len(board.Zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(board.Zones))
	}

	gk := board.Tokens[0]
	if gk.Label != "GK" || gk.Side != SideOwn || gk.X != 70 || gk.Y != 250 {
		t.Fatalf("unexpected own goalkeeper token: %+v", gk)
	}
	if board.Tokens[10].Label != "11" {
		t.Fatalf("unexpected last own label: %q", board.Tokens[10].Label)
	}

	oppGK := board.Tokens[11]
	if oppGK.Side != SideOpponent || oppGK.Label != "GK" || !oppGK.Locked || oppGK.X != 930 || oppGK.Y != 250 {
		t.Fatalf("unexpected opponent goalkeeper token: %+v", oppGK)
	}
}

func TestBuildBoard_Defaults(t *testing.T) {
	board := BuildBoard(BoardOptions{Formation: "unknown"})
	if board.Width != DefaultBoardWidth || board.Height != DefaultBoardHeight {
		t.Fatalf("unexpected default size %vx%v", board.Width, board.Height)
	}
	if board.Formation != Formation433 {
		t.Fatalf("expected fallback formation, got %q", board.Formation)
	}
	if len(board.Zones) != 0 {
		t.Fatalf("expected no zones by default")
	}
}
