package mailbox_chess_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	mg "mailbox-chess/mailboxmg"
)

func TestLegalMoveCounts(t *testing.T) {
	cases := []struct {
		fen  string
		want int
	}{
		{mg.FENStartPos, 20},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 48},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 14},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 6},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 44},
		{"k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 5},
		{"1n5k/P7/8/8/8/8/8/7K w - - 0 1", 11},
	}
	for _, tc := range cases {
		t.Run(tc.fen, func(t *testing.T) {
			board := mg.MustParseFEN(tc.fen)
			if got := len(board.GenerateMoves()); got != tc.want {
				for _, m := range board.GenerateMoves() {
					t.Logf("  %s", m.Describe())
				}
				t.Errorf("legal moves: got %d want %d", got, tc.want)
			}
		})
	}
}

func TestStartingMoves(t *testing.T) {
	board := mg.MustParseFEN(mg.FENStartPos)
	pseudo := board.GeneratePseudoMoves()
	legal := board.GenerateMoves()
	if len(pseudo) != 20 || len(legal) != 20 {
		t.Fatalf("pseudo=%d legal=%d, want 20/20", len(pseudo), len(legal))
	}
	var pawns, knights, doubles int
	for _, m := range legal {
		switch m.MovedPiece() {
		case mg.WhitePawn:
			pawns++
		case mg.WhiteKnight:
			knights++
		default:
			t.Errorf("unexpected mover in %s", m.Describe())
		}
		if m.Flag() == mg.FlagDoublePawn {
			doubles++
		}
	}
	if pawns != 16 || knights != 4 || doubles != 8 {
		t.Errorf("pawns=%d knights=%d doubles=%d, want 16/4/8", pawns, knights, doubles)
	}
}

func TestCastlingGeneration(t *testing.T) {
	board := mg.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	var short, long bool
	for _, m := range board.GenerateMoves() {
		switch m.Flag() {
		case mg.FlagShortCastle:
			short = true
			if m.From() != mg.E1 || m.To() != mg.G1 {
				t.Errorf("short castle is %s, want e1g1", m)
			}
		case mg.FlagLongCastle:
			long = true
			if m.From() != mg.E1 || m.To() != mg.C1 {
				t.Errorf("long castle is %s, want e1c1", m)
			}
		}
	}
	if !short || !long {
		t.Errorf("castles generated: short=%v long=%v, want both", short, long)
	}

	// A rook guarding the transit square forbids the castle through it.
	board = mg.MustParseFEN("r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1")
	for _, m := range board.GenerateMoves() {
		if m.Flag() == mg.FlagShortCastle {
			t.Error("short castle generated through an attacked f1")
		}
	}

	// Blocked queenside b-file forbids the long castle even though the king
	// does not traverse b1.
	board = mg.MustParseFEN("r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1")
	for _, m := range board.GenerateMoves() {
		if m.Flag() == mg.FlagLongCastle {
			t.Error("long castle generated across an occupied b1")
		}
	}

	// Castling out of check is excluded by the origin-square condition.
	board = mg.MustParseFEN("r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1")
	for _, m := range board.GeneratePseudoMoves() {
		if m.Castled() {
			t.Errorf("castle %s generated while in check", m)
		}
	}
}

func TestEnPassantGeneration(t *testing.T) {
	board := mg.MustParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	var found bool
	for _, m := range board.GenerateMoves() {
		if m.Flag() == mg.FlagEnPassant {
			found = true
			if m.String() != "e5d6" {
				t.Errorf("en passant is %s, want e5d6", m)
			}
			if m.CapturedPiece() != mg.BlackPawn {
				t.Errorf("en passant captures %d, want black pawn", m.CapturedPiece())
			}
		}
	}
	if !found {
		t.Error("en passant capture not generated")
	}
}

func TestPromotionGeneration(t *testing.T) {
	board := mg.MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	promos := map[mg.Piece]int{}
	for _, m := range board.GenerateMoves() {
		if m.Promoted() {
			promos[m.PromotionPiece()]++
		}
	}
	for _, p := range []mg.Piece{mg.WhiteQueen, mg.WhiteRook, mg.WhiteBishop, mg.WhiteKnight} {
		// One quiet promotion on a8 and one capturing promotion on b8 each.
		if promos[p] != 2 {
			t.Errorf("promotions to piece %d: got %d want 2", p, promos[p])
		}
	}
	if len(promos) != 4 {
		t.Errorf("promotion pieces: got %d kinds, want 4", len(promos))
	}
}

func TestSlidersStopAtBlockers(t *testing.T) {
	board := mg.MustParseFEN("4k3/8/8/8/1R2p3/8/8/4K3 w - - 0 1")
	var rookMoves []string
	for _, m := range board.GenerateMoves() {
		if m.MovedPiece() == mg.WhiteRook && m.To().Rank() == mg.Rank4 {
			rookMoves = append(rookMoves, m.String())
		}
	}
	want := []string{"b4a4", "b4c4", "b4d4", "b4e4"}
	if diff := cmp.Diff(want, rookMoves); diff != "" {
		t.Errorf("rank-4 rook moves (-want +got):\n%s", diff)
	}
	// b4e4 must be a capture and the ray must stop there.
	m, err := board.ParseMove("b4e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Flag() != mg.FlagCapture || m.CapturedPiece() != mg.BlackPawn {
		t.Errorf("b4e4 flag=%v captured=%d, want pawn capture", m.Flag(), m.CapturedPiece())
	}
}

func TestKingNeverCapturable(t *testing.T) {
	// The black king stands on a rook ray; no generated move may target it.
	board := mg.MustParseFEN("4k3/8/8/8/4R3/8/8/4K3 b - - 0 1")
	for _, m := range board.GeneratePseudoMoves() {
		if m.CapturedPiece().IsKing() {
			t.Errorf("move %s captures a king", m.Describe())
		}
	}
	// White's rook on the same ray: a white-to-move board with the black king
	// attacked is rejected by ParseFEN, so generate White's moves directly.
	for _, m := range board.GeneratePseudoMovesFor(mg.White, nil) {
		if m.To() == mg.E8 {
			t.Errorf("move %s targets the king square", m.Describe())
		}
	}
}

func TestHardDrawCutoff(t *testing.T) {
	board := mg.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 76 60")
	if got := board.GeneratePseudoMoves(); len(got) != 0 {
		t.Errorf("past the fifty-move cutoff: got %d moves, want 0", len(got))
	}
	if !board.IsHardDraw() {
		t.Error("IsHardDraw should report the cutoff")
	}

	board = mg.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 75 60")
	if got := board.GeneratePseudoMoves(); len(got) == 0 {
		t.Error("at exactly 75 the generator should still produce moves")
	}

	board = mg.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 501")
	if got := board.GeneratePseudoMoves(); len(got) != 0 {
		t.Errorf("past the half-move cutoff: got %d moves, want 0", len(got))
	}
}

func TestPseudoMoveCacheIsolation(t *testing.T) {
	board := mg.MustParseFEN(mg.FENStartPos)
	first := board.GeneratePseudoMoves()
	first[0] = 0
	second := board.GeneratePseudoMoves()
	if second[0] == 0 {
		t.Error("mutating a returned move list corrupted the cache")
	}
	if len(second) != 20 {
		t.Errorf("cached generation returned %d moves, want 20", len(second))
	}
}

func TestMaxPositionMoves(t *testing.T) {
	// A queen-heavy middle position stays comfortably under the cap.
	board := mg.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if got := len(board.GeneratePseudoMoves()); got > mg.MaxPositionMoves {
		t.Errorf("pseudo moves %d exceed MaxPositionMoves", got)
	}
}
