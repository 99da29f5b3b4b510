package mailbox_chess_test

import (
	"testing"

	mg "mailbox-chess/mailboxmg"
)

func TestMoveEncodingRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		move     mg.Move
		from, to mg.Square
		moved    mg.Piece
		captured mg.Piece
		promoted mg.Piece
		flag     mg.MoveFlag
	}{
		{
			name: "quiet",
			move: mg.QuietMove(sq("g1"), sq("f3"), mg.WhiteKnight),
			from: sq("g1"), to: sq("f3"), moved: mg.WhiteKnight, flag: mg.FlagQuiet,
		},
		{
			name: "double pawn",
			move: mg.DoubleMove(sq("e2"), sq("e4"), mg.WhitePawn),
			from: sq("e2"), to: sq("e4"), moved: mg.WhitePawn, flag: mg.FlagDoublePawn,
		},
		{
			name: "capture",
			move: mg.CaptureMove(sq("d4"), sq("e5"), mg.WhitePawn, mg.BlackKnight),
			from: sq("d4"), to: sq("e5"), moved: mg.WhitePawn,
			captured: mg.BlackKnight, flag: mg.FlagCapture,
		},
		{
			name: "en passant",
			move: mg.EnPassantMove(sq("e5"), sq("d6"), mg.WhitePawn),
			from: sq("e5"), to: sq("d6"), moved: mg.WhitePawn,
			captured: mg.BlackPawn, flag: mg.FlagEnPassant,
		},
		{
			name: "short castle",
			move: mg.CastleMove(mg.E8, mg.G8, mg.BlackKing, mg.FlagShortCastle),
			from: mg.E8, to: mg.G8, moved: mg.BlackKing, flag: mg.FlagShortCastle,
		},
		{
			name: "long castle",
			move: mg.CastleMove(mg.E1, mg.C1, mg.WhiteKing, mg.FlagLongCastle),
			from: mg.E1, to: mg.C1, moved: mg.WhiteKing, flag: mg.FlagLongCastle,
		},
		{
			name: "promote",
			move: mg.PromoteMove(sq("a7"), sq("a8"), mg.WhitePawn, mg.WhiteQueen),
			from: sq("a7"), to: sq("a8"), moved: mg.WhitePawn,
			promoted: mg.WhiteQueen, flag: mg.FlagPromote,
		},
		{
			name: "promote capture",
			move: mg.PromoteCaptureMove(sq("b2"), sq("a1"), mg.BlackPawn, mg.BlackQueen, mg.WhiteRook),
			from: sq("b2"), to: sq("a1"), moved: mg.BlackPawn,
			captured: mg.WhiteRook, promoted: mg.BlackQueen, flag: mg.FlagPromoteCapture,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.move
			if m.From() != tc.from || m.To() != tc.to {
				t.Errorf("squares %v->%v, want %v->%v", m.From(), m.To(), tc.from, tc.to)
			}
			if m.MovedPiece() != tc.moved {
				t.Errorf("moved %d, want %d", m.MovedPiece(), tc.moved)
			}
			if m.CapturedPiece() != tc.captured {
				t.Errorf("captured %d, want %d", m.CapturedPiece(), tc.captured)
			}
			if m.PromotionPiece() != tc.promoted {
				t.Errorf("promoted %d, want %d", m.PromotionPiece(), tc.promoted)
			}
			if m.Flag() != tc.flag {
				t.Errorf("flag %v, want %v", m.Flag(), tc.flag)
			}
		})
	}
}

func TestMovePredicates(t *testing.T) {
	ep := mg.EnPassantMove(sq("e5"), sq("d6"), mg.WhitePawn)
	if !ep.Captured() || ep.Promoted() || ep.Castled() {
		t.Error("en passant should be a capture only")
	}
	pc := mg.PromoteCaptureMove(sq("b2"), sq("a1"), mg.BlackPawn, mg.BlackRook, mg.WhiteRook)
	if !pc.Captured() || !pc.Promoted() {
		t.Error("promote capture should capture and promote")
	}
	cs := mg.CastleMove(mg.E1, mg.G1, mg.WhiteKing, mg.FlagShortCastle)
	if !cs.Castled() || cs.Captured() || cs.Promoted() {
		t.Error("castle should be castle only")
	}
}

func TestMoveStrings(t *testing.T) {
	if got := mg.QuietMove(sq("g1"), sq("f3"), mg.WhiteKnight).String(); got != "g1f3" {
		t.Errorf("String = %q, want g1f3", got)
	}
	if got := mg.PromoteMove(sq("e7"), sq("e8"), mg.WhitePawn, mg.WhiteQueen).String(); got != "e7e8q" {
		t.Errorf("String = %q, want e7e8q", got)
	}
	if got := mg.CastleMove(mg.E1, mg.G1, mg.WhiteKing, mg.FlagShortCastle).Describe(); got != "e1g1 (short castle)" {
		t.Errorf("Describe = %q, want e1g1 (short castle)", got)
	}
}

func TestParseMove(t *testing.T) {
	board := mg.MustParseFEN(mg.FENStartPos)
	m, err := board.ParseMove("e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Flag() != mg.FlagDoublePawn || m.MovedPiece() != mg.WhitePawn {
		t.Errorf("resolved %s wrongly: %v", m, m.Flag())
	}
	if _, err := board.ParseMove("e2e5"); err == nil {
		t.Error("ParseMove accepted an illegal move")
	}
	if _, err := board.ParseMove("zz"); err == nil {
		t.Error("ParseMove accepted garbage")
	}

	board = mg.MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	m, err = board.ParseMove("a7b8n")
	if err != nil {
		t.Fatalf("ParseMove promotion: %v", err)
	}
	if m.Flag() != mg.FlagPromoteCapture || m.PromotionPiece() != mg.WhiteKnight {
		t.Errorf("resolved %s wrongly: flag=%v promo=%d", m, m.Flag(), m.PromotionPiece())
	}
}
