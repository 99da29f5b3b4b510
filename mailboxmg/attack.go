package mailboxmg

// SquareAttacked reports whether sq is attacked by any piece of the given
// side. Sliders are found by walking each ray outward through empty squares;
// the attacker's king is handled by testing the first step of every ray.
// Sentinel cells hold NoPiece, so off-board reads fall out of every test.
func (b *Board) SquareAttacked(sq Square, by Color) bool {
	kingPiece := PieceFromType(by, PieceTypeKing)
	knightPiece := PieceFromType(by, PieceTypeKnight)
	pawnPiece := PieceFromType(by, PieceTypePawn)
	kingSq := b.positions[kingPiece][0]

	if p := b.pieces[sq]; p.Valid() && p.Color() == by {
		return false
	}

	for _, offset := range diagonalOffsets {
		cur := sq + offset
		if cur == kingSq {
			return true
		}
		for squareValid[cur] && b.pieces[cur] == NoPiece {
			cur += offset
		}
		if p := b.pieces[cur]; squareValid[cur] && p.Color() == by && p.IsDiag() {
			return true
		}
	}

	for _, offset := range orthogonalOffsets {
		cur := sq + offset
		if cur == kingSq {
			return true
		}
		for squareValid[cur] && b.pieces[cur] == NoPiece {
			cur += offset
		}
		if p := b.pieces[cur]; squareValid[cur] && p.Color() == by && p.IsOrtho() {
			return true
		}
	}

	for _, offset := range knightOffsets {
		if b.pieces[sq+offset] == knightPiece {
			return true
		}
	}

	// A white pawn attacks sq from below, a black pawn from above.
	if by == White {
		if b.pieces[sq-9] == pawnPiece || b.pieces[sq-11] == pawnPiece {
			return true
		}
	} else {
		if b.pieces[sq+9] == pawnPiece || b.pieces[sq+11] == pawnPiece {
			return true
		}
	}

	return false
}

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.SquareAttacked(b.kingSquare(c), c.Other())
}

// KingInCheck reports whether the side to move is in check.
func (b *Board) KingInCheck() bool { return b.InCheck(b.sideToMove) }
