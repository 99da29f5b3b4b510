package mailboxmg

// undo holds the state a move destroys, snapshotted before it is applied.
type undo struct {
	move           Move
	castlingRights CastlingRights
	enPassant      Square
	fiftyMove      int
	hash           uint64
}

// MakeMove applies the move, switches the side to move, and reports whether
// the side that just moved is NOT in check afterwards. On a false return the
// board is left in the post-move state; the caller must call UnmakeMove to
// restore it. MakeMove never fails on legality grounds, only the bool
// signals it.
func (b *Board) MakeMove(m Move) bool {
	flag := m.Flag()
	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	side := b.sideToMove
	other := side.Other()

	b.history = append(b.history, undo{
		move:           m,
		castlingRights: b.castlingRights,
		enPassant:      b.enPassantSquare,
		fiftyMove:      b.fiftyMove,
		hash:           b.hash,
	})
	b.halfMove++

	switch {
	case m.Promoted():
		if m.Captured() {
			b.updateCastling(to, b.pieces[to])
			b.removePiece(to)
		}
		b.addPiece(to, m.PromotionPiece())
		b.removePiece(from)
		b.setEnPassant(InvalidSquare)

	case m.Castled():
		if side == White {
			if flag == FlagShortCastle {
				b.movePiece(E1, G1)
				b.movePiece(H1, F1)
			} else {
				b.movePiece(E1, C1)
				b.movePiece(A1, D1)
			}
			b.setCastlingRights(b.castlingRights &^ (CastlingWhiteK | CastlingWhiteQ))
		} else {
			if flag == FlagShortCastle {
				b.movePiece(E8, G8)
				b.movePiece(H8, F8)
			} else {
				b.movePiece(E8, C8)
				b.movePiece(A8, D8)
			}
			b.setCastlingRights(b.castlingRights &^ (CastlingBlackK | CastlingBlackQ))
		}
		b.setEnPassant(InvalidSquare)

	default:
		// The square a double push jumps over; for en passant, the square of
		// the captured pawn.
		behind := to - 10
		if side == Black {
			behind = to + 10
		}
		if flag == FlagDoublePawn {
			b.setEnPassant(behind)
		} else {
			b.setEnPassant(InvalidSquare)
		}
		switch flag {
		case FlagQuiet:
			b.movePiece(from, to)
			b.updateCastling(from, moved)
		case FlagDoublePawn:
			b.movePiece(from, to)
		case FlagCapture:
			b.updateCastling(to, b.pieces[to])
			b.removePiece(to)
			b.movePiece(from, to)
			b.updateCastling(from, moved)
		case FlagEnPassant:
			b.removePiece(behind)
			b.movePiece(from, to)
		}
	}

	if m.Captured() || moved.IsPawn() {
		b.fiftyMove = 0
	} else {
		b.fiftyMove++
	}
	b.switchSide()

	ok := !b.SquareAttacked(b.kingSquare(side), other)
	if ok && DebugValidate {
		b.mustValidate()
	}
	return ok
}

// UnmakeMove pops the newest history entry and reverses its move exactly,
// restoring castling rights, en passant, clocks, side to move and the
// bit-exact hash. It panics when the history is empty.
func (b *Board) UnmakeMove() {
	if len(b.history) == 0 {
		panic("mailboxmg: UnmakeMove with empty history")
	}
	entry := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := entry.move

	b.setCastlingRights(entry.castlingRights)
	b.setEnPassant(entry.enPassant)
	b.fiftyMove = entry.fiftyMove
	b.halfMove--
	b.switchSide()
	side := b.sideToMove

	flag := m.Flag()
	from, to := m.From(), m.To()

	switch {
	case m.Promoted():
		b.removePiece(to)
		b.addPiece(from, m.MovedPiece())
		if m.Captured() {
			b.addPiece(to, m.CapturedPiece())
		}

	case m.Castled():
		if side == White {
			if flag == FlagShortCastle {
				b.movePiece(G1, E1)
				b.movePiece(F1, H1)
			} else {
				b.movePiece(C1, E1)
				b.movePiece(D1, A1)
			}
		} else {
			if flag == FlagShortCastle {
				b.movePiece(G8, E8)
				b.movePiece(F8, H8)
			} else {
				b.movePiece(C8, E8)
				b.movePiece(D8, A8)
			}
		}

	default:
		b.movePiece(to, from)
		if m.Captured() {
			capturedSq := to
			if flag == FlagEnPassant {
				// The restored en-passant target is where the capturer
				// landed; the victim pawn sat one rank behind it.
				if side == White {
					capturedSq = b.enPassantSquare - 10
				} else {
					capturedSq = b.enPassantSquare + 10
				}
			}
			b.addPiece(capturedSq, m.CapturedPiece())
		}
	}

	if b.hash != entry.hash {
		panic("mailboxmg: hash mismatch after UnmakeMove")
	}
	if DebugValidate {
		b.mustValidate()
	}
}

// Apply makes the move, panicking if it is illegal, and returns a closure
// that undoes it.
func (b *Board) Apply(m Move) func() {
	if !b.MakeMove(m) {
		b.UnmakeMove()
		panic("mailboxmg: Apply called with illegal move " + m.String())
	}
	return func() { b.UnmakeMove() }
}

// updateCastling strips castling rights when a king or rook leaves, or is
// captured on, one of the home squares.
func (b *Board) updateCastling(sq Square, p Piece) {
	if !p.IsKing() && p.Type() != PieceTypeRook {
		return
	}
	cr := b.castlingRights
	if sq == E1 || sq == A1 {
		cr &^= CastlingWhiteQ
	}
	if sq == E1 || sq == H1 {
		cr &^= CastlingWhiteK
	}
	if sq == E8 || sq == A8 {
		cr &^= CastlingBlackQ
	}
	if sq == E8 || sq == H8 {
		cr &^= CastlingBlackK
	}
	if cr != b.castlingRights {
		b.setCastlingRights(cr)
	}
}
