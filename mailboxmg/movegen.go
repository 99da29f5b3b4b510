package mailboxmg

// MaxPositionMoves bounds the number of pseudo-legal moves a single position
// can produce.
const MaxPositionMoves = 256

// Hard draw cutoffs: past either limit the generator yields no moves at all.
// The fifty-move limit intentionally sits at 75 half-moves rather than the
// standard 100, as a bound for perft and training runs; raise it to 99 for
// strict FIDE fifty-move behavior.
var (
	HardDrawFiftyLimit    = 75
	HardDrawHalfMoveLimit = 1000
)

// GeneratePseudoMoves returns the pseudo-legal moves for the side to move:
// every move satisfying piece-movement rules, castling pre-conditions and
// en-passant availability, without testing whether the mover's king is left
// in check. Results are memoized by position hash.
func (b *Board) GeneratePseudoMoves() []Move {
	// The clocks are not part of the hash, so the hard-draw test comes before
	// the cache lookup and a hard-draw result is never cached: the same hash
	// can recur with different clocks.
	if b.IsHardDraw() {
		return nil
	}
	if cached, ok := b.moveCache[b.hash]; ok {
		return append([]Move(nil), cached...)
	}
	moves := b.GeneratePseudoMovesInto(make([]Move, 0, MaxPositionMoves))
	if b.moveCache == nil {
		b.moveCache = make(map[uint64][]Move)
	}
	b.moveCache[b.hash] = moves
	return append([]Move(nil), moves...)
}

// GeneratePseudoMovesInto appends the side to move's pseudo-legal moves to
// dst and returns it, bypassing the cache.
func (b *Board) GeneratePseudoMovesInto(dst []Move) []Move {
	return b.GeneratePseudoMovesFor(b.sideToMove, dst)
}

// GeneratePseudoMovesFor appends pseudo-legal moves for the given side to dst
// and returns it.
func (b *Board) GeneratePseudoMovesFor(side Color, dst []Move) []Move {
	if b.IsHardDraw() {
		return dst
	}

	kingPiece := PieceFromType(side, PieceTypeKing)
	queenPiece := PieceFromType(side, PieceTypeQueen)
	rookPiece := PieceFromType(side, PieceTypeRook)
	bishopPiece := PieceFromType(side, PieceTypeBishop)
	knightPiece := PieceFromType(side, PieceTypeKnight)
	pawnPiece := PieceFromType(side, PieceTypePawn)

	promotePieces := [4]Piece{queenPiece, rookPiece, bishopPiece, knightPiece}

	dst = b.appendSliderMoves(dst, queenPiece, kingOffsets[:])
	dst = b.appendSliderMoves(dst, rookPiece, orthogonalOffsets[:])
	dst = b.appendSliderMoves(dst, bishopPiece, diagonalOffsets[:])
	dst = b.appendLeaperMoves(dst, knightPiece, knightOffsets[:])

	// Pawns
	forward := Square(10)
	homeRank, promoRank := Rank2, Rank8
	if side == Black {
		forward = -10
		homeRank, promoRank = Rank7, Rank1
	}
	for i := uint8(0); i < b.numPieces[pawnPiece]; i++ {
		start := b.positions[pawnPiece][i]

		if start.Rank() == homeRank &&
			b.pieces[start+forward] == NoPiece && b.pieces[start+2*forward] == NoPiece {
			dst = append(dst, DoubleMove(start, start+2*forward, pawnPiece))
		}

		push := start + forward
		if squareValid[push] && b.pieces[push] == NoPiece {
			if push.Rank() == promoRank {
				for _, promo := range promotePieces {
					dst = append(dst, PromoteMove(start, push, pawnPiece, promo))
				}
			} else {
				dst = append(dst, QuietMove(start, push, pawnPiece))
			}
		}

		for _, target := range [2]Square{push - 1, push + 1} {
			if !squareValid[target] {
				continue
			}
			victim := b.pieces[target]
			if OppositeColors(pawnPiece, victim) && !victim.IsKing() {
				if target.Rank() == promoRank {
					for _, promo := range promotePieces {
						dst = append(dst, PromoteCaptureMove(start, target, pawnPiece, promo, victim))
					}
				} else {
					dst = append(dst, CaptureMove(start, target, pawnPiece, victim))
				}
			}
			if target == b.enPassantSquare && victim == NoPiece {
				dst = append(dst, EnPassantMove(start, target, pawnPiece))
			}
		}
	}

	// King
	dst = b.appendLeaperMoves(dst, kingPiece, kingOffsets[:])

	// Castling: the relevant right must survive, the king's origin and
	// transit squares must not be attacked, and the squares between king and
	// rook must be empty (including b1/b8 on the queen side).
	if side == White {
		eAttacked := b.SquareAttacked(E1, Black)
		if b.castlingRights&CastlingWhiteK != 0 && !eAttacked && !b.SquareAttacked(F1, Black) &&
			b.pieces[F1] == NoPiece && b.pieces[G1] == NoPiece {
			dst = append(dst, CastleMove(E1, G1, WhiteKing, FlagShortCastle))
		}
		if b.castlingRights&CastlingWhiteQ != 0 && !eAttacked && !b.SquareAttacked(D1, Black) &&
			b.pieces[D1] == NoPiece && b.pieces[C1] == NoPiece && b.pieces[B1] == NoPiece {
			dst = append(dst, CastleMove(E1, C1, WhiteKing, FlagLongCastle))
		}
	} else {
		eAttacked := b.SquareAttacked(E8, White)
		if b.castlingRights&CastlingBlackK != 0 && !eAttacked && !b.SquareAttacked(F8, White) &&
			b.pieces[F8] == NoPiece && b.pieces[G8] == NoPiece {
			dst = append(dst, CastleMove(E8, G8, BlackKing, FlagShortCastle))
		}
		if b.castlingRights&CastlingBlackQ != 0 && !eAttacked && !b.SquareAttacked(D8, White) &&
			b.pieces[D8] == NoPiece && b.pieces[C8] == NoPiece && b.pieces[B8] == NoPiece {
			dst = append(dst, CastleMove(E8, C8, BlackKing, FlagLongCastle))
		}
	}

	return dst
}

// appendSliderMoves walks each ray from every piece of the given kind,
// emitting quiet moves through empty squares and a capture at the first
// enemy non-king.
func (b *Board) appendSliderMoves(dst []Move, piece Piece, offsets []Square) []Move {
	for i := uint8(0); i < b.numPieces[piece]; i++ {
		start := b.positions[piece][i]
		for _, offset := range offsets {
			cur := start + offset
			for squareValid[cur] && b.pieces[cur] == NoPiece {
				dst = append(dst, QuietMove(start, cur, piece))
				cur += offset
			}
			if target := b.pieces[cur]; squareValid[cur] &&
				OppositeColors(piece, target) && !target.IsKing() {
				dst = append(dst, CaptureMove(start, cur, piece, target))
			}
		}
	}
	return dst
}

// appendLeaperMoves emits single-step moves (knight and king patterns).
func (b *Board) appendLeaperMoves(dst []Move, piece Piece, offsets []Square) []Move {
	for i := uint8(0); i < b.numPieces[piece]; i++ {
		start := b.positions[piece][i]
		for _, offset := range offsets {
			cur := start + offset
			if !squareValid[cur] {
				continue
			}
			if target := b.pieces[cur]; target == NoPiece {
				dst = append(dst, QuietMove(start, cur, piece))
			} else if OppositeColors(piece, target) && !target.IsKing() {
				dst = append(dst, CaptureMove(start, cur, piece, target))
			}
		}
	}
	return dst
}

// GenerateMoves returns the legal moves for the side to move: the pseudo
// moves filtered through MakeMove/UnmakeMove, keeping those that do not leave
// the mover's king in check.
func (b *Board) GenerateMoves() []Move {
	pseudo := b.GeneratePseudoMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if b.MakeMove(m) {
			legal = append(legal, m)
		}
		b.UnmakeMove()
	}
	return legal
}

// Perft counts the leaf nodes of the legal move tree at the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GeneratePseudoMoves() {
		if b.MakeMove(m) {
			if depth == 1 {
				nodes++
			} else {
				nodes += Perft(b, depth-1)
			}
		}
		b.UnmakeMove()
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.GeneratePseudoMoves() {
		if b.MakeMove(m) {
			result[m] = Perft(b, depth-1)
		}
		b.UnmakeMove()
	}
	return result
}
