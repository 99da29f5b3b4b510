package mailboxmg

import (
	"fmt"
	"strings"
)

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	// - piece ^ 8 flips the side
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// Valid reports whether p encodes an actual piece rather than the
// empty-square marker or one of the unused code points (0, 7, 8, 15).
func (p Piece) Valid() bool {
	t := p & 7
	return t >= 1 && t <= 6
}

// IsPawn reports whether p is a pawn of either side.
func (p Piece) IsPawn() bool { return p&7 == Piece(PieceTypePawn) }

// IsKing reports whether p is a king of either side.
func (p Piece) IsKing() bool { return p&7 == Piece(PieceTypeKing) }

// IsDiag reports whether p slides along diagonals (bishop or queen).
func (p Piece) IsDiag() bool {
	t := p & 7
	return t == Piece(PieceTypeBishop) || t == Piece(PieceTypeQueen)
}

// IsOrtho reports whether p slides along ranks and files (rook or queen).
func (p Piece) IsOrtho() bool {
	t := p & 7
	return t == Piece(PieceTypeRook) || t == Piece(PieceTypeQueen)
}

// OppositeColors reports whether a and b are valid pieces of opposite sides.
func OppositeColors(a, b Piece) bool {
	return a.Valid() && b.Valid() && (a^b)&8 != 0
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Square indexes the 10x12 mailbox (0-119). The playing squares form the 8x8
// interior; the two-wide border consists of sentinel cells that always hold
// NoPiece, so offset arithmetic from a playing square never leaves the array.
type Square int

// InvalidSquare marks "no square". It indexes a border cell, so every hash
// table keeps a zero entry for it.
const InvalidSquare Square = 0

// First and last rank playing squares. Stepping +10 is up one rank, +1 is
// right one file.
const (
	A1 Square = 21 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 91 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Rank and file indexes (0-based).
const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

var squareValid = func() (valid [120]bool) {
	for rank := Rank1; rank <= Rank8; rank++ {
		for file := FileA; file <= FileH; file++ {
			valid[SquareFromRC(rank, file)] = true
		}
	}
	return valid
}()

// SquareFromRC maps a 0-based rank and file to a mailbox square.
func SquareFromRC(rank, file int) Square {
	return A1 + Square(10*rank+file)
}

// Valid reports whether sq is one of the 64 playing squares.
func (sq Square) Valid() bool {
	return sq >= 0 && sq < 120 && squareValid[sq]
}

// Rank returns the 0-based rank of a playing square.
func (sq Square) Rank() int { return int(sq)/10 - 2 }

// File returns the 0-based file of a playing square.
func (sq Square) File() int { return int(sq)%10 - 1 }

// String returns the algebraic name of the square ("e4"), or "-" for any
// non-playing square.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Direction offsets in the mailbox.
var (
	orthogonalOffsets = [4]Square{-10, -1, 1, 10}
	diagonalOffsets   = [4]Square{-11, -9, 9, 11}
	knightOffsets     = [8]Square{-21, -19, -12, -8, 8, 12, 19, 21}
	kingOffsets       = [8]Square{-11, -10, -9, -1, 1, 9, 10, 11}
)

// maxPieceCount bounds each per-species piece list (8 pawns promoting into an
// existing pair still fits).
const maxPieceCount = 10

// DebugValidate, when set, re-runs the full invariant sweep (piece-list sync,
// king counts, hash recomputation) after FEN construction, after every
// UnmakeMove and after every MakeMove that returns true, and panics on the
// first violation. Leave it off on the hot path.
var DebugValidate bool

// Board represents a chess position: the mailbox piece array, the per-species
// piece lists kept in lockstep with it, the game-state fields, the
// incrementally maintained Zobrist hash, and the undo history.
type Board struct {
	pieces    [120]Piece
	positions [16][maxPieceCount]Square
	numPieces [16]uint8

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square

	// fiftyMove counts half-moves since the last capture or pawn move.
	// halfMove is the ply counter: ParseFEN seeds it as 2*fullmove plus one
	// when Black is to move, and each move adds one; the full-move number is
	// halfMove/2.
	fiftyMove int
	halfMove  int

	hash    uint64
	history []undo

	// moveCache memoizes pseudo-move lists by position hash. The hash keys
	// side to move, castling rights and en passant, so entries stay valid
	// across game histories.
	moveCache map[uint64][]Move
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingState returns the current castling rights mask.
func (b *Board) CastlingState() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target square or InvalidSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// FiftyMoveClock returns the number of half-moves since the last capture or
// pawn move.
func (b *Board) FiftyMoveClock() int { return b.fiftyMove }

// HalfMoveCount returns the ply counter, 2*fullmove (plus one with Black to
// move) as seeded from the FEN and advanced by every move; the starting
// position reports 2.
func (b *Board) HalfMoveCount() int { return b.halfMove }

// FullMoveNumber returns the full-move counter as rendered in FEN.
func (b *Board) FullMoveNumber() int { return b.halfMove / 2 }

// HistoryDepth returns the number of moves that can be unmade.
func (b *Board) HistoryDepth() int { return len(b.history) }

// LastMove returns the most recently made move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return 0, false
	}
	return b.history[len(b.history)-1].move, true
}

// PieceAt returns the piece on a square (NoPiece when empty or off board).
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }

// PieceSquares returns the squares occupied by pieces of the given kind.
func (b *Board) PieceSquares(p Piece) []Square {
	if !p.Valid() {
		return nil
	}
	n := int(b.numPieces[p])
	return append([]Square(nil), b.positions[p][:n]...)
}

// Hash returns the current Zobrist hash of the position.
func (b *Board) Hash() uint64 {
	if DebugValidate && b.hash != b.ComputeZobrist() {
		panic("mailboxmg: stored hash diverged from recomputation")
	}
	return b.hash
}

func (b *Board) kingSquare(c Color) Square {
	return b.positions[PieceFromType(c, PieceTypeKing)][0]
}

// ==========================
// Piece-list primitives
// ==========================
//
// Each primitive mutates the mailbox and the piece list together and XORs the
// corresponding hash delta, so the stored hash stays equal to the full
// recomputation after every call.

func (b *Board) addPiece(sq Square, p Piece) {
	if !p.Valid() {
		panic(fmt.Sprintf("mailboxmg: adding invalid piece %d", p))
	}
	if b.pieces[sq] != NoPiece {
		panic(fmt.Sprintf("mailboxmg: adding piece would overwrite %d on %v", b.pieces[sq], sq))
	}
	n := b.numPieces[p]
	if int(n) >= maxPieceCount {
		panic(fmt.Sprintf("mailboxmg: too many pieces of kind %d", p))
	}
	b.pieces[sq] = p
	b.positions[p][n] = sq
	b.numPieces[p] = n + 1
	b.hash ^= pieceHash[sq][p]
}

func (b *Board) removePiece(sq Square) {
	p := b.pieces[sq]
	if !p.Valid() {
		panic(fmt.Sprintf("mailboxmg: removing piece from empty square %v", sq))
	}
	b.pieces[sq] = NoPiece
	n := int(b.numPieces[p])
	list := &b.positions[p]
	for i := 0; i < n; i++ {
		if list[i] == sq {
			list[i] = list[n-1]
			list[n-1] = InvalidSquare
			b.numPieces[p] = uint8(n - 1)
			b.hash ^= pieceHash[sq][p]
			return
		}
	}
	panic(fmt.Sprintf("mailboxmg: piece %d on %v missing from its piece list", p, sq))
}

func (b *Board) movePiece(from, to Square) {
	p := b.pieces[from]
	if !p.Valid() {
		panic(fmt.Sprintf("mailboxmg: moving piece from empty square %v", from))
	}
	if b.pieces[to] != NoPiece {
		panic(fmt.Sprintf("mailboxmg: moving onto occupied square %v", to))
	}
	b.pieces[from] = NoPiece
	b.pieces[to] = p
	n := int(b.numPieces[p])
	list := &b.positions[p]
	for i := 0; i < n; i++ {
		if list[i] == from {
			list[i] = to
			b.hash ^= pieceHash[from][p] ^ pieceHash[to][p]
			return
		}
	}
	panic(fmt.Sprintf("mailboxmg: piece %d on %v missing from its piece list", p, from))
}

func (b *Board) setCastlingRights(cr CastlingRights) {
	b.hash ^= castleHash[b.castlingRights] ^ castleHash[cr]
	b.castlingRights = cr
}

func (b *Board) setEnPassant(sq Square) {
	b.hash ^= enpasHash[b.enPassantSquare] ^ enpasHash[sq]
	b.enPassantSquare = sq
}

func (b *Board) switchSide() {
	b.sideToMove ^= 1
	b.hash ^= sideHash
}

// ==========================
// Validation
// ==========================

// Validate checks the full set of board invariants: every sentinel cell
// empty, piece lists in exact sync with the mailbox, king counts, per-species
// maxima, en-passant placement, stored hash against recomputation, and the
// side not to move not being in check. It returns nil when consistent.
func (b *Board) Validate() error {
	var count [16]uint8
	for sq := Square(0); sq < 120; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		if !p.Valid() {
			return fmt.Errorf("square %v holds invalid piece %d", sq, p)
		}
		if !sq.Valid() {
			return fmt.Errorf("sentinel square %d holds piece %d", sq, p)
		}
		count[p]++
	}
	for p := Piece(0); p < 16; p++ {
		n := b.numPieces[p]
		if !p.Valid() {
			if n != 0 {
				return fmt.Errorf("invalid piece %d has non-zero count %d", p, n)
			}
			continue
		}
		if n != count[p] {
			return fmt.Errorf("piece %d count %d disagrees with mailbox count %d", p, n, count[p])
		}
		if n > maxPieceCount {
			return fmt.Errorf("too many (%d) pieces of kind %d", n, p)
		}
		for i := uint8(0); i < n; i++ {
			sq := b.positions[p][i]
			if b.pieces[sq] != p {
				return fmt.Errorf("positions[%d][%d]=%v disagrees with mailbox", p, i, sq)
			}
			for j := i + 1; j < n; j++ {
				if b.positions[p][j] == sq {
					return fmt.Errorf("piece %d repeated on %v", p, sq)
				}
			}
		}
	}
	if b.numPieces[WhiteKing] != 1 || b.numPieces[BlackKing] != 1 {
		return fmt.Errorf("king counts %d/%d, want exactly one each",
			b.numPieces[WhiteKing], b.numPieces[BlackKing])
	}
	if b.enPassantSquare != InvalidSquare {
		if !b.enPassantSquare.Valid() {
			return fmt.Errorf("en passant square %d not valid", b.enPassantSquare)
		}
		wantRank := Rank6
		if b.sideToMove == Black {
			wantRank = Rank3
		}
		if b.enPassantSquare.Rank() != wantRank {
			return fmt.Errorf("en passant square %v not on rank %d with %v to move",
				b.enPassantSquare, wantRank+1, b.sideToMove)
		}
	}
	if b.hash != b.ComputeZobrist() {
		return fmt.Errorf("stored hash %016x disagrees with recomputation %016x",
			b.hash, b.ComputeZobrist())
	}
	if b.SquareAttacked(b.kingSquare(b.sideToMove.Other()), b.sideToMove) {
		return fmt.Errorf("%v king in check with %v to move",
			b.sideToMove.Other(), b.sideToMove)
	}
	return nil
}

func (b *Board) mustValidate() {
	if err := b.Validate(); err != nil {
		panic("mailboxmg: board invariant violated: " + err.Error())
	}
}

// ==========================
// Status helpers
// ==========================

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool { return len(b.GenerateMoves()) > 0 }

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.KingInCheck() && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.KingInCheck() && !b.HasLegalMoves()
}

// IsHardDraw reports whether the position is past the generator's hard draw
// cutoff (see HardDrawFiftyLimit).
func (b *Board) IsHardDraw() bool {
	return b.fiftyMove > HardDrawFiftyLimit || b.halfMove > HardDrawHalfMoveLimit
}

// Equal reports whether the two boards describe the same position: piece
// placement, side to move, castling rights, en passant, clocks and hash.
// Piece-list ordering and history are not part of position identity.
func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	return b.pieces == other.pieces &&
		b.numPieces == other.numPieces &&
		b.sideToMove == other.sideToMove &&
		b.castlingRights == other.castlingRights &&
		b.enPassantSquare == other.enPassantSquare &&
		b.fiftyMove == other.fiftyMove &&
		b.halfMove == other.halfMove &&
		b.hash == other.hash
}

// String renders the board as a framed grid with the game-state fields below,
// ranks 8 down to 1.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("+---- BOARD ----+\n")
	for rank := Rank8; rank >= Rank1; rank-- {
		sb.WriteByte('|')
		for file := FileA; file <= FileH; file++ {
			p := b.pieces[SquareFromRC(rank, file)]
			if p == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(charFromPiece(p))
			}
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("+---------------+\n")
	fmt.Fprintf(&sb, "TO MOVE: %s\n", strings.ToUpper(b.sideToMove.String()))
	fmt.Fprintf(&sb, "EN PASS: %v\n", b.enPassantSquare)
	fmt.Fprintf(&sb, "FIFTY  : %d\n", b.fiftyMove)
	fmt.Fprintf(&sb, "MOVE#  : %d\n", b.halfMove/2)
	fmt.Fprintf(&sb, "HALF#  : %d\n", b.halfMove)
	fmt.Fprintf(&sb, "HASH   : %016x\n", b.hash)
	fmt.Fprintf(&sb, "FEN    : %s\n", b.ToFEN())
	if m, ok := b.LastMove(); ok {
		fmt.Fprintf(&sb, "LAST MV: %s\n", m.Describe())
	}
	return sb.String()
}
