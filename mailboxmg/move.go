package mailboxmg

import (
	"errors"
	"strings"
)

// Move encodes a chess move in a 32-bit value.
type Move uint32

// MoveFlag classifies the special handling a move needs when made or unmade.
type MoveFlag uint8

const (
	FlagQuiet MoveFlag = iota
	FlagDoublePawn
	FlagCapture
	FlagEnPassant
	FlagShortCastle
	FlagLongCastle
	FlagPromote
	FlagPromoteCapture
)

var flagNames = [...]string{
	"quiet", "double pawn", "capture", "en passant",
	"short castle", "long castle", "promote", "promote capture",
}

func (f MoveFlag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return "unknown"
}

// Bitfield layout within Move (from LSB to MSB). Mailbox squares need 7 bits.
const (
	moveFromShift    = 0  // 7 bits
	moveToShift      = 7  // 7 bits
	movePieceShift   = 14 // 4 bits
	moveCaptureShift = 18 // 4 bits
	movePromoteShift = 22 // 4 bits
	moveFlagShift    = 26 // 3 bits
)

func newMove(from, to Square, moved, captured, promoted Piece, flag MoveFlag) Move {
	return Move(uint32(from&0x7F) |
		uint32(to&0x7F)<<moveToShift |
		uint32(moved&0xF)<<movePieceShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(promoted&0xF)<<movePromoteShift |
		uint32(flag&0x7)<<moveFlagShift)
}

// QuietMove constructs a non-capturing, non-special move.
func QuietMove(from, to Square, moved Piece) Move {
	return newMove(from, to, moved, NoPiece, NoPiece, FlagQuiet)
}

// DoubleMove constructs a two-square pawn push.
func DoubleMove(from, to Square, pawn Piece) Move {
	return newMove(from, to, pawn, NoPiece, NoPiece, FlagDoublePawn)
}

// CaptureMove constructs an ordinary capture.
func CaptureMove(from, to Square, moved, captured Piece) Move {
	return newMove(from, to, moved, captured, NoPiece, FlagCapture)
}

// EnPassantMove constructs an en-passant capture; the captured enemy pawn is
// implied by the mover.
func EnPassantMove(from, to Square, pawn Piece) Move {
	return newMove(from, to, pawn, pawn^8, NoPiece, FlagEnPassant)
}

// CastleMove constructs a castling move; flag must be FlagShortCastle or
// FlagLongCastle.
func CastleMove(from, to Square, king Piece, flag MoveFlag) Move {
	return newMove(from, to, king, NoPiece, NoPiece, flag)
}

// PromoteMove constructs a quiet promotion.
func PromoteMove(from, to Square, pawn, promoted Piece) Move {
	return newMove(from, to, pawn, NoPiece, promoted, FlagPromote)
}

// PromoteCaptureMove constructs a capturing promotion.
func PromoteCaptureMove(from, to Square, pawn, promoted, captured Piece) Move {
	return newMove(from, to, pawn, captured, promoted, FlagPromoteCapture)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(uint32(m) >> moveFromShift & 0x7F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x7F) }

// MovedPiece returns the piece that moves.
func (m Move) MovedPiece() Piece { return Piece(uint32(m) >> movePieceShift & 0xF) }

// CapturedPiece returns the captured piece (or NoPiece if none).
func (m Move) CapturedPiece() Piece { return Piece(uint32(m) >> moveCaptureShift & 0xF) }

// PromotionPiece returns the promotion piece (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece(uint32(m) >> movePromoteShift & 0xF) }

// Flag returns the move classification.
func (m Move) Flag() MoveFlag { return MoveFlag(uint32(m) >> moveFlagShift & 0x7) }

// Promoted reports whether the move promotes a pawn.
func (m Move) Promoted() bool {
	f := m.Flag()
	return f == FlagPromote || f == FlagPromoteCapture
}

// Captured reports whether the move captures a piece (including en passant).
func (m Move) Captured() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || f == FlagPromoteCapture
}

// Castled reports whether the move is a castle.
func (m Move) Castled() bool {
	f := m.Flag()
	return f == FlagShortCastle || f == FlagLongCastle
}

// String produces the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += strings.ToLower(string(charFromPiece(promo)))
	}
	return s
}

// Describe produces a human-readable description of the move, the coordinate
// form annotated with its flag.
func (m Move) Describe() string {
	return m.String() + " (" + m.Flag().String() + ")"
}

// ParseMove resolves a coordinate move string ("e2e4", "e7e8q") against the
// legal moves of the position and returns the matching encoded move.
func (b *Board) ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) < 4 || len(movestr) > 5 {
		return 0, errors.New("invalid move length")
	}
	from, err := squareFromAlgebraic(movestr[0:2])
	if err != nil {
		return 0, err
	}
	to, err := squareFromAlgebraic(movestr[2:4])
	if err != nil {
		return 0, err
	}
	var promo PieceType
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = PieceTypeQueen
		case 'r':
			promo = PieceTypeRook
		case 'b':
			promo = PieceTypeBishop
		case 'n':
			promo = PieceTypeKnight
		default:
			return 0, errors.New("invalid promotion piece")
		}
	}
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && m.PromotionPiece().Type() == promo {
			return m, nil
		}
	}
	return 0, errors.New("no matching legal move")
}
