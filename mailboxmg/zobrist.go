package mailboxmg

import "math/rand"

// Zobrist tables for piece-on-square, castling state, en-passant square and
// side to move. Rows for invalid pieces and for sentinel squares stay zero,
// so XORing blindly over the whole mailbox is harmless.
var (
	pieceHash  [120][16]uint64
	castleHash [16]uint64
	enpasHash  [120]uint64
	sideHash   uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed keeps hashes reproducible across runs and in tests.
	rnd := rand.New(rand.NewSource(0xA11CE))

	for sq := Square(0); sq < 120; sq++ {
		if !sq.Valid() {
			continue
		}
		for p := Piece(0); p < 16; p++ {
			if p.Valid() {
				pieceHash[sq][p] = rnd.Uint64()
			}
		}
	}
	for cr := range castleHash {
		castleHash[cr] = rnd.Uint64()
	}
	for sq := Square(0); sq < 120; sq++ {
		if sq.Valid() {
			enpasHash[sq] = rnd.Uint64()
		}
	}
	sideHash = rnd.Uint64()
}

// ComputeZobrist recomputes the position hash from scratch: the XOR over all
// occupied squares, the castling state, the en-passant square, and the side
// key when Black is to move. The incrementally maintained hash must equal
// this at all times.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := Square(0); sq < 120; sq++ {
		key ^= pieceHash[sq][b.pieces[sq]]
	}
	key ^= castleHash[b.castlingRights]
	key ^= enpasHash[b.enPassantSquare]
	if b.sideToMove == Black {
		key ^= sideHash
	}
	return key
}
