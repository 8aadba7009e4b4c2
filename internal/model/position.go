package model

import "fmt"

const boardSize = 8

// Position is a zero-based square: X is the file (a..h), Y the rank (1..8).
// Position{0, 0} is a1.
type Position struct {
	X int
	Y int
}

func (p Position) onBoard() bool {
	return p.X >= 0 && p.X < boardSize && p.Y >= 0 && p.Y < boardSize
}

func (p Position) add(v Vector) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// String returns the algebraic notation, or "??" off the board.
func (p Position) String() string {
	n, err := FormatSquare(p)
	if err != nil {
		return "??"
	}
	return n
}

func (p Position) MarshalText() ([]byte, error) {
	n, err := FormatSquare(p)
	if err != nil {
		return nil, err
	}
	return []byte(n), nil
}

// ParseSquare converts notation such as "e4" to a Position. The file must be a
// lowercase letter a..h and the rank a digit 1..8.
func ParseSquare(text string) (Position, error) {
	if len(text) != 2 {
		return Position{}, reject(ErrMalformedInput, "invalid notation %q, expected a square such as e4", text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' {
		return Position{}, reject(ErrMalformedInput, "invalid file %q in %q", file, text)
	}
	if rank < '1' || rank > '8' {
		return Position{}, reject(ErrMalformedInput, "invalid rank %q in %q", rank, text)
	}
	return Position{X: int(file - 'a'), Y: int(rank - '1')}, nil
}

// FormatSquare is the inverse of ParseSquare.
func FormatSquare(p Position) (string, error) {
	if !p.onBoard() {
		return "", reject(ErrMalformedInput, "square (%d, %d) is not on the board", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1), nil
}

// mustSquare formats a position known to be on the board.
func mustSquare(p Position) string {
	n, err := FormatSquare(p)
	if err != nil {
		panic(err)
	}
	return n
}
