package domain

import "sort"

// HandRanking is the evaluated strength of a five-card hand.
// Rank runs 1 (no rank) to 10 (royal flush).
type HandRanking struct {
	Rank     int    `json:"rank"`
	RankName string `json:"rank_name"`
}

// cardValue maps the rank character of a card code to its numeric value.
// Aces are always high (14). The deck resource encodes a ten as "0"; the
// conventional "T" spelling is accepted too.
func cardValue(code string) int {
	switch code[0] {
	case 'A':
		return 14
	case 'K':
		return 13
	case 'Q':
		return 12
	case 'J':
		return 11
	case 'T', '0':
		return 10
	default:
		return int(code[0] - '0')
	}
}

// EvaluateHand ranks a hand of exactly HandSize cards. It is pure and
// insensitive to input order. Malformed card codes are a precondition
// violation, not a runtime error.
//
// Because aces are only ever high, the five-high wheel (A-2-3-4-5) does not
// count as a straight. Kickers are not compared; hands of the same rank are
// equal.
func EvaluateHand(hand []Card) HandRanking {
	values := make([]int, len(hand))
	suits := make([]byte, len(hand))
	for i, c := range hand {
		values[i] = cardValue(c.Code)
		suits[i] = c.Code[len(c.Code)-1]
	}
	sort.Ints(values)

	isFlush := true
	for _, s := range suits {
		if s != suits[0] {
			isFlush = false
			break
		}
	}

	isStraight := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			isStraight = false
			break
		}
	}

	switch {
	case isFlush && isStraight && values[0] == 10:
		return HandRanking{Rank: 10, RankName: "Royal Flush"}
	case isFlush && isStraight:
		return HandRanking{Rank: 9, RankName: "Straight Flush"}
	case values[0] == values[3] || values[1] == values[4]:
		return HandRanking{Rank: 8, RankName: "Four of a Kind"}
	case (values[0] == values[2] && values[3] == values[4]) ||
		(values[0] == values[1] && values[2] == values[4]):
		return HandRanking{Rank: 7, RankName: "Full House"}
	case isFlush:
		return HandRanking{Rank: 6, RankName: "Flush"}
	case isStraight:
		return HandRanking{Rank: 5, RankName: "Straight"}
	case values[0] == values[2] || values[1] == values[3] || values[2] == values[4]:
		return HandRanking{Rank: 4, RankName: "Three of a Kind"}
	case (values[0] == values[1] && values[2] == values[3]) ||
		(values[0] == values[1] && values[3] == values[4]) ||
		(values[1] == values[2] && values[3] == values[4]):
		return HandRanking{Rank: 3, RankName: "Two Pair"}
	case values[0] == values[1] || values[1] == values[2] ||
		values[2] == values[3] || values[3] == values[4]:
		return HandRanking{Rank: 2, RankName: "One Pair"}
	default:
		return HandRanking{Rank: 1, RankName: "No rank"}
	}
}
