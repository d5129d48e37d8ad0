package moderation

import "strings"

// confusableRunes maps pairs of characters that cost half a substitution
// in the edit distance. Covers the usual leetspeak swaps.
var confusableRunes = [][2]rune{
	{'0', 'o'},
	{'1', 'l'},
	{'5', 's'},
	{'2', 'z'},
	{'c', 'k'},
	{'v', 'w'},
	{'u', 'v'},
	{'3', 'e'},
	{'4', 'a'},
}

// confusableSequences maps a two character sequence to a single character
// it can be mistaken for ("rn" reads as "m").
var confusableSequences = []struct {
	seq [2]rune
	ch  rune
}{
	{[2]rune{'r', 'n'}, 'm'},
	{[2]rune{'p', 'h'}, 'f'},
}

func isConfusable(a rune, b rune) bool {
	for _, pair := range confusableRunes {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return true
		}
	}
	return false
}

// Similarity scores how close $phrase comes to appearing in $message, 0 to 100.
//
// A contiguous substring hit short-circuits with len(phrase)/len(message)*100,
// which favors short exact phrases embedded in long messages and makes the
// function intentionally asymmetric. Everything else goes through a weighted
// edit distance where confusable characters cost half a substitution.
func Similarity(message string, phrase string) float64 {
	msg := strings.ToLower(message)
	phr := strings.ToLower(phrase)

	a := []rune(msg)
	b := []rune(phr)

	lenA := len(a)
	lenB := len(b)

	if lenA == 0 {
		if lenB == 0 {
			return 100
		}
		return 0
	}
	if lenB == 0 {
		return 0
	}

	if strings.Contains(msg, phr) {
		return float64(lenB) / float64(lenA) * 100
	}

	dp := make([][]float64, lenA+1)
	for i := range dp {
		dp[i] = make([]float64, lenB+1)
	}
	for i := 1; i <= lenA; i++ {
		dp[i][0] = float64(i)
	}
	for j := 1; j <= lenB; j++ {
		dp[0][j] = float64(j)
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			cost := 1.0
			if a[i-1] == b[j-1] {
				cost = 0
			} else if isConfusable(a[i-1], b[j-1]) {
				cost = 0.5
			}

			best := dp[i-1][j] + 1
			if v := dp[i][j-1] + 1; v < best {
				best = v
			}
			if v := dp[i-1][j-1] + cost; v < best {
				best = v
			}

			for _, conf := range confusableSequences {
				if i >= 2 && a[i-2] == conf.seq[0] && a[i-1] == conf.seq[1] && b[j-1] == conf.ch {
					if v := dp[i-2][j-1] + 0.5; v < best {
						best = v
					}
				}
				if j >= 2 && b[j-2] == conf.seq[0] && b[j-1] == conf.seq[1] && a[i-1] == conf.ch {
					if v := dp[i-1][j-2] + 0.5; v < best {
						best = v
					}
				}
			}

			dp[i][j] = best
		}
	}

	editDistance := dp[lenA][lenB]

	maxLen := float64(lenA)
	if lenB > lenA {
		maxLen = float64(lenB)
	}

	similarity := (maxLen - editDistance) / maxLen * 100
	if similarity < 0 {
		return 0
	}
	return similarity
}
