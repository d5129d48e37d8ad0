package moderation

import (
	"math"
	"testing"
)

func TestSimilarityIdentical(t *testing.T) {
	for _, input := range []string{"a", "hello", "Scam Link", "rnouse"} {
		if score := Similarity(input, input); score != 100 {
			t.Fatalf("Similarity(%q, %q) = %f, expected 100", input, input, score)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if score := Similarity("", ""); score != 100 {
		t.Fatalf("Similarity(\"\", \"\") = %f, expected 100", score)
	}
	if score := Similarity("", "x"); score != 0 {
		t.Fatalf("Similarity(\"\", \"x\") = %f, expected 0", score)
	}
	if score := Similarity("x", ""); score != 0 {
		t.Fatalf("Similarity(\"x\", \"\") = %f, expected 0", score)
	}
}

func TestSimilaritySubstringShortcut(t *testing.T) {
	score := Similarity("hello world", "hello")
	expected := 100.0 * 5.0 / 11.0
	if math.Abs(score-expected) > 1e-9 {
		t.Fatalf("Similarity(\"hello world\", \"hello\") = %f, expected %f", score, expected)
	}

	// the shortcut only applies in one direction
	reverse := Similarity("hello", "hello world")
	if reverse >= score {
		t.Fatalf("expected Similarity to favor short phrases in long messages, got %f vs %f", score, reverse)
	}
}

func TestSimilarityCaseFolding(t *testing.T) {
	if score := Similarity("SCAM", "scam"); score != 100 {
		t.Fatalf("Similarity(\"SCAM\", \"scam\") = %f, expected 100", score)
	}
}

func TestSimilarityConfusables(t *testing.T) {
	confused := Similarity("m0use", "mouse")
	plain := Similarity("mxuse", "mouse")

	if confused <= plain {
		t.Fatalf("confusable substitution should score above a plain substitution, got %f vs %f", confused, plain)
	}
	if confused >= 100 {
		t.Fatalf("confusable substitution should score below 100, got %f", confused)
	}
}

func TestSimilarityConfusableSequences(t *testing.T) {
	// "rn" reads as "m"
	sequence := Similarity("rnouse", "mouse")
	plain := Similarity("xxouse", "mouse")

	if sequence <= plain {
		t.Fatalf("sequence confusable should score above a plain mismatch, got %f vs %f", sequence, plain)
	}
	if sequence >= 100 {
		t.Fatalf("sequence confusable should score below 100, got %f", sequence)
	}
}

func TestSimilarityNeverNegative(t *testing.T) {
	if score := Similarity("a", "zzzzzzzzzzzzzzzzzzzz"); score < 0 {
		t.Fatalf("Similarity returned a negative score: %f", score)
	}
}
